// Package fallback serves deterministic pre-written replies when the primary
// generator is unavailable. It is the last line of defense and can never
// itself fail: every topic and language resolves to a non-empty string.
package fallback

import (
	"math/rand"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
)

// longChatTurns is the turn count past which the contextual response points
// at the human channel.
const longChatTurns = 3

// Catalog is the static per-topic, per-language response set.
type Catalog struct{}

// NewCatalog creates a fallback response catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// GetResponse returns a reply for the topic, picked uniformly at random
// among the topic's variants. Unknown topics fall back to the general
// catalog entry; the emergency topic always returns its dedicated text.
func (c *Catalog) GetResponse(topic model.Topic, lang model.Language) string {
	if topic == model.TopicEmergency {
		return emergencyResponse(lang)
	}

	variants := variantsFor(topic, lang)
	return variants[rand.Intn(len(variants))]
}

// GetContextualResponse returns a reply with deterministic suffixes: a
// handoff suggestion once the conversation runs long, and an invitation to
// add detail when the same topic's fallback has already been served this
// session. Emergency replies are never decorated.
func (c *Catalog) GetContextualResponse(topic model.Topic, lang model.Language, turnCount, usageCount int) string {
	if topic == model.TopicEmergency {
		return emergencyResponse(lang)
	}

	resp := c.GetResponse(topic, lang)

	if turnCount > longChatTurns {
		resp += note(longChatNotes, lang)
	}
	if usageCount > 1 {
		resp += note(repeatNotes, lang)
	}

	return resp
}

func variantsFor(topic model.Topic, lang model.Language) []string {
	byLang, ok := responses[topic]
	if !ok {
		byLang = responses[model.TopicGeneral]
	}
	if variants, ok := byLang[lang]; ok && len(variants) > 0 {
		return variants
	}
	return byLang[model.LanguageEnglish]
}

func emergencyResponse(lang model.Language) string {
	if resp, ok := emergencyResponses[lang]; ok {
		return resp
	}
	return emergencyResponses[model.LanguageEnglish]
}

func note(table map[model.Language]string, lang model.Language) string {
	if n, ok := table[lang]; ok {
		return n
	}
	return table[model.LanguageEnglish]
}
