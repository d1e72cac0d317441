// Package escalation decides whether and how urgently a conversation should
// be moved to a human channel. The advisor is a pure decision function over
// the message text, its topic, and the conversation length.
package escalation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
)

// Urgency grades an escalation recommendation.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Reason is the closed set of escalation causes.
type Reason string

const (
	ReasonEmergency        Reason = "emergency"
	ReasonComplexTopic     Reason = "complex_topic"
	ReasonComplexLanguage  Reason = "complex_language"
	ReasonLongConversation Reason = "long_conversation"
	ReasonNone             Reason = "none"
)

// Advice is the advisor's output. DisplayMessage is localized contextual
// text suitable for rendering above the handoff action.
type Advice struct {
	ShouldRecommend bool    `json:"should_recommend"`
	Urgency         Urgency `json:"urgency,omitempty"`
	Reason          Reason  `json:"reason"`
	DisplayMessage  string  `json:"display_message,omitempty"`
}

const (
	// longConversationTurns is the user-turn count past which a gentle
	// handoff suggestion is made.
	longConversationTurns = 5

	// longMessageRunes marks input as unusually long for the chat format.
	longMessageRunes = 400
)

// complexTopics are the care topics that always warrant a human in the loop.
var complexTopics = map[model.Topic]bool{
	model.TopicMedication: true,
	model.TopicMemory:     true,
}

// Advisor evaluates escalation rules. Stateless and safe for concurrent use.
type Advisor struct{}

// New creates an escalation advisor.
func New() *Advisor {
	return &Advisor{}
}

// ShouldEscalate applies the escalation policy in priority order and always
// returns a value; unknown topics fall through to the later rules.
func (a *Advisor) ShouldEscalate(message string, topic model.Topic, turnCount int) Advice {
	lang := DetectLanguage(message)
	lowered := strings.ToLower(message)

	if matchesEmergency(lowered) {
		return advice(UrgencyHigh, ReasonEmergency, lang)
	}

	if complexTopics[topic] {
		return advice(UrgencyMedium, ReasonComplexTopic, lang)
	}

	if isComplexLanguage(message) {
		return advice(UrgencyMedium, ReasonComplexLanguage, lang)
	}

	if turnCount > longConversationTurns {
		return advice(UrgencyLow, ReasonLongConversation, lang)
	}

	return Advice{ShouldRecommend: false, Reason: ReasonNone}
}

func advice(u Urgency, r Reason, lang model.Language) Advice {
	return Advice{
		ShouldRecommend: true,
		Urgency:         u,
		Reason:          r,
		DisplayMessage:  displayMessage(r, lang),
	}
}

func matchesEmergency(lowered string) bool {
	for _, lang := range model.Languages {
		for _, kw := range emergencyKeywords[lang] {
			if strings.Contains(lowered, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

// isComplexLanguage flags mixed Thai/Latin script or unusually long input,
// both of which tend to defeat canned guidance.
func isComplexLanguage(message string) bool {
	if utf8.RuneCountInString(message) > longMessageRunes {
		return true
	}
	return hasThaiScript(message) && hasLatinScript(message)
}

// DetectLanguage infers the message language from its script. Messages with
// any Thai characters are treated as Thai.
func DetectLanguage(message string) model.Language {
	if hasThaiScript(message) {
		return model.LanguageThai
	}
	return model.LanguageEnglish
}

func hasThaiScript(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Thai, r) {
			return true
		}
	}
	return false
}

func hasLatinScript(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}
