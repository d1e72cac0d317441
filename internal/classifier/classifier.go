// Package classifier assigns each user message to one topic from a fixed
// set using deterministic keyword scoring. It is pure and auditable: the
// matched keywords are returned alongside the winning topic.
package classifier

import (
	"strings"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
)

// confidenceNorm is the score at which confidence saturates to 1.0.
const confidenceNorm = 3.0

// Classification is the result of classifying a single message.
type Classification struct {
	Topic           model.Topic `json:"topic"`
	Confidence      float64     `json:"confidence"`
	MatchedKeywords []string    `json:"matched_keywords,omitempty"`
}

// Classifier scores messages against the keyword tables. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct{}

// New creates a topic classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify maps a free-text message to a topic with a confidence score and
// the keywords that matched. Empty, unclassifiable, and tied-at-zero input
// resolves to TopicGeneral with confidence 0.
func (c *Classifier) Classify(message string) Classification {
	lowered := strings.ToLower(message)

	// Generic advice phrasing with no domain keyword anywhere short-circuits
	// to the catch-all topic so conversational filler is not over-classified.
	if containsAdvicePhrase(lowered) && !containsDomainKeyword(lowered) {
		return Classification{Topic: model.TopicGeneral}
	}

	best := Classification{Topic: model.TopicGeneral}
	bestScore := 0

	// Topics are scored in canonical order; a later topic must strictly beat
	// the current best, so ties resolve to the earlier (higher-priority) topic.
	for _, topic := range model.Topics {
		lists, ok := keywordTable[topic]
		if !ok {
			continue
		}

		// Languages are walked in declared order so the matched-keyword
		// list is stable for identical input.
		var matched []string
		for _, lang := range model.Languages {
			for _, kw := range lists[lang] {
				if strings.Contains(lowered, strings.ToLower(kw)) {
					matched = append(matched, kw)
				}
			}
		}

		if len(matched) > bestScore {
			bestScore = len(matched)
			best = Classification{
				Topic:           topic,
				Confidence:      confidence(len(matched)),
				MatchedKeywords: matched,
			}
		}
	}

	return best
}

func confidence(score int) float64 {
	c := float64(score) / confidenceNorm
	if c > 1 {
		return 1
	}
	return c
}

func containsAdvicePhrase(lowered string) bool {
	for _, phrases := range advicePhrases {
		for _, p := range phrases {
			if strings.Contains(lowered, strings.ToLower(p)) {
				return true
			}
		}
	}
	return false
}

func containsDomainKeyword(lowered string) bool {
	for _, lists := range keywordTable {
		for _, keywords := range lists {
			for _, kw := range keywords {
				if strings.Contains(lowered, strings.ToLower(kw)) {
					return true
				}
			}
		}
	}
	return false
}
