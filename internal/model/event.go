// Package model defines data structures for the conversational signal pipeline.
package model

import (
	"time"
	"unicode/utf8"
)

// Topic is one value from the fixed, closed set of conversation categories.
type Topic string

const (
	TopicGeneral    Topic = "general"
	TopicSleep      Topic = "sleep"
	TopicDiet       Topic = "diet"
	TopicExercise   Topic = "exercise"
	TopicMood       Topic = "mood"
	TopicMedication Topic = "medication"
	TopicMemory     Topic = "memory"
	TopicEmergency  Topic = "emergency"
)

// Topics lists all topics in their canonical order. Scoring ties in the
// classifier resolve to the earlier entry, so emergency and the complex
// care topics come before the lifestyle ones.
var Topics = []Topic{
	TopicEmergency,
	TopicMedication,
	TopicMemory,
	TopicSleep,
	TopicDiet,
	TopicExercise,
	TopicMood,
	TopicGeneral,
}

// Valid reports whether t is a member of the closed topic set.
func (t Topic) Valid() bool {
	for _, known := range Topics {
		if t == known {
			return true
		}
	}
	return false
}

// Language identifies the language of a user message.
type Language string

const (
	LanguageThai    Language = "th"
	LanguageEnglish Language = "en"
)

// Languages lists the supported languages.
var Languages = []Language{LanguageThai, LanguageEnglish}

// Route records which path produced the reply for an event.
type Route string

const (
	RoutePrimary  Route = "primary"
	RouteFallback Route = "fallback"
)

// SnippetMaxLen bounds the retained copy of a user message.
const SnippetMaxLen = 160

// Event is one per-message record in the event log.
type Event struct {
	ID               string    `json:"id,omitempty"`
	SessionID        string    `json:"session_id"`
	Timestamp        time.Time `json:"timestamp"`
	TextSnippet      string    `json:"text_snippet"`
	Topic            Topic     `json:"topic"`
	Language         Language  `json:"language"`
	HandoffTriggered bool      `json:"handoff_triggered"`
	Routed           Route     `json:"routed"`
}

// Snippet truncates a message to SnippetMaxLen runes for retention.
func Snippet(message string) string {
	if utf8.RuneCountInString(message) <= SnippetMaxLen {
		return message
	}
	runes := []rune(message)
	return string(runes[:SnippetMaxLen])
}
