// Package llm provides the primary reply generator. The pipeline treats it
// as an opaque function that returns text or fails; on failure the caller
// falls back to the response catalog.
package llm

import (
	"context"
	"strings"
)

// systemPrompt frames every completion. The generator may end its reply
// with the handoff marker when it judges the question needs a human; the
// marker is stripped before display and surfaced as a flag.
const systemPrompt = `You are Pranara, a warm, patient companion for Thai elders and their caregivers.
Answer briefly and gently, in the same language the user writes in (Thai or English).
Never give medication dosages or diagnoses. If the question needs a doctor, nurse,
or our human staff, say so and end your reply with the marker [handoff].`

// handoffMarker is the token the generator appends when it wants a human in
// the loop.
const handoffMarker = "[handoff]"

// ChatMessage is one turn of conversation context.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a single completion call.
type CompletionRequest struct {
	Model     string
	Messages  []ChatMessage
	MaxTokens int
}

// CompletionResponse is the generator's reply. FlaggedForHandoff is true
// when the model marked its own reply as needing human follow-up; the
// caller ORs it with the escalation advisor's recommendation.
type CompletionResponse struct {
	Content           string
	Model             string
	TokensIn          int
	TokensOut         int
	LatencyMs         int64
	FlaggedForHandoff bool
}

// Client is the interface for generation providers.
type Client interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string
}

// Provider is the type of generation provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// NewClient creates a generator client for the given provider.
func NewClient(provider Provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey)
	default:
		return NewAnthropicClient(apiKey)
	}
}

// stripHandoffMarker removes the handoff marker from a reply and reports
// whether it was present.
func stripHandoffMarker(content string) (string, bool) {
	if !strings.Contains(content, handoffMarker) {
		return content, false
	}
	return strings.TrimSpace(strings.ReplaceAll(content, handoffMarker, "")), true
}
