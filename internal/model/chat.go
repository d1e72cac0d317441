package model

// SendMessageRequest is the request to send a chat message.
type SendMessageRequest struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

// EscalationAdvice is the escalation recommendation surfaced to the UI.
type EscalationAdvice struct {
	ShouldRecommend bool   `json:"should_recommend"`
	Urgency         string `json:"urgency"`
	Reason          string `json:"reason"`
	DisplayMessage  string `json:"display_message,omitempty"`
}

// SendMessageResponse is the reply to a chat message.
type SendMessageResponse struct {
	Reply           string            `json:"reply"`
	Topic           Topic             `json:"topic"`
	Confidence      float64           `json:"confidence"`
	MatchedKeywords []string          `json:"matched_keywords,omitempty"`
	Routed          Route             `json:"routed"`
	Escalation      *EscalationAdvice `json:"escalation,omitempty"`
	TurnCount       int               `json:"turn_count"`
}

// HandoffRequest records that the user acted on a handoff recommendation.
type HandoffRequest struct {
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
}
