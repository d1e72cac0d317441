package model

// TopicStats summarizes event volume for a single topic.
type TopicStats struct {
	Topic       Topic   `json:"topic"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	HandoffRate float64 `json:"handoff_rate"`
}

// UsageStats holds single-pass aggregate counts over an event window.
type UsageStats struct {
	TotalEvents          int              `json:"total_events"`
	UniqueSessions       int              `json:"unique_sessions"`
	LanguageDistribution map[Language]int `json:"language_distribution"`
	HandoffRate          float64          `json:"handoff_rate"`
}

// ConversationFlow is the per-session summary: the ordered topic sequence
// with derived duration and outcome.
type ConversationFlow struct {
	SessionID       string  `json:"session_id"`
	Topics          []Topic `json:"topics"`
	Steps           int     `json:"steps"`
	DurationSeconds float64 `json:"duration_seconds"`
	HandoffAtEnd    bool    `json:"handoff_at_end"`
}

// Pattern is a recurring exact topic sequence observed across sessions.
type Pattern struct {
	Topics             []Topic `json:"topics"`
	Frequency          int     `json:"frequency"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
	HandoffRate        float64 `json:"handoff_rate"`
}

// DailyTrend is one calendar day of activity within the requested window.
type DailyTrend struct {
	Date     string `json:"date"`
	Events   int    `json:"events"`
	Sessions int    `json:"sessions"`
	Handoffs int    `json:"handoffs"`
}

// SessionAnalytics holds session-level derived metrics.
type SessionAnalytics struct {
	AverageEventsPerSession float64        `json:"average_events_per_session"`
	LengthDistribution      map[string]int `json:"session_length_distribution"`
	AbandonmentRate         float64        `json:"abandonment_rate"`
	ConversionRate          float64        `json:"conversion_rate"`
}

// AnalyticsReport is the full output of the analytics engine. Percentage
// fields are plain floating point; rounding happens only at presentation
// boundaries such as the CSV export.
type AnalyticsReport struct {
	Topics             []TopicStats       `json:"topic_analytics"`
	Usage              UsageStats         `json:"usage_stats"`
	Flows              []ConversationFlow `json:"flows"`
	Patterns           []Pattern          `json:"patterns"`
	HourlyDistribution [24]int            `json:"hourly_distribution"`
	DailyTrends        []DailyTrend       `json:"daily_trends"`
	Sessions           SessionAnalytics   `json:"session_analytics"`
	ExcludedEvents     int                `json:"excluded_events,omitempty"`
}
