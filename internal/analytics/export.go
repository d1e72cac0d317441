package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
)

// eventHeader is the fixed column order for exported events.
var eventHeader = []string{
	"timestamp", "session_id", "text_snippet", "topic", "language", "handoff_triggered", "routed",
}

// WriteCSV renders a report summary followed by the raw events as CSV.
// Rates are rendered at fixed two-decimal precision here, at the
// presentation boundary; the report itself carries unrounded values.
// Embedded quotes in snippets are escaped by doubling per standard CSV
// quoting, which encoding/csv does for us.
func WriteCSV(w io.Writer, report model.AnalyticsReport, events []model.Event) error {
	cw := csv.NewWriter(w)

	summary := [][]string{
		{"metric", "value"},
		{"total_events", strconv.Itoa(report.Usage.TotalEvents)},
		{"unique_sessions", strconv.Itoa(report.Usage.UniqueSessions)},
		{"handoff_rate", formatRate(report.Usage.HandoffRate)},
		{"average_events_per_session", formatRate(report.Sessions.AverageEventsPerSession)},
		{"abandonment_rate", formatRate(report.Sessions.AbandonmentRate)},
		{"conversion_rate", formatRate(report.Sessions.ConversionRate)},
		{"excluded_events", strconv.Itoa(report.ExcludedEvents)},
	}
	for _, record := range summary {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	if err := cw.Write([]string{"topic", "count", "percentage", "handoff_rate"}); err != nil {
		return fmt.Errorf("failed to write topic header: %w", err)
	}
	for _, ts := range report.Topics {
		record := []string{
			string(ts.Topic),
			strconv.Itoa(ts.Count),
			formatRate(ts.Percentage),
			formatRate(ts.HandoffRate),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write topic row: %w", err)
		}
	}

	if err := cw.Write(eventHeader); err != nil {
		return fmt.Errorf("failed to write event header: %w", err)
	}
	for _, ev := range events {
		record := []string{
			ev.Timestamp.Format(time.RFC3339),
			ev.SessionID,
			ev.TextSnippet,
			string(ev.Topic),
			string(ev.Language),
			strconv.FormatBool(ev.HandoffTriggered),
			string(ev.Routed),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write event row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
