package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
)

func TestWriteCSVEventColumnsAndQuoting(t *testing.T) {
	e := NewEngine(time.UTC)

	events := []model.Event{
		{
			SessionID:        "A",
			Timestamp:        time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
			TextSnippet:      `she said "help me", then stopped`,
			Topic:            model.TopicEmergency,
			Language:         model.LanguageEnglish,
			HandoffTriggered: true,
			Routed:           model.RouteFallback,
		},
	}
	report := e.Analyze(events, Window{})

	var buf strings.Builder
	if err := WriteCSV(&buf, report, events); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "timestamp,session_id,text_snippet,topic,language,handoff_triggered,routed") {
		t.Error("event header with fixed column order missing")
	}

	// Embedded quotes are escaped by doubling.
	if !strings.Contains(out, `"she said ""help me"", then stopped"`) {
		t.Errorf("snippet quoting wrong in output:\n%s", out)
	}

	if !strings.Contains(out, "2025-06-10T09:00:00Z,A,") {
		t.Error("event row missing timestamp and session id")
	}
	if !strings.Contains(out, ",emergency,en,true,fallback") {
		t.Error("event row missing topic, language, handoff flag, route")
	}
}

func TestWriteCSVSummaryUsesFixedPrecision(t *testing.T) {
	e := NewEngine(time.UTC)

	// Three sessions, one abandoned: abandonment is 33.333..., rendered at
	// two decimals only in the export.
	events := []model.Event{
		ev("A", t0, model.TopicSleep, false),
		ev("A", t0.Add(time.Minute), model.TopicSleep, false),
		ev("B", t0, model.TopicDiet, false),
		ev("B", t0.Add(time.Minute), model.TopicDiet, false),
		ev("C", t0, model.TopicMood, false),
	}
	report := e.Analyze(events, Window{})

	var buf strings.Builder
	if err := WriteCSV(&buf, report, events); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "abandonment_rate,33.33") {
		t.Errorf("abandonment_rate not rendered at fixed precision:\n%s", out)
	}
	if !strings.Contains(out, "total_events,5") {
		t.Error("total_events summary row missing")
	}
	if !strings.Contains(out, "unique_sessions,3") {
		t.Error("unique_sessions summary row missing")
	}
}

func TestWriteCSVEmptyReport(t *testing.T) {
	e := NewEngine(time.UTC)
	report := e.Analyze(nil, Window{})

	var buf strings.Builder
	if err := WriteCSV(&buf, report, nil); err != nil {
		t.Fatalf("WriteCSV on empty report: %v", err)
	}
	if !strings.Contains(buf.String(), "total_events,0") {
		t.Error("empty export missing zeroed summary")
	}
}
