// Package analytics aggregates raw per-message events into session-level and
// cross-session reports: topic volumes, funnels, abandonment, conversion, and
// recurring topic-sequence patterns. The engine performs no I/O; the caller
// fetches the event window from the event log first.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
)

const (
	// flowLimit bounds the flow detail in a report. It is applied after all
	// aggregate stats are computed, so truncation never skews the numbers.
	flowLimit = 20

	// patternLimit bounds the recurring-pattern list.
	patternLimit = 10
)

// Window is the half-open time range a report covers. A zero window is
// derived from the events themselves.
type Window struct {
	Start time.Time
	End   time.Time
}

// Engine computes analytics reports. Stateless between calls; safe for
// concurrent use.
type Engine struct {
	loc *time.Location
}

// NewEngine creates an analytics engine. Hourly and daily bucketing uses
// loc; nil means the process-local timezone.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{loc: loc}
}

// Analyze produces a full report over the given events. Structurally invalid
// events (missing session id or timestamp) are dropped and counted in
// ExcludedEvents. Empty input yields a fully populated zero-valued report.
func (e *Engine) Analyze(events []model.Event, window Window) model.AnalyticsReport {
	report := emptyReport()

	valid := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.SessionID == "" || ev.Timestamp.IsZero() {
			report.ExcludedEvents++
			continue
		}
		valid = append(valid, ev)
	}

	e.aggregate(&report, valid)

	flows := e.extractFlows(valid)
	report.Patterns = minePatterns(flows)
	report.Sessions = sessionAnalytics(flows, len(valid))
	if len(flows) > flowLimit {
		flows = flows[:flowLimit]
	}
	report.Flows = flows

	report.DailyTrends = e.dailyTrends(valid, window)

	return report
}

func emptyReport() model.AnalyticsReport {
	return model.AnalyticsReport{
		Topics:   []model.TopicStats{},
		Flows:    []model.ConversationFlow{},
		Patterns: []model.Pattern{},
		Usage: model.UsageStats{
			LanguageDistribution: make(map[model.Language]int),
		},
		DailyTrends: []model.DailyTrend{},
		Sessions: model.SessionAnalytics{
			LengthDistribution: zeroLengthBuckets(),
		},
	}
}

// aggregate fills the single-pass stats: usage, topic analytics, and the
// hourly distribution.
func (e *Engine) aggregate(report *model.AnalyticsReport, events []model.Event) {
	type topicAgg struct {
		count    int
		handoffs int
	}

	topics := make(map[model.Topic]*topicAgg)
	sessions := make(map[string]bool)
	handoffs := 0

	for _, ev := range events {
		sessions[ev.SessionID] = true
		report.Usage.LanguageDistribution[ev.Language]++
		report.HourlyDistribution[ev.Timestamp.In(e.loc).Hour()]++

		agg := topics[ev.Topic]
		if agg == nil {
			agg = &topicAgg{}
			topics[ev.Topic] = agg
		}
		agg.count++
		if ev.HandoffTriggered {
			agg.handoffs++
			handoffs++
		}
	}

	report.Usage.TotalEvents = len(events)
	report.Usage.UniqueSessions = len(sessions)
	if len(events) > 0 {
		report.Usage.HandoffRate = float64(handoffs) / float64(len(events)) * 100
	}

	for topic, agg := range topics {
		stats := model.TopicStats{
			Topic:       topic,
			Count:       agg.count,
			Percentage:  float64(agg.count) / float64(len(events)) * 100,
			HandoffRate: float64(agg.handoffs) / float64(agg.count) * 100,
		}
		report.Topics = append(report.Topics, stats)
	}
	sort.SliceStable(report.Topics, func(i, j int) bool {
		if report.Topics[i].Count != report.Topics[j].Count {
			return report.Topics[i].Count > report.Topics[j].Count
		}
		return report.Topics[i].Topic < report.Topics[j].Topic
	})
}

// extractFlows groups events by session, orders each group by timestamp, and
// produces one flow per session in order of first appearance.
func (e *Engine) extractFlows(events []model.Event) []model.ConversationFlow {
	groups := make(map[string][]model.Event)
	var order []string

	for _, ev := range events {
		if _, seen := groups[ev.SessionID]; !seen {
			order = append(order, ev.SessionID)
		}
		groups[ev.SessionID] = append(groups[ev.SessionID], ev)
	}

	flows := make([]model.ConversationFlow, 0, len(order))
	for _, sessionID := range order {
		group := groups[sessionID]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})

		topics := make([]model.Topic, len(group))
		for i, ev := range group {
			topics[i] = ev.Topic
		}

		last := group[len(group)-1]
		flows = append(flows, model.ConversationFlow{
			SessionID:       sessionID,
			Topics:          topics,
			Steps:           len(group),
			DurationSeconds: last.Timestamp.Sub(group[0].Timestamp).Seconds(),
			HandoffAtEnd:    last.HandoffTriggered,
		})
	}

	return flows
}

// minePatterns keys flows by their exact ordered topic sequence and reports
// the most frequent sequences. [sleep diet] and [diet sleep] are distinct.
func minePatterns(flows []model.ConversationFlow) []model.Pattern {
	type patternAgg struct {
		topics        []model.Topic
		frequency     int
		totalDuration float64
		handoffs      int
	}

	aggs := make(map[string]*patternAgg)
	var keys []string

	for _, flow := range flows {
		key := sequenceKey(flow.Topics)
		agg := aggs[key]
		if agg == nil {
			agg = &patternAgg{topics: flow.Topics}
			aggs[key] = agg
			keys = append(keys, key)
		}
		agg.frequency++
		agg.totalDuration += flow.DurationSeconds
		if flow.HandoffAtEnd {
			agg.handoffs++
		}
	}

	patterns := make([]model.Pattern, 0, len(keys))
	for _, key := range keys {
		agg := aggs[key]
		patterns = append(patterns, model.Pattern{
			Topics:             agg.topics,
			Frequency:          agg.frequency,
			AvgDurationSeconds: agg.totalDuration / float64(agg.frequency),
			HandoffRate:        float64(agg.handoffs) / float64(agg.frequency) * 100,
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Frequency > patterns[j].Frequency
	})
	if len(patterns) > patternLimit {
		patterns = patterns[:patternLimit]
	}

	return patterns
}

func sequenceKey(topics []model.Topic) string {
	parts := make([]string, len(topics))
	for i, t := range topics {
		parts[i] = string(t)
	}
	return strings.Join(parts, ">")
}

// sessionAnalytics derives the session-level metrics. A single-event session
// counts as abandoned by definition; a session whose last event triggered a
// handoff counts as converted.
func sessionAnalytics(flows []model.ConversationFlow, totalEvents int) model.SessionAnalytics {
	sa := model.SessionAnalytics{LengthDistribution: zeroLengthBuckets()}

	if len(flows) == 0 {
		return sa
	}

	abandoned := 0
	converted := 0
	for _, flow := range flows {
		sa.LengthDistribution[lengthBucket(flow.Steps)]++
		if flow.Steps == 1 {
			abandoned++
		}
		if flow.HandoffAtEnd {
			converted++
		}
	}

	total := float64(len(flows))
	sa.AverageEventsPerSession = float64(totalEvents) / total
	sa.AbandonmentRate = float64(abandoned) / total * 100
	sa.ConversionRate = float64(converted) / total * 100

	return sa
}

func zeroLengthBuckets() map[string]int {
	return map[string]int{"1": 0, "2-3": 0, "4-5": 0, "6+": 0}
}

func lengthBucket(steps int) string {
	switch {
	case steps <= 1:
		return "1"
	case steps <= 3:
		return "2-3"
	case steps <= 5:
		return "4-5"
	default:
		return "6+"
	}
}

// dailyTrends zero-fills every calendar day in the window. A zero window is
// clamped to the span of the events; no events and no window yields an empty
// list.
func (e *Engine) dailyTrends(events []model.Event, window Window) []model.DailyTrend {
	start, end := window.Start, window.End
	if start.IsZero() || end.IsZero() {
		if len(events) == 0 {
			return []model.DailyTrend{}
		}
		start, end = events[0].Timestamp, events[0].Timestamp
		for _, ev := range events[1:] {
			if ev.Timestamp.Before(start) {
				start = ev.Timestamp
			}
			if ev.Timestamp.After(end) {
				end = ev.Timestamp
			}
		}
	}

	type dayAgg struct {
		events   int
		sessions map[string]bool
		handoffs int
	}

	days := make(map[string]*dayAgg)
	for _, ev := range events {
		key := ev.Timestamp.In(e.loc).Format("2006-01-02")
		agg := days[key]
		if agg == nil {
			agg = &dayAgg{sessions: make(map[string]bool)}
			days[key] = agg
		}
		agg.events++
		agg.sessions[ev.SessionID] = true
		if ev.HandoffTriggered {
			agg.handoffs++
		}
	}

	var trends []model.DailyTrend
	startDay := startOfDay(start.In(e.loc))
	endDay := startOfDay(end.In(e.loc))
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		trend := model.DailyTrend{Date: key}
		if agg, ok := days[key]; ok {
			trend.Events = agg.events
			trend.Sessions = len(agg.sessions)
			trend.Handoffs = agg.handoffs
		}
		trends = append(trends, trend)
	}

	return trends
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
