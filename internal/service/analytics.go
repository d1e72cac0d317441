package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/analytics"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/eventlog"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/logger"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/metrics"
)

// AnalyticsService builds usage reports from the event log.
type AnalyticsService struct {
	events      eventlog.Store
	engine      *analytics.Engine
	logger      *logger.Logger
	defaultDays int
	maxDays     int

	// now is swappable for tests.
	now func() time.Time
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(events eventlog.Store, engine *analytics.Engine, defaultDays, maxDays int, log *logger.Logger) *AnalyticsService {
	if defaultDays <= 0 {
		defaultDays = 7
	}
	if maxDays < defaultDays {
		maxDays = defaultDays
	}
	return &AnalyticsService{
		events:      events,
		engine:      engine,
		logger:      log,
		defaultDays: defaultDays,
		maxDays:     maxDays,
		now:         time.Now,
	}
}

// Report fetches events for the trailing window and computes the analytics
// report. A fetch failure is returned as an error, never as an empty report.
func (s *AnalyticsService) Report(ctx context.Context, days int) (model.AnalyticsReport, error) {
	report, _, err := s.build(ctx, days)
	return report, err
}

// ExportCSV writes the report for the trailing window as CSV.
func (s *AnalyticsService) ExportCSV(ctx context.Context, w io.Writer, days int) error {
	report, events, err := s.build(ctx, days)
	if err != nil {
		return err
	}
	return analytics.WriteCSV(w, report, events)
}

func (s *AnalyticsService) build(ctx context.Context, days int) (model.AnalyticsReport, []model.Event, error) {
	window := s.window(days)

	events, err := s.events.Query(ctx, eventlog.Window{Start: window.Start, End: window.End})
	if err != nil {
		return model.AnalyticsReport{}, nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	start := time.Now()
	report := s.engine.Analyze(events, window)
	metrics.AnalyticsDuration.Observe(time.Since(start).Seconds())

	return report, events, nil
}

// window clamps the requested day count to the configured bounds and returns
// the trailing time window ending now.
func (s *AnalyticsService) window(days int) analytics.Window {
	if days <= 0 {
		days = s.defaultDays
	}
	if days > s.maxDays {
		days = s.maxDays
	}
	end := s.now()
	return analytics.Window{Start: end.AddDate(0, 0, -days), End: end}
}
