// Package eventlog provides the append-only store of per-message events.
// The pipeline only consumes and produces records; persistence technology is
// behind the Store interface.
package eventlog

import (
	"context"
	"time"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
)

// Window bounds a query by event timestamp. Zero Start or End leaves that
// side open.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// Store is the append-only event log. Query failures are surfaced as errors
// and must never be conflated with an empty result.
type Store interface {
	// Append records one event.
	Append(ctx context.Context, ev model.Event) error

	// Query returns all events whose timestamp falls inside the window.
	Query(ctx context.Context, w Window) ([]model.Event, error)
}
