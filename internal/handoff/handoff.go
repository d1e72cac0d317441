// Package handoff is the boundary to the human-operated channel. The
// pipeline only decides to suggest a handoff and records that the user acted
// on it; channel delivery itself lives outside this service.
package handoff

import (
	"context"

	"go.uber.org/zap"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/logger"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/metrics"
)

// Channel opens the external human channel for a session.
type Channel interface {
	Open(ctx context.Context, sessionID string, topic model.Topic, reason string) error
}

// LogChannel records handoff openings in the logs and metrics. It stands in
// for the real messaging integration, which receives the same call shape.
type LogChannel struct {
	logger *logger.Logger
}

// NewLogChannel creates a logging handoff channel.
func NewLogChannel(log *logger.Logger) *LogChannel {
	return &LogChannel{logger: log}
}

// Open records that the user moved to the human channel.
func (c *LogChannel) Open(ctx context.Context, sessionID string, topic model.Topic, reason string) error {
	c.logger.Info("handoff channel opened",
		zap.String("session_id", sessionID),
		zap.String("topic", string(topic)),
		zap.String("reason", reason),
	)
	metrics.HandoffsOpened.WithLabelValues(string(topic), reason).Inc()
	return nil
}
