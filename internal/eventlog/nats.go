package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
	natsclient "github.com/SpaceC00kies/pranara-prototype-sub001/internal/nats"
)

const (
	// StreamName is the name of the care-events stream.
	StreamName = "CARE_EVENTS"

	// SubjectPrefix is the prefix for all event subjects.
	SubjectPrefix = "care"

	// fetchBatchSize is the page size for Query reads.
	fetchBatchSize = 500
)

// NATSStore persists events in a NATS JetStream stream, one message per
// event, keyed by session and topic in the subject.
type NATSStore struct {
	client *natsclient.Client
}

// NewNATSStore creates a JetStream-backed event log and ensures the stream
// exists with the expected configuration.
func NewNATSStore(ctx context.Context, client *natsclient.Client) (*NATSStore, error) {
	s := &NATSStore{client: client}
	if err := s.ensureStream(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *NATSStore) ensureStream(ctx context.Context) error {
	js := s.client.JetStream()

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil // Stream already exists
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      365 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		DenyDelete:  true,
		DenyPurge:   true,
		Description: "Per-message conversation events for the signal pipeline",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// EventSubject returns the subject for an event.
func EventSubject(sessionID string, topic model.Topic) string {
	return fmt.Sprintf("%s.%s.event.%s", SubjectPrefix, sessionID, topic)
}

// Append publishes one event to the stream.
func (s *NATSStore) Append(ctx context.Context, ev model.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := s.client.JetStream().Publish(ctx, EventSubject(ev.SessionID, ev.Topic), data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Query reads the stream through an ephemeral consumer and returns the
// events inside the window. Any read failure is returned as an error so the
// caller can distinguish it from an empty window.
func (s *NATSStore) Query(ctx context.Context, w Window) ([]model.Event, error) {
	js := s.client.JetStream()

	consumerConfig := jetstream.ConsumerConfig{
		FilterSubject: fmt.Sprintf("%s.>", SubjectPrefix),
		AckPolicy:     jetstream.AckNonePolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	}
	if !w.Start.IsZero() {
		consumerConfig.DeliverPolicy = jetstream.DeliverByStartTimePolicy
		consumerConfig.OptStartTime = &w.Start
	}

	consumer, err := js.CreateConsumer(ctx, StreamName, consumerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	var events []model.Event
	for {
		batch, err := consumer.Fetch(fetchBatchSize, jetstream.FetchMaxWait(2*time.Second))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch events: %w", err)
		}

		n := 0
		for msg := range batch.Messages() {
			n++
			var ev model.Event
			if err := json.Unmarshal(msg.Data(), &ev); err != nil {
				// Malformed payloads are dropped; the analytics layer
				// tolerates gaps.
				continue
			}
			if w.Contains(ev.Timestamp) {
				events = append(events, ev)
			}
		}
		if batch.Error() != nil {
			return nil, fmt.Errorf("batch error: %w", batch.Error())
		}
		if n < fetchBatchSize {
			break
		}
	}

	return events, nil
}
