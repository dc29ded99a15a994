// Package events publishes trip lifecycle events for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event types.
const (
	TripCreated          = "trip.created"
	TripConfirmed        = "trip.confirmed"
	ParticipantInvited   = "participant.invited"
	ParticipantConfirmed = "participant.confirmed"
)

// Event is the JSON payload written for every committed state change.
type Event struct {
	Type          string     `json:"type"`
	TripID        uuid.UUID  `json:"trip_id"`
	ParticipantID *uuid.UUID `json:"participant_id,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// Publisher emits events. Callers treat publishing as best-effort.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// KafkaPublisher writes events to a single topic, keyed by trip id so that all
// events of one trip land on the same partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a KafkaPublisher for topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

// Publish writes e synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	msg, err := encode(e)
	if err != nil {
		return fmt.Errorf("events.KafkaPublisher.Publish: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events.KafkaPublisher.Publish: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encode(e Event) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(e.TripID.String()),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
		},
	}, nil
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
