package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/SscSPs/general_ledger/internal/core/ports/events"
	"github.com/SscSPs/general_ledger/internal/dto"
)

// EventJournalPosted is the type carried by every message this publisher writes.
const EventJournalPosted = "journal.posted"

// JournalPostedEvent is the message body. Consumers dedupe on EventID or on
// the journal number, which is also the message key.
type JournalPostedEvent struct {
	EventID    string              `json:"eventId"`
	EventType  string              `json:"eventType"`
	OccurredAt time.Time           `json:"occurredAt"`
	Journal    dto.JournalResponse `json:"journal"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
	clock  func() time.Time
}

// NewPublisher writes to topic with acks from all in-sync replicas.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		clock: time.Now,
	}
}

var _ events.JournalPublisher = (*Publisher)(nil)

// PublishJournalPosted writes one message per entry in a single batch.
func (p *Publisher) PublishJournalPosted(ctx context.Context, entries ...domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(entries))
	for i := range entries {
		event := JournalPostedEvent{
			EventID:    uuid.NewString(),
			EventType:  EventJournalPosted,
			OccurredAt: p.clock().UTC(),
			Journal:    dto.ToJournalResponse(&entries[i]),
		}
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode %s: %w", entries[i].JournalNumber, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(entries[i].JournalNumber),
			Value: data,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(EventJournalPosted)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close flushes pending writes.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
