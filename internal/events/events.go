// Package events publishes change notifications for the stored documents.
// Publishing is best-effort: the document write has already succeeded by the
// time an event is sent, and callers only log publish failures.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// DocumentChanged announces that a whole document was replaced.
type DocumentChanged struct {
	// Document is the document name, e.g. "trip" or "sharing".
	Document string `json:"document"`
	// Operation names the edit that produced the new version, e.g. "move_meal".
	Operation string    `json:"operation"`
	At        time.Time `json:"at"`
}

// Publisher sends DocumentChanged events somewhere.
type Publisher interface {
	Publish(ctx context.Context, ev DocumentChanged) error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, DocumentChanged) error { return nil }

// messageWriter is the subset of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON to a Kafka topic, keyed by document
// name so all changes to one document land on the same partition in order.
type KafkaPublisher struct {
	w messageWriter
}

// NewKafkaPublisher returns a publisher writing to topic on brokers.
// The writer is asynchronous so a slow or unreachable broker never delays the
// request that changed the document; delivery failures are reported to log.
// Call Close on shutdown to flush buffered messages.
func NewKafkaPublisher(brokers []string, topic string, log *slog.Logger) *KafkaPublisher {
	if log == nil {
		log = slog.Default()
	}
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             deliveryReport(log, topic),
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}}
}

// deliveryReport logs batches the async writer failed to deliver.
func deliveryReport(log *slog.Logger, topic string) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		log.Warn("deliver change events failed",
			"topic", topic,
			"messages", len(msgs),
			"error", err,
		)
	}
}

// Publish encodes ev and hands it to the writer. With the async writer built
// by NewKafkaPublisher the returned error only covers encoding and a closed
// writer.
func (p *KafkaPublisher) Publish(ctx context.Context, ev DocumentChanged) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events.KafkaPublisher.Publish: encode: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.Document),
		Value: value,
		Time:  ev.At,
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events.KafkaPublisher.Publish: %w", err)
	}
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
