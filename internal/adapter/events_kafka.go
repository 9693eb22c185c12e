package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event_type"

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter

	logger *logger.Logger
}

// NewKafkaPublisher returns an [EventPublisher] writing JSON events to
// cfg.Topic. Events are keyed by their aggregate id, so all events of one
// tyre land on the same partition.
//
// The writer is asynchronous: WriteMessages only batches, broker errors are
// reported to the completion callback and Close flushes pending batches.
func NewKafkaPublisher(cfg config.Kafka, logger *logger.Logger) EventPublisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
			Async:                  true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logger.Warn().Err(err).Int("messages", len(messages)).Msg("event batch was not delivered")
				}
			},
		},
		logger: logger,
	}
}

func (k *kafkaPublisher) Publish(ctx context.Context, event models.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPublishFailed, event.Type, err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.Key),
		Value:   value,
		Time:    event.OccurredAt,
		Headers: []kafka.Header{{Key: eventTypeHeader, Value: []byte(event.Type)}},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	k.logger.Debug().Str("event_type", event.Type).Str("key", event.Key).Msg("event published")
	return nil
}

func (k *kafkaPublisher) Close() error {
	return k.writer.Close()
}
