package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := &kafkaPublisher{writer: writer, logger: logger.Nop()}

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	event := models.Event{
		ID:         "evt-1",
		Type:       models.EventReviewCreated,
		Key:        "tyre-1",
		Payload:    map[string]string{"_id": "review-1"},
		OccurredAt: at,
	}

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, []byte("tyre-1"), msg.Key)
	assert.Equal(t, at, msg.Time)
	assert.Equal(t, []kafka.Header{{Key: "event_type", Value: []byte("review.created")}}, msg.Headers)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "review.created", decoded["type"])
	assert.Equal(t, map[string]any{"_id": "review-1"}, decoded["payload"])

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_Errors(t *testing.T) {
	p := &kafkaPublisher{writer: &fakeWriter{err: errors.New("leader not available")}, logger: logger.Nop()}
	require.ErrorIs(t, p.Publish(context.Background(), models.Event{Type: "x"}), ErrPublishFailed)

	p = &kafkaPublisher{writer: &fakeWriter{}, logger: logger.Nop()}
	require.ErrorIs(t, p.Publish(context.Background(), models.Event{Type: "x", Payload: make(chan int)}), ErrPublishFailed)
}

// ── Selection ───────────────────────────────────────────────────────────────

func TestNewAdapters_Selection(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		a := NewAdapters(config.Adapter{}, logger.Nop())
		assert.IsType(t, nopUploader{}, a.Uploader)
		assert.IsType(t, nopNotifier{}, a.Notifier)
		assert.IsType(t, nopPublisher{}, a.Publisher)
		require.NotNil(t, a.MailQueue)
		require.NoError(t, a.Notifier.Send(context.Background(), "a@b.co", "s", "b"))
		require.NoError(t, a.MailQueue.Send(context.Background(), "a@b.co", "s", "b"))
		require.NoError(t, a.Close())
	})

	t.Run("sendgrid wins over smtp", func(t *testing.T) {
		a := NewAdapters(config.Adapter{
			Cloudinary: config.Cloudinary{CloudName: "c", APIKey: "k", APISecret: "s"},
			SMTP:       config.SMTP{Host: "mail.example.com"},
			SendGrid:   config.SendGrid{APIKey: "sg"},
			Kafka:      config.Kafka{Brokers: []string{"localhost:9092"}, Topic: "t"},
		}, logger.Nop())
		assert.IsType(t, &cloudinaryUploader{}, a.Uploader)
		assert.IsType(t, &sendgridNotifier{}, a.Notifier)
		require.IsType(t, &publishQueue{}, a.Publisher)
		assert.IsType(t, &kafkaPublisher{}, a.Publisher.(*publishQueue).next)
		require.NoError(t, a.Close())
	})

	t.Run("smtp only", func(t *testing.T) {
		a := NewAdapters(config.Adapter{SMTP: config.SMTP{Host: "mail.example.com"}}, logger.Nop())
		assert.IsType(t, &smtpNotifier{}, a.Notifier)
	})
}
