package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// afterCommitTimeout bounds side effects that run once a change is committed.
// They are detached from the request so that a client hanging up does not
// cancel them.
const afterCommitTimeout = 10 * time.Second

// eventEmitter publishes domain events without failing the caller.
type eventEmitter struct {
	publisher adapter.EventPublisher
	ids       *utils.UUIDGenerator
}

func newEventEmitter(publisher adapter.EventPublisher) eventEmitter {
	return eventEmitter{publisher: publisher, ids: utils.NewUUIDGenerator()}
}

func (e eventEmitter) emit(ctx context.Context, eventType, key string, payload any) {
	if e.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitTimeout)
	defer cancel()

	event := models.Event{
		ID:         e.ids.Generate(),
		Type:       eventType,
		Key:        key,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "eventEmitter.emit").
			Str("event_type", eventType).
			Str("key", key).
			Msg("event was not published")
	}
}

// notify sends mail through notifier and only logs a failure.
func notify(ctx context.Context, notifier adapter.Notifier, to, subject, body string) {
	if notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitTimeout)
	defer cancel()

	if err := notifier.Send(ctx, to, subject, body); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "notify").
			Str("subject", subject).
			Msg("notification was not sent")
	}
}
