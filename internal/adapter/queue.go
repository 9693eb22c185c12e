package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
)

const (
	defaultQueueSize = 256
	// deliveryTimeout bounds one background send or publish.
	deliveryTimeout = 10 * time.Second
	// drainTimeout bounds how long Close waits for queued work.
	drainTimeout = 30 * time.Second
)

var (
	errQueueFull    = errors.New("background queue is full")
	errQueueClosed  = errors.New("background queue is closed")
	errDrainTimeout = errors.New("background queue did not drain in time")
)

// backgroundQueue hands items to a single goroutine. enqueue never blocks:
// a full buffer rejects the item. close stops intake and waits for the
// goroutine to work off what was already queued.
type backgroundQueue[T any] struct {
	mu     sync.RWMutex
	closed bool
	inbox  chan T
	done   chan struct{}
}

func newBackgroundQueue[T any](size int, handle func(T)) *backgroundQueue[T] {
	if size <= 0 {
		size = defaultQueueSize
	}

	q := &backgroundQueue[T]{
		inbox: make(chan T, size),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(q.done)
		for item := range q.inbox {
			handle(item)
		}
	}()

	return q
}

func (q *backgroundQueue[T]) enqueue(item T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return errQueueClosed
	}

	select {
	case q.inbox <- item:
		return nil
	default:
		return errQueueFull
	}
}

func (q *backgroundQueue[T]) close(timeout time.Duration) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.inbox)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-time.After(timeout):
		return errDrainTimeout
	}
}

type publishJob struct {
	ctx   context.Context
	event models.Event
}

// publishQueue moves event publishing off the request path. Publish only
// enqueues; delivery errors are logged by the background goroutine.
type publishQueue struct {
	next  EventPublisher
	queue *backgroundQueue[publishJob]

	logger *logger.Logger
}

// NewPublishQueue wraps next so that Publish returns without waiting for the
// broker. Close flushes queued events and then closes next.
func NewPublishQueue(next EventPublisher, size int, logger *logger.Logger) EventPublisher {
	p := &publishQueue{next: next, logger: logger}
	p.queue = newBackgroundQueue(size, p.deliver)
	return p
}

func (p *publishQueue) Publish(ctx context.Context, event models.Event) error {
	job := publishJob{ctx: context.WithoutCancel(ctx), event: event}
	if err := p.queue.enqueue(job); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, event.Type, err)
	}
	return nil
}

func (p *publishQueue) deliver(job publishJob) {
	ctx, cancel := context.WithTimeout(job.ctx, deliveryTimeout)
	defer cancel()

	if err := p.next.Publish(ctx, job.event); err != nil {
		p.logger.Warn().Err(err).
			Str("func", "publishQueue.deliver").
			Str("event_type", job.event.Type).
			Str("key", job.event.Key).
			Msg("queued event was not published")
	}
}

func (p *publishQueue) Close() error {
	drainErr := p.queue.close(drainTimeout)
	if drainErr != nil {
		p.logger.Err(drainErr).Str("func", "publishQueue.Close").Msg("events may be lost")
	}
	return errors.Join(drainErr, p.next.Close())
}

type mailJob struct {
	ctx               context.Context
	to, subject, body string
}

// MailQueue is a [Notifier] that delivers in the background. Send reports
// only whether the mail was accepted into the queue.
type MailQueue struct {
	next  Notifier
	queue *backgroundQueue[mailJob]

	logger *logger.Logger
}

// NewMailQueue wraps next with a bounded queue of size entries.
func NewMailQueue(next Notifier, size int, logger *logger.Logger) *MailQueue {
	m := &MailQueue{next: next, logger: logger}
	m.queue = newBackgroundQueue(size, m.deliver)
	return m
}

func (m *MailQueue) Send(ctx context.Context, to, subject, body string) error {
	job := mailJob{ctx: context.WithoutCancel(ctx), to: to, subject: subject, body: body}
	if err := m.queue.enqueue(job); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return nil
}

func (m *MailQueue) deliver(job mailJob) {
	ctx, cancel := context.WithTimeout(job.ctx, deliveryTimeout)
	defer cancel()

	if err := m.next.Send(ctx, job.to, job.subject, job.body); err != nil {
		m.logger.Warn().Err(err).
			Str("func", "MailQueue.deliver").
			Str("subject", job.subject).
			Msg("queued mail was not sent")
	}
}

// Close stops accepting mail and waits for the queue to drain.
func (m *MailQueue) Close() error {
	if err := m.queue.close(drainTimeout); err != nil {
		m.logger.Err(err).Str("func", "MailQueue.Close").Msg("queued mail may be lost")
		return err
	}
	return nil
}
