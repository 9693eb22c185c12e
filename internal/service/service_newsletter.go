package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// newsletterService manages the newsletter block of the landing page and its
// subscriber list.
type newsletterService struct {
	*sectionService[models.Newsletter]

	subscribers store.SubscriberRepository
	events      eventEmitter
}

func NewNewsletterService(
	sections store.SectionRepository,
	subscribers store.SubscriberRepository,
	validator validators.Validator,
	publisher adapter.EventPublisher,
	cfg config.Workers,
	logger *logger.Logger,
) NewsletterService {
	return &newsletterService{
		sectionService: newSectionService[models.Newsletter](models.SectionNewsletter, sections, nil, validator, nil, newRetryPolicy(cfg), logger),
		subscribers:    subscribers,
		events:         newEventEmitter(publisher),
	}
}

// Subscribe stores the lowercased address. A repeated address fails with
// store.ErrAlreadySubscribed.
func (n *newsletterService) Subscribe(ctx context.Context, req models.SubscribeRequest) (models.Subscriber, error) {
	req.Normalize()
	if err := n.validator.Validate(ctx, req); err != nil {
		return models.Subscriber{}, err
	}

	subscriber, err := n.subscribers.Subscribe(ctx, req.Email)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "newsletterService.Subscribe").Msg("subscription failed")
		return models.Subscriber{}, fmt.Errorf("subscription failed: %w", err)
	}

	n.events.emit(ctx, models.EventSubscribed, subscriber.Email, subscriber)
	return subscriber, nil
}

func (n *newsletterService) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	return n.subscribers.ListSubscribers(ctx)
}

func (n *newsletterService) Unsubscribe(ctx context.Context, req models.SubscribeRequest) error {
	req.Normalize()
	if err := n.validator.Validate(ctx, req); err != nil {
		return err
	}
	return n.subscribers.Unsubscribe(ctx, req.Email)
}
