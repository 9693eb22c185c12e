package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

type reviewService struct {
	reviews   store.ReviewRepository
	linker    childLinker[models.Review]
	validator validators.Validator
	events    eventEmitter
	ids       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewReviewService(
	tyres store.TyreRepository,
	reviews store.ReviewRepository,
	validator validators.Validator,
	publisher adapter.EventPublisher,
	cfg config.Workers,
	logger *logger.Logger,
) ReviewService {
	return &reviewService{
		reviews:   reviews,
		linker:    childLinker[models.Review]{tyres: tyres, children: reviews, policy: newRetryPolicy(cfg)},
		validator: validator,
		events:    newEventEmitter(publisher),
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// CreateReview validates in, then stores the review and appends it to the
// reviews of its tyre in one transaction. New reviews are approved.
func (r *reviewService) CreateReview(ctx context.Context, in models.ReviewInput) (models.Review, error) {
	in.Normalize()
	if err := r.validator.Validate(ctx, in); err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		ID:       r.ids.Generate(),
		Name:     in.Name,
		Rating:   in.Rating,
		Comment:  in.Comment,
		TyreID:   &in.TyreID,
		Approved: true,
	}
	if in.Location != "" {
		review.Location = &in.Location
	}

	created, err := r.linker.create(ctx, in.TyreID, review)
	if err != nil {
		return models.Review{}, err
	}

	r.events.emit(ctx, models.EventReviewCreated, in.TyreID, created)
	return created, nil
}

func (r *reviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	return r.reviews.ListReviews(ctx)
}

// ListApprovedReviews returns the approved reviews of a tyre, newest first.
// An id that cannot name a tyre yields an empty list.
func (r *reviewService) ListApprovedReviews(ctx context.Context, tyreID string) ([]models.Review, error) {
	if !utils.IsUUID(tyreID) {
		return []models.Review{}, nil
	}
	return r.reviews.ListApprovedReviewsByTyre(ctx, tyreID)
}

func (r *reviewService) SetApproved(ctx context.Context, id string, approval models.ReviewApproval) (models.Review, error) {
	if err := r.validator.Validate(ctx, approval); err != nil {
		return models.Review{}, err
	}
	if !utils.IsUUID(id) {
		return models.Review{}, store.ErrReviewNotFound
	}

	review, err := r.reviews.SetReviewApproved(ctx, id, *approval.Approved)
	if err != nil {
		return models.Review{}, fmt.Errorf("review approval failed: %w", err)
	}
	return review, nil
}

// DeleteReview removes the review and pulls it from its tyre. A review whose
// tyre is gone is still deleted.
func (r *reviewService) DeleteReview(ctx context.Context, id string) error {
	tyreID, err := r.linker.delete(ctx, id, store.ErrReviewNotFound)
	if err != nil {
		return err
	}

	key := ""
	if tyreID != nil {
		key = *tyreID
	}
	r.events.emit(ctx, models.EventReviewDeleted, key, map[string]string{"_id": id})
	return nil
}
