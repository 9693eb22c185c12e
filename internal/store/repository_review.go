package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// reviewRepository is the PostgreSQL-backed implementation of
// [ReviewRepository]. Creation and deletion go through the linked helpers
// so that the reviews list of the tyre follows every change.
type reviewRepository struct {
	*DB
	logger *logger.Logger
}

func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	logger.Debug().Msg("creating review repository")
	return &reviewRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateLinked inserts review and appends its id to the tyre it points at.
// review.ID and review.TyreID must be set.
func (r *reviewRepository) CreateLinked(ctx context.Context, review models.Review) (models.Review, error) {
	if review.TyreID == nil {
		return models.Review{}, ErrParentNotFound
	}

	var created models.Review
	err := r.linkedCreate(ctx, ReviewLink, *review.TyreID, review.ID, func(ctx context.Context, tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, createReview,
			review.ID,
			review.Name,
			review.Location,
			review.Rating,
			review.Comment,
			*review.TyreID,
			review.Approved,
		)

		var err error
		created, err = scanReview(row)
		return err
	})
	if err != nil {
		return models.Review{}, err
	}

	return created, nil
}

// DeleteLinked deletes the review and removes its id from the tyre list.
func (r *reviewRepository) DeleteLinked(ctx context.Context, id string) (*string, error) {
	tyreID, err := r.linkedDelete(ctx, ReviewLink, id)
	if errors.Is(err, ErrChildNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrReviewNotFound, err)
	}
	return tyreID, err
}

// ListReviews returns all reviews, newest first.
func (r *reviewRepository) ListReviews(ctx context.Context) ([]models.Review, error) {
	return r.list(ctx, "reviewRepository.ListReviews", listReviews)
}

// ListApprovedReviewsByTyre returns the approved reviews of one tyre, newest
// first.
func (r *reviewRepository) ListApprovedReviewsByTyre(ctx context.Context, tyreID string) ([]models.Review, error) {
	return r.list(ctx, "reviewRepository.ListApprovedReviewsByTyre", listApprovedReviewsByTyre, tyreID)
}

func (r *reviewRepository) list(ctx context.Context, funcName, query string, args ...any) ([]models.Review, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query for reviews")
		return nil, r.classify(err, ErrExecutingQuery)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0, 20)
	for rows.Next() {
		review, scanErr := scanReview(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan review row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		reviews = append(reviews, review)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return reviews, nil
}

// SetReviewApproved toggles the approval flag. It is a single-row update and
// does not touch the tyre.
func (r *reviewRepository) SetReviewApproved(ctx context.Context, id string, approved bool) (models.Review, error) {
	log := logger.FromContext(ctx)

	review, err := scanReview(r.QueryRowContext(ctx, setReviewApproved, approved, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Review{}, ErrReviewNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.SetReviewApproved").Str("review_id", id).Msg("failed to update review")
		return models.Review{}, r.classify(err, ErrExecutingStatement)
	}

	return review, nil
}

func scanReview(row rowScanner) (models.Review, error) {
	var review models.Review
	err := row.Scan(
		&review.ID,
		&review.Name,
		&review.Location,
		&review.Rating,
		&review.Comment,
		&review.TyreID,
		&review.Approved,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	return review, err
}
