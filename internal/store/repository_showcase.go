package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// showcaseRepository keeps the story, trusted story, testimonial and
// shop-by-vehicle collections in one "showcase_items" table, partitioned by
// kind.
type showcaseRepository struct {
	*DB
	logger *logger.Logger
}

func NewShowcaseRepository(db *DB, logger *logger.Logger) ShowcaseRepository {
	logger.Debug().Msg("creating showcase repository")
	return &showcaseRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *showcaseRepository) CreateItem(ctx context.Context, item models.ShowcaseItem) (models.ShowcaseItem, error) {
	log := logger.FromContext(ctx)

	created, err := scanShowcaseItem(s.QueryRowContext(ctx, createShowcaseItem, item.ID, string(item.Kind), []byte(item.Body)))
	if err != nil {
		log.Err(err).Str("func", "showcaseRepository.CreateItem").Str("kind", string(item.Kind)).Msg("failed to create item")
		return models.ShowcaseItem{}, s.classify(err, ErrExecutingStatement)
	}

	return created, nil
}

func (s *showcaseRepository) GetItem(ctx context.Context, kind models.ShowcaseKind, id string) (models.ShowcaseItem, error) {
	log := logger.FromContext(ctx)

	item, err := scanShowcaseItem(s.QueryRowContext(ctx, getShowcaseItem, string(kind), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShowcaseItem{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "showcaseRepository.GetItem").Str("kind", string(kind)).Str("id", id).Msg("failed to get item")
		return models.ShowcaseItem{}, s.classify(err, ErrExecutingQuery)
	}

	return item, nil
}

// ListItems returns every item of kind, newest first.
func (s *showcaseRepository) ListItems(ctx context.Context, kind models.ShowcaseKind) ([]models.ShowcaseItem, error) {
	log := logger.FromContext(ctx)

	rows, err := s.QueryContext(ctx, listShowcaseItems, string(kind))
	if err != nil {
		log.Err(err).Str("func", "showcaseRepository.ListItems").Str("kind", string(kind)).Msg("failed to list items")
		return nil, s.classify(err, ErrExecutingQuery)
	}
	defer rows.Close()

	items := make([]models.ShowcaseItem, 0, 20)
	for rows.Next() {
		item, scanErr := scanShowcaseItem(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "showcaseRepository.ListItems").Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "showcaseRepository.ListItems").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// UpdateItem locks the item, applies mutate to its body and stores the
// result in one transaction.
func (s *showcaseRepository) UpdateItem(ctx context.Context, kind models.ShowcaseKind, id string, mutate ShowcaseMutator) (models.ShowcaseItem, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "showcaseRepository.UpdateItem").
		Str("kind", string(kind)).
		Str("id", id).
		Logger()

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return models.ShowcaseItem{}, s.classify(err, ErrBeginningTransaction)
	}
	defer tx.Rollback()

	var current []byte
	err = tx.QueryRowContext(ctx, lockShowcaseItem, string(kind), id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShowcaseItem{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).Msg("failed to lock item")
		return models.ShowcaseItem{}, s.classify(err, ErrExecutingQuery)
	}

	next, err := mutate(current)
	if err != nil {
		return models.ShowcaseItem{}, err
	}

	item, err := scanShowcaseItem(tx.QueryRowContext(ctx, updateShowcaseItem, []byte(next), string(kind), id))
	if err != nil {
		log.Err(err).Msg("failed to store item")
		return models.ShowcaseItem{}, s.classify(err, ErrExecutingStatement)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return models.ShowcaseItem{}, s.classify(err, ErrCommitingTransaction)
	}

	return item, nil
}

func (s *showcaseRepository) DeleteItem(ctx context.Context, kind models.ShowcaseKind, id string) error {
	log := logger.FromContext(ctx)

	result, err := s.ExecContext(ctx, deleteShowcaseItem, string(kind), id)
	if err != nil {
		log.Err(err).Str("func", "showcaseRepository.DeleteItem").Str("kind", string(kind)).Str("id", id).Msg("failed to delete item")
		return s.classify(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func scanShowcaseItem(row rowScanner) (models.ShowcaseItem, error) {
	var (
		item models.ShowcaseItem
		kind string
		body []byte
	)

	err := row.Scan(&item.ID, &kind, &body, &item.CreatedAt, &item.UpdatedAt)
	item.Kind = models.ShowcaseKind(kind)
	item.Body = body

	return item, err
}
