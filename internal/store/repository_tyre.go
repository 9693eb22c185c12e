package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/jackc/pgerrcode"
)

// tyreRepository is the PostgreSQL-backed implementation of [TyreRepository].
type tyreRepository struct {
	*DB
	logger *logger.Logger
}

func NewTyreRepository(db *DB, logger *logger.Logger) TyreRepository {
	logger.Debug().Msg("creating tyre repository")
	return &tyreRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateTyre stores a new tyre with empty reference lists.
func (t *tyreRepository) CreateTyre(ctx context.Context, tyre models.Tyre) (models.Tyre, error) {
	log := logger.FromContext(ctx)

	images := tyre.Images
	if images == nil {
		images = []string{}
	}

	row := t.QueryRowContext(ctx, createTyre,
		tyre.ID,
		tyre.Slug,
		tyre.Name,
		tyre.Brand,
		string(tyre.Category),
		tyre.Size,
		tyre.Price,
		tyre.OldPrice,
		tyre.Discount,
		tyre.Rating,
		tyre.Dealer,
		tyre.Stock,
		tyre.Popular,
		tyre.Description,
		images,
		tyre.UserID,
	)

	created, err := scanTyre(row)
	if err != nil {
		log.Err(err).Str("func", "tyreRepository.CreateTyre").Str("slug", tyre.Slug).Msg("failed to create tyre")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Tyre{}, ErrSlugAlreadyExists
		}
		return models.Tyre{}, t.classify(err, ErrExecutingStatement)
	}

	return created, nil
}

func (t *tyreRepository) FindTyreByID(ctx context.Context, id string) (models.Tyre, error) {
	return t.findOne(ctx, "tyreRepository.FindTyreByID", findTyreByID, id)
}

func (t *tyreRepository) FindTyreBySlug(ctx context.Context, slug string) (models.Tyre, error) {
	return t.findOne(ctx, "tyreRepository.FindTyreBySlug", findTyreBySlug, slug)
}

func (t *tyreRepository) findOne(ctx context.Context, funcName, query string, arg string) (models.Tyre, error) {
	log := logger.FromContext(ctx)

	tyre, err := scanTyre(t.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tyre{}, ErrTyreNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Str("key", arg).Msg("failed to find tyre")
		return models.Tyre{}, t.classify(err, ErrExecutingQuery)
	}

	return tyre, nil
}

// TyreExists reports whether a tyre with id exists. It runs outside any
// transaction and resolves the parent of a linked create.
func (t *tyreRepository) TyreExists(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := t.QueryRowContext(ctx, tyreExists, id).Scan(&exists); err != nil {
		log.Err(err).Str("func", "tyreRepository.TyreExists").Str("tyre_id", id).Msg("failed to check tyre")
		return false, t.classify(err, ErrExecutingQuery)
	}

	return exists, nil
}

// ListTyres returns one page of tyres matching filter and the total number of
// matches.
func (t *tyreRepository) ListTyres(ctx context.Context, filter models.TyreFilter) ([]models.Tyre, int64, error) {
	log := logger.FromContext(ctx)

	listQuery, listArgs, countQuery, countArgs, err := buildListTyresQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "tyreRepository.ListTyres").Msg("failed to create query")
		return nil, 0, err
	}

	var total int64
	if err = t.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "tyreRepository.ListTyres").Msg("failed to count tyres")
		return nil, 0, t.classify(err, ErrExecutingQuery)
	}

	rows, err := t.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).Str("func", "tyreRepository.ListTyres").Msg("failed to list tyres")
		return nil, 0, t.classify(err, ErrExecutingQuery)
	}
	defer rows.Close()

	tyres := make([]models.Tyre, 0, 20)
	for rows.Next() {
		tyre, scanErr := scanTyre(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "tyreRepository.ListTyres").Msg("failed to scan tyre row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		tyres = append(tyres, tyre)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "tyreRepository.ListTyres").Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return tyres, total, nil
}

// UpdateTyre locks the tyre row, merges update into it and writes the
// changed columns back in the same transaction. Images are capped at
// [models.MaxTyreImages] and the discount is recomputed from the resulting
// prices.
func (t *tyreRepository) UpdateTyre(ctx context.Context, update models.TyreUpdate) (models.Tyre, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "tyreRepository.UpdateTyre").
		Str("tyre_id", update.ID).
		Logger()

	tx, err := t.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return models.Tyre{}, t.classify(err, ErrBeginningTransaction)
	}
	defer tx.Rollback()

	current, err := scanTyre(tx.QueryRowContext(ctx, lockTyreByID, update.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tyre{}, ErrTyreNotFound
	}
	if err != nil {
		log.Err(err).Msg("failed to lock tyre")
		return models.Tyre{}, t.classify(err, ErrExecutingQuery)
	}

	merged := applyTyreUpdate(current, update)

	query, args, err := buildUpdateTyreQuery(update, merged)
	if err != nil {
		log.Err(err).Msg("failed to create query")
		return models.Tyre{}, err
	}

	updated, err := scanTyre(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Msg("failed to update tyre")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Tyre{}, ErrSlugAlreadyExists
		}
		return models.Tyre{}, t.classify(err, ErrExecutingStatement)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return models.Tyre{}, t.classify(err, ErrCommitingTransaction)
	}

	return updated, nil
}

// DeleteTyre removes the tyre. Reviews and enquiries pointing at it keep
// existing with a NULL link.
func (t *tyreRepository) DeleteTyre(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := t.ExecContext(ctx, deleteTyre, id)
	if err != nil {
		log.Err(err).Str("func", "tyreRepository.DeleteTyre").Str("tyre_id", id).Msg("failed to delete tyre")
		return t.classify(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTyreNotFound
	}

	return nil
}

// applyTyreUpdate returns current with every non-nil field of update applied.
func applyTyreUpdate(current models.Tyre, update models.TyreUpdate) models.Tyre {
	merged := current

	if update.Slug != nil {
		merged.Slug = *update.Slug
	}
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Brand != nil {
		merged.Brand = *update.Brand
	}
	if update.Category != nil {
		merged.Category = *update.Category
	}
	if update.Size != nil {
		merged.Size = *update.Size
	}
	if update.Price != nil {
		merged.Price = *update.Price
	}
	if update.OldPrice != nil {
		merged.OldPrice = *update.OldPrice
	}
	if update.Rating != nil {
		merged.Rating = *update.Rating
	}
	if update.Dealer != nil {
		merged.Dealer = *update.Dealer
	}
	if update.Stock != nil {
		merged.Stock = *update.Stock
	}
	if update.Popular != nil {
		merged.Popular = *update.Popular
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if len(update.NewImages) > 0 {
		merged.Images = models.MergeImages(current.Images, update.NewImages)
	}

	merged.Discount = models.ComputeDiscount(merged.Price, merged.OldPrice)
	return merged
}

func scanTyre(row rowScanner) (models.Tyre, error) {
	var (
		tyre     models.Tyre
		category string
	)

	err := row.Scan(
		&tyre.ID,
		&tyre.Slug,
		&tyre.Name,
		&tyre.Brand,
		&category,
		&tyre.Size,
		&tyre.Price,
		&tyre.OldPrice,
		&tyre.Discount,
		&tyre.Rating,
		&tyre.Dealer,
		&tyre.Stock,
		&tyre.Popular,
		&tyre.Description,
		textArray(&tyre.Images),
		textArray(&tyre.Reviews),
		textArray(&tyre.Enquiries),
		&tyre.UserID,
		&tyre.CreatedAt,
		&tyre.UpdatedAt,
	)
	tyre.Category = models.Category(category)

	return tyre, err
}
