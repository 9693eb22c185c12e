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

// growthRepository stores one growth figure per year.
type growthRepository struct {
	*DB
	logger *logger.Logger
}

func NewGrowthRepository(db *DB, logger *logger.Logger) GrowthRepository {
	logger.Debug().Msg("creating growth repository")
	return &growthRepository{
		DB:     db,
		logger: logger,
	}
}

func (g *growthRepository) CreateGrowth(ctx context.Context, growth models.Growth) (models.Growth, error) {
	log := logger.FromContext(ctx)

	created, err := scanGrowth(g.QueryRowContext(ctx, createGrowth, growth.Year, growth.Growth))
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Growth{}, ErrGrowthAlreadyExists
		}
		log.Err(err).Str("func", "growthRepository.CreateGrowth").Int("year", growth.Year).Msg("failed to create growth")
		return models.Growth{}, g.classify(err, ErrExecutingStatement)
	}

	return created, nil
}

// ListGrowth returns all records ordered by year.
func (g *growthRepository) ListGrowth(ctx context.Context) ([]models.Growth, error) {
	log := logger.FromContext(ctx)

	rows, err := g.QueryContext(ctx, listGrowth)
	if err != nil {
		log.Err(err).Str("func", "growthRepository.ListGrowth").Msg("failed to list growth")
		return nil, g.classify(err, ErrExecutingQuery)
	}
	defer rows.Close()

	records := make([]models.Growth, 0, 10)
	for rows.Next() {
		record, scanErr := scanGrowth(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "growthRepository.ListGrowth").Msg("failed to scan growth row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

func (g *growthRepository) GetGrowth(ctx context.Context, year int) (models.Growth, error) {
	log := logger.FromContext(ctx)

	record, err := scanGrowth(g.QueryRowContext(ctx, getGrowth, year))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Growth{}, ErrGrowthNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "growthRepository.GetGrowth").Int("year", year).Msg("failed to get growth")
		return models.Growth{}, g.classify(err, ErrExecutingQuery)
	}

	return record, nil
}

func (g *growthRepository) UpdateGrowth(ctx context.Context, year int, growth float64) (models.Growth, error) {
	log := logger.FromContext(ctx)

	record, err := scanGrowth(g.QueryRowContext(ctx, updateGrowth, growth, year))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Growth{}, ErrGrowthNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "growthRepository.UpdateGrowth").Int("year", year).Msg("failed to update growth")
		return models.Growth{}, g.classify(err, ErrExecutingStatement)
	}

	return record, nil
}

func (g *growthRepository) DeleteGrowth(ctx context.Context, year int) error {
	log := logger.FromContext(ctx)

	result, err := g.ExecContext(ctx, deleteGrowth, year)
	if err != nil {
		log.Err(err).Str("func", "growthRepository.DeleteGrowth").Int("year", year).Msg("failed to delete growth")
		return g.classify(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrGrowthNotFound
	}

	return nil
}

// DeleteAllGrowth removes every record and returns how many were removed.
func (g *growthRepository) DeleteAllGrowth(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := g.ExecContext(ctx, deleteAllGrowth)
	if err != nil {
		log.Err(err).Str("func", "growthRepository.DeleteAllGrowth").Msg("failed to delete growth")
		return 0, g.classify(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func scanGrowth(row rowScanner) (models.Growth, error) {
	var record models.Growth
	err := row.Scan(&record.Year, &record.Growth, &record.CreatedAt, &record.UpdatedAt)
	return record, err
}
