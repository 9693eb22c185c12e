package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/jackc/pgerrcode"
)

// sectionRepository is the PostgreSQL-backed implementation of
// [SectionRepository]. Every section kind has at most one row in
// "site_sections"; the primary key on kind rejects a second create.
type sectionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSectionRepository(db *DB, logger *logger.Logger) SectionRepository {
	logger.Debug().Msg("creating section repository")
	return &sectionRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *sectionRepository) CreateSection(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	log := logger.FromContext(ctx)

	section, err := scanSection(s.QueryRowContext(ctx, createSection, string(kind), []byte(body)))
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Section{}, ErrSectionAlreadyExists
		}
		log.Err(err).Str("func", "sectionRepository.CreateSection").Str("kind", string(kind)).Msg("failed to create section")
		return models.Section{}, s.classify(err, ErrExecutingStatement)
	}

	return section, nil
}

func (s *sectionRepository) UpsertSection(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	log := logger.FromContext(ctx)

	section, err := scanSection(s.QueryRowContext(ctx, upsertSection, string(kind), []byte(body)))
	if err != nil {
		log.Err(err).Str("func", "sectionRepository.UpsertSection").Str("kind", string(kind)).Msg("failed to upsert section")
		return models.Section{}, s.classify(err, ErrExecutingStatement)
	}

	return section, nil
}

func (s *sectionRepository) GetSection(ctx context.Context, kind models.SectionKind) (models.Section, error) {
	log := logger.FromContext(ctx)

	section, err := scanSection(s.QueryRowContext(ctx, getSection, string(kind)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Section{}, ErrSectionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "sectionRepository.GetSection").Str("kind", string(kind)).Msg("failed to get section")
		return models.Section{}, s.classify(err, ErrExecutingQuery)
	}

	return section, nil
}

func (s *sectionRepository) ReplaceSection(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	log := logger.FromContext(ctx)

	section, err := scanSection(s.QueryRowContext(ctx, replaceSection, []byte(body), string(kind)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Section{}, ErrSectionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "sectionRepository.ReplaceSection").Str("kind", string(kind)).Msg("failed to replace section")
		return models.Section{}, s.classify(err, ErrExecutingStatement)
	}

	return section, nil
}

// MutateSection locks the section row, hands its body to mutate and stores
// the returned body in the same transaction. An error from mutate rolls the
// transaction back and is returned unchanged.
func (s *sectionRepository) MutateSection(ctx context.Context, kind models.SectionKind, mutate SectionMutator) (models.Section, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "sectionRepository.MutateSection").
		Str("kind", string(kind)).
		Logger()

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return models.Section{}, s.classify(err, ErrBeginningTransaction)
	}
	defer tx.Rollback()

	var current []byte
	err = tx.QueryRowContext(ctx, lockSection, string(kind)).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Section{}, ErrSectionNotFound
	}
	if err != nil {
		log.Err(err).Msg("failed to lock section")
		return models.Section{}, s.classify(err, ErrExecutingQuery)
	}

	next, err := mutate(current)
	if err != nil {
		return models.Section{}, err
	}

	section, err := scanSection(tx.QueryRowContext(ctx, replaceSection, []byte(next), string(kind)))
	if err != nil {
		log.Err(err).Msg("failed to store section")
		return models.Section{}, s.classify(err, ErrExecutingStatement)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return models.Section{}, s.classify(err, ErrCommitingTransaction)
	}

	return section, nil
}

func (s *sectionRepository) DeleteSection(ctx context.Context, kind models.SectionKind) error {
	log := logger.FromContext(ctx)

	result, err := s.ExecContext(ctx, deleteSection, string(kind))
	if err != nil {
		log.Err(err).Str("func", "sectionRepository.DeleteSection").Str("kind", string(kind)).Msg("failed to delete section")
		return s.classify(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSectionNotFound
	}

	return nil
}

func scanSection(row rowScanner) (models.Section, error) {
	var (
		section models.Section
		kind    string
		body    []byte
	)

	err := row.Scan(&kind, &body, &section.CreatedAt, &section.UpdatedAt)
	section.Kind = models.SectionKind(kind)
	section.Body = body

	return section, err
}
