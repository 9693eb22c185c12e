package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// enquiryRepository is the PostgreSQL-backed implementation of
// [EnquiryRepository].
type enquiryRepository struct {
	*DB
	logger *logger.Logger
}

func NewEnquiryRepository(db *DB, logger *logger.Logger) EnquiryRepository {
	logger.Debug().Msg("creating enquiry repository")
	return &enquiryRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateLinked inserts enquiry and appends its id to the enquiries of its tyre.
func (e *enquiryRepository) CreateLinked(ctx context.Context, enquiry models.Enquiry) (models.Enquiry, error) {
	if enquiry.TyreID == nil {
		return models.Enquiry{}, ErrParentNotFound
	}

	var created models.Enquiry
	err := e.linkedCreate(ctx, EnquiryLink, *enquiry.TyreID, enquiry.ID, func(ctx context.Context, tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, createEnquiry,
			enquiry.ID,
			enquiry.Name,
			enquiry.Email,
			enquiry.Message,
			*enquiry.TyreID,
		)

		var err error
		created, err = scanEnquiry(row)
		return err
	})
	if err != nil {
		return models.Enquiry{}, err
	}

	return created, nil
}

func (e *enquiryRepository) DeleteLinked(ctx context.Context, id string) (*string, error) {
	tyreID, err := e.linkedDelete(ctx, EnquiryLink, id)
	if errors.Is(err, ErrChildNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrEnquiryNotFound, err)
	}
	return tyreID, err
}

// ListEnquiries returns all enquiries, newest first.
func (e *enquiryRepository) ListEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	log := logger.FromContext(ctx)

	rows, err := e.QueryContext(ctx, listEnquiries)
	if err != nil {
		log.Err(err).Str("func", "enquiryRepository.ListEnquiries").Msg("failed to execute query for enquiries")
		return nil, e.classify(err, ErrExecutingQuery)
	}
	defer rows.Close()

	enquiries := make([]models.Enquiry, 0, 20)
	for rows.Next() {
		enquiry, scanErr := scanEnquiry(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "enquiryRepository.ListEnquiries").Msg("failed to scan enquiry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		enquiries = append(enquiries, enquiry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "enquiryRepository.ListEnquiries").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return enquiries, nil
}

func scanEnquiry(row rowScanner) (models.Enquiry, error) {
	var enquiry models.Enquiry
	err := row.Scan(
		&enquiry.ID,
		&enquiry.Name,
		&enquiry.Email,
		&enquiry.Message,
		&enquiry.TyreID,
		&enquiry.CreatedAt,
		&enquiry.UpdatedAt,
	)
	return enquiry, err
}
