package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/jackc/pgerrcode"
)

// subscriberRepository stores newsletter subscriptions keyed by email.
type subscriberRepository struct {
	*DB
	logger *logger.Logger
}

func NewSubscriberRepository(db *DB, logger *logger.Logger) SubscriberRepository {
	logger.Debug().Msg("creating subscriber repository")
	return &subscriberRepository{
		DB:     db,
		logger: logger,
	}
}

// Subscribe adds email. A second subscription of the same address fails with
// [ErrAlreadySubscribed].
func (s *subscriberRepository) Subscribe(ctx context.Context, email string) (models.Subscriber, error) {
	log := logger.FromContext(ctx)

	var subscriber models.Subscriber
	err := s.QueryRowContext(ctx, subscribe, email).Scan(&subscriber.Email, &subscriber.SubscribedAt)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Subscriber{}, ErrAlreadySubscribed
		}
		log.Err(err).Str("func", "subscriberRepository.Subscribe").Msg("failed to subscribe")
		return models.Subscriber{}, s.classify(err, ErrExecutingStatement)
	}

	return subscriber, nil
}

func (s *subscriberRepository) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	log := logger.FromContext(ctx)

	rows, err := s.QueryContext(ctx, listSubscribers)
	if err != nil {
		log.Err(err).Str("func", "subscriberRepository.ListSubscribers").Msg("failed to list subscribers")
		return nil, s.classify(err, ErrExecutingQuery)
	}
	defer rows.Close()

	subscribers := make([]models.Subscriber, 0, 50)
	for rows.Next() {
		var subscriber models.Subscriber
		if scanErr := rows.Scan(&subscriber.Email, &subscriber.SubscribedAt); scanErr != nil {
			log.Err(scanErr).Str("func", "subscriberRepository.ListSubscribers").Msg("failed to scan subscriber row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		subscribers = append(subscribers, subscriber)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return subscribers, nil
}

func (s *subscriberRepository) Unsubscribe(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	result, err := s.ExecContext(ctx, unsubscribe, email)
	if err != nil {
		log.Err(err).Str("func", "subscriberRepository.Unsubscribe").Msg("failed to unsubscribe")
		return s.classify(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSubscriberNotFound
	}

	return nil
}
