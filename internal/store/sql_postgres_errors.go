package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify]
// and [PostgresErrorClassifier.Classify]. It tells the caller whether a failed
// database operation may be retried, must be abandoned, or failed because the
// database itself could not be reached.
type ErrorClassification int

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver and maps it
// to a [ErrorClassification] value.
type PostgresErrorClassifier struct{}

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations, syntax errors, and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates a transaction conflict: the operation may succeed
	// if attempted again (serialization failure, deadlock, lock timeout).
	Retryable

	// Unavailable indicates that the database could not be reached. It is
	// not retried within a request.
	Unavailable
)

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Driver errors are classified by
// their SQLSTATE via [ClassifyPgError]; connection setup failures, broken
// connections and network errors are [Unavailable]. Everything else is
// [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return Unavailable
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return Unavailable
	}

	return NonRetryable
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
//
// Retryable codes:
//   - Class 40: transaction rollback, serialization failure, deadlock (40000, 40001, 40P01)
//   - 55P03: lock not available
//
// Unavailable codes:
//   - Class 08: connection exceptions (08000, 08003, 08006)
//   - 57P01, 57P03: admin shutdown, cannot connect now
//
// Any code not listed above is classified as [NonRetryable].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.TransactionRollback, // 40000
		pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected,     // 40P01
		pgerrcode.LockNotAvailable:     // 55P03
		return Retryable

	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.SQLClientUnableToEstablishSQLConnection,
		pgerrcode.AdminShutdown,
		pgerrcode.CannotConnectNow:
		return Unavailable
	}

	return NonRetryable
}

// classify wraps err with the storage failure class it belongs to, or with
// op when the failure is an ordinary query error.
func (db *DB) classify(err error, op error) error {
	var classification ErrorClassification
	if db.errorClassificator != nil {
		classification = db.errorClassificator.Classify(err)
	}

	switch classification {
	case Retryable:
		return fmt.Errorf("%w: %w", ErrTransactionConflict, err)
	case Unavailable:
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", op, err)
	}
}
