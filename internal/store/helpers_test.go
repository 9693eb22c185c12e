package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// anyValueConverter passes values the default converter rejects (string
// slices bound to array columns) through unchanged, the way the pgx driver
// accepts them.
type anyValueConverter struct{}

func (anyValueConverter) ConvertValue(v any) (driver.Value, error) {
	if converted, err := driver.DefaultParameterConverter.ConvertValue(v); err == nil {
		return converted, nil
	}
	return v, nil
}

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(anyValueConverter{}))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func strPtr(s string) *string {
	return &s
}
