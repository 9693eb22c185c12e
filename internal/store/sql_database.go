package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/migrations"
)

// DB is the shared database handle of all repositories. It carries the
// classifier used to turn driver errors into storage failure classes.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Ping reports whether the database answers. It backs the health endpoints.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return db.classify(err, ErrExecutingQuery)
	}
	return nil
}
