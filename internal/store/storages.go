package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
)

// Storages groups every repository the services depend on, plus the shared
// handle used by health checks.
type Storages struct {
	DB *DB

	UserRepository       UserRepository
	TyreRepository       TyreRepository
	ReviewRepository     ReviewRepository
	EnquiryRepository    EnquiryRepository
	SectionRepository    SectionRepository
	ShowcaseRepository   ShowcaseRepository
	GrowthRepository     GrowthRepository
	SubscriberRepository SubscriberRepository
	DashboardRepository  DashboardRepository

	cache SectionCache
}

// NewStorages connects to PostgreSQL, applies migrations and builds every
// repository. Section reads go through Redis when cfg.Redis.Address is set.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to apply migrations")
		_ = db.Close()
		return nil, err
	}

	cache, err := NewSectionCache(ctx, cfg.Redis, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		DB:                   db,
		UserRepository:       NewUserRepository(db, log),
		TyreRepository:       NewTyreRepository(db, log),
		ReviewRepository:     NewReviewRepository(db, log),
		EnquiryRepository:    NewEnquiryRepository(db, log),
		SectionRepository:    NewCachedSectionRepository(NewSectionRepository(db, log), cache),
		ShowcaseRepository:   NewShowcaseRepository(db, log),
		GrowthRepository:     NewGrowthRepository(db, log),
		SubscriberRepository: NewSubscriberRepository(db, log),
		DashboardRepository:  NewDashboardRepository(db, log),
		cache:                cache,
	}, nil
}

// Close releases the database pool and the cache connection.
func (s *Storages) Close() error {
	if closer, ok := s.cache.(io.Closer); ok {
		_ = closer.Close()
	}
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
