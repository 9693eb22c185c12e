package service

import (
	"context"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
)

const unknownVersion = "dev"

// Pinger is the storage handle checked by the health endpoints.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthService struct {
	db         Pinger
	appVersion string

	logger *logger.Logger
}

func NewHealthService(db Pinger, cfg config.App, logger *logger.Logger) HealthService {
	version := cfg.Version
	if version == "" {
		version = unknownVersion
	}

	return &healthService{
		db:         db,
		appVersion: version,
		logger:     logger,
	}
}

func (s *healthService) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "healthService.Ping").Msg("database ping failed")
		return err
	}
	return nil
}

func (s *healthService) Version() string {
	return s.appVersion
}
