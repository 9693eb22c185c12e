package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

type growthService struct {
	growth    store.GrowthRepository
	validator validators.Validator

	logger *logger.Logger
}

func NewGrowthService(growth store.GrowthRepository, validator validators.Validator, logger *logger.Logger) GrowthService {
	return &growthService{growth: growth, validator: validator, logger: logger}
}

// CreateGrowth stores the figure for a new year. A second record for the
// same year fails with store.ErrGrowthAlreadyExists.
func (g *growthService) CreateGrowth(ctx context.Context, growth models.Growth) (models.Growth, error) {
	if err := g.validator.Validate(ctx, growth); err != nil {
		return models.Growth{}, err
	}

	created, err := g.growth.CreateGrowth(ctx, growth)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "growthService.CreateGrowth").Int("year", growth.Year).Msg("growth creation failed")
		return models.Growth{}, fmt.Errorf("growth creation failed: %w", err)
	}
	return created, nil
}

func (g *growthService) ListGrowth(ctx context.Context) ([]models.Growth, error) {
	return g.growth.ListGrowth(ctx)
}

func (g *growthService) GetGrowth(ctx context.Context, year int) (models.Growth, error) {
	return g.growth.GetGrowth(ctx, year)
}

func (g *growthService) UpdateGrowth(ctx context.Context, year int, growth float64) (models.Growth, error) {
	if err := g.validator.Validate(ctx, models.Growth{Year: year, Growth: growth}); err != nil {
		return models.Growth{}, err
	}
	return g.growth.UpdateGrowth(ctx, year, growth)
}

func (g *growthService) DeleteGrowth(ctx context.Context, year int) error {
	return g.growth.DeleteGrowth(ctx, year)
}

func (g *growthService) DeleteAllGrowth(ctx context.Context) (int64, error) {
	return g.growth.DeleteAllGrowth(ctx)
}
