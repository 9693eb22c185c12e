package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// heroService manages the landing page hero. Feature icons may arrive as
// uploads, in which case the uploaded URL replaces the icon field.
type heroService struct {
	*sectionService[models.Hero]
}

func NewHeroService(sections store.SectionRepository, uploader adapter.MediaUploader, validator validators.Validator, cfg config.Workers, logger *logger.Logger) HeroService {
	return &heroService{
		sectionService: newSectionService[models.Hero](models.SectionHero, sections, uploader, validator, bindHeroMedia, newRetryPolicy(cfg), logger),
	}
}

func (h *heroService) AddFeature(ctx context.Context, feature models.IconCard, icon *models.UploadedFile) (models.Hero, error) {
	url, err := uploadOne(ctx, h.uploader, icon)
	if err != nil {
		return models.Hero{}, err
	}
	if url != "" {
		feature.Icon = url
	}
	if err = h.validator.Validate(ctx, feature); err != nil {
		return models.Hero{}, err
	}

	return h.Mutate(ctx, func(hero *models.Hero) error {
		hero.Features = append(hero.Features, feature)
		return nil
	})
}

// UpdateFeature overwrites the non-empty fields of the feature at index.
func (h *heroService) UpdateFeature(ctx context.Context, index int, feature models.IconCard, icon *models.UploadedFile) (models.Hero, error) {
	url, err := uploadOne(ctx, h.uploader, icon)
	if err != nil {
		return models.Hero{}, err
	}
	if url != "" {
		feature.Icon = url
	}

	return h.Mutate(ctx, func(hero *models.Hero) error {
		if index < 0 || index >= len(hero.Features) {
			return ErrInvalidFeatureIndex
		}
		current := &hero.Features[index]
		if feature.Icon != "" {
			current.Icon = feature.Icon
		}
		if feature.Title != "" {
			current.Title = feature.Title
		}
		if feature.Description != "" {
			current.Description = feature.Description
		}
		return nil
	})
}

func (h *heroService) DeleteFeature(ctx context.Context, index int) (models.Hero, error) {
	return h.Mutate(ctx, func(hero *models.Hero) error {
		if index < 0 || index >= len(hero.Features) {
			return ErrInvalidFeatureIndex
		}
		hero.Features = slices.Delete(hero.Features, index, index+1)
		return nil
	})
}
