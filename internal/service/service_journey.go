package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

type journeyService struct {
	*sectionService[models.Journey]
}

func NewJourneyService(sections store.SectionRepository, validator validators.Validator, cfg config.Workers, logger *logger.Logger) JourneyService {
	return &journeyService{
		sectionService: newSectionService[models.Journey](models.SectionJourney, sections, nil, validator, nil, newRetryPolicy(cfg), logger),
	}
}

func (j *journeyService) AddMilestone(ctx context.Context, milestone models.Milestone) (models.Journey, error) {
	if err := j.validator.Validate(ctx, milestone); err != nil {
		return models.Journey{}, err
	}

	return j.Mutate(ctx, func(journey *models.Journey) error {
		journey.Journey = append(journey.Journey, milestone)
		return nil
	})
}

// UpdateMilestone overwrites the non-zero fields of the milestone at index.
func (j *journeyService) UpdateMilestone(ctx context.Context, index int, milestone models.Milestone) (models.Journey, error) {
	return j.Mutate(ctx, func(journey *models.Journey) error {
		if index < 0 || index >= len(journey.Journey) {
			return ErrInvalidMilestoneIndex
		}
		current := &journey.Journey[index]
		if milestone.Year != 0 {
			current.Year = milestone.Year
		}
		if milestone.Event != "" {
			current.Event = milestone.Event
		}
		return nil
	})
}

func (j *journeyService) DeleteMilestone(ctx context.Context, index int) (models.Journey, error) {
	return j.Mutate(ctx, func(journey *models.Journey) error {
		if index < 0 || index >= len(journey.Journey) {
			return ErrInvalidMilestoneIndex
		}
		journey.Journey = slices.Delete(journey.Journey, index, index+1)
		return nil
	})
}
