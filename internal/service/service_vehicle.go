package service

import (
	"context"
	"slices"
	"strings"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// vehicleService manages the vehicle catalog used by the tyre finder.
// Brand names are matched case-insensitively.
type vehicleService struct {
	*sectionService[models.VehicleCatalog]
}

func NewVehicleService(sections store.SectionRepository, validator validators.Validator, cfg config.Workers, logger *logger.Logger) VehicleService {
	return &vehicleService{
		sectionService: newSectionService[models.VehicleCatalog](models.SectionVehicles, sections, nil, validator, nil, newRetryPolicy(cfg), logger),
	}
}

func (v *vehicleService) ListBrands(ctx context.Context, category models.VehicleCategory) ([]models.VehicleBrand, error) {
	if !validVehicleCategory(category) {
		return nil, ErrInvalidVehicleCategory
	}

	catalog, err := v.Get(ctx)
	if err != nil {
		return nil, err
	}

	brands := *catalog.Brands(category)
	if brands == nil {
		brands = []models.VehicleBrand{}
	}
	return brands, nil
}

// AddBrandModel adds the brand when it is new and the model when one is
// given and not listed yet.
func (v *vehicleService) AddBrandModel(ctx context.Context, category models.VehicleCategory, in models.BrandModelInput) (models.VehicleCatalog, error) {
	if !validVehicleCategory(category) {
		return models.VehicleCatalog{}, ErrInvalidVehicleCategory
	}

	in.Brand = strings.TrimSpace(in.Brand)
	in.Model = strings.TrimSpace(in.Model)
	if err := v.validator.Validate(ctx, in); err != nil {
		return models.VehicleCatalog{}, err
	}

	return v.Mutate(ctx, func(catalog *models.VehicleCatalog) error {
		brands := catalog.Brands(category)

		i := brandIndex(*brands, in.Brand)
		if i < 0 {
			*brands = append(*brands, models.VehicleBrand{Name: in.Brand, Models: []string{}})
			i = len(*brands) - 1
		}

		brand := &(*brands)[i]
		if in.Model != "" && !slices.ContainsFunc(brand.Models, equalFoldTo(in.Model)) {
			brand.Models = append(brand.Models, in.Model)
		}
		return nil
	})
}

func (v *vehicleService) DeleteBrand(ctx context.Context, category models.VehicleCategory, brand string) (models.VehicleCatalog, error) {
	if !validVehicleCategory(category) {
		return models.VehicleCatalog{}, ErrInvalidVehicleCategory
	}

	return v.Mutate(ctx, func(catalog *models.VehicleCatalog) error {
		brands := catalog.Brands(category)
		i := brandIndex(*brands, brand)
		if i < 0 {
			return ErrBrandNotFound
		}
		*brands = slices.Delete(*brands, i, i+1)
		return nil
	})
}

func (v *vehicleService) DeleteModel(ctx context.Context, category models.VehicleCategory, brand, model string) (models.VehicleCatalog, error) {
	if !validVehicleCategory(category) {
		return models.VehicleCatalog{}, ErrInvalidVehicleCategory
	}

	return v.Mutate(ctx, func(catalog *models.VehicleCatalog) error {
		brands := catalog.Brands(category)
		i := brandIndex(*brands, brand)
		if i < 0 {
			return ErrBrandNotFound
		}

		entry := &(*brands)[i]
		j := slices.IndexFunc(entry.Models, equalFoldTo(model))
		if j < 0 {
			return ErrModelNotFound
		}
		entry.Models = slices.Delete(entry.Models, j, j+1)
		return nil
	})
}

func validVehicleCategory(c models.VehicleCategory) bool {
	return c == models.VehicleCar || c == models.VehicleTwoWheeler || c == models.VehicleTruck
}

func brandIndex(brands []models.VehicleBrand, name string) int {
	name = strings.TrimSpace(name)
	return slices.IndexFunc(brands, func(b models.VehicleBrand) bool {
		return strings.EqualFold(b.Name, name)
	})
}

func equalFoldTo(target string) func(string) bool {
	target = strings.TrimSpace(target)
	return func(s string) bool {
		return strings.EqualFold(s, target)
	}
}
