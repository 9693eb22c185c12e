package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/shopspring/decimal"
)

const (
	defaultTyrePageLimit = 12
	maxTyrePageLimit     = 100
)

// tyreService manages the tyre catalog. Image files are pushed to the media
// host before the row is written; the reviews and enquiries lists are never
// touched here.
type tyreService struct {
	tyres     store.TyreRepository
	uploader  adapter.MediaUploader
	validator validators.Validator
	events    eventEmitter
	ids       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewTyreService(
	tyres store.TyreRepository,
	uploader adapter.MediaUploader,
	validator validators.Validator,
	publisher adapter.EventPublisher,
	logger *logger.Logger,
) TyreService {
	return &tyreService{
		tyres:     tyres,
		uploader:  uploader,
		validator: validator,
		events:    newEventEmitter(publisher),
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// CreateTyre validates in, uploads between one and [models.MaxTyreImages]
// images and stores the tyre with its discount computed from the prices. The
// calling administrator is recorded as the owner.
func (t *tyreService) CreateTyre(ctx context.Context, in models.TyreInput, images []models.UploadedFile) (models.Tyre, error) {
	log := logger.FromContext(ctx)

	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if err := t.validator.Validate(ctx, in); err != nil {
		return models.Tyre{}, err
	}
	if err := checkImageCount(len(images), true); err != nil {
		return models.Tyre{}, err
	}

	urls, err := uploadAll(ctx, t.uploader, images)
	if err != nil {
		return models.Tyre{}, err
	}

	oldPrice := decimal.Zero
	if in.OldPrice != nil {
		oldPrice = *in.OldPrice
	}

	tyre := models.Tyre{
		ID:          t.ids.Generate(),
		Slug:        in.Slug,
		Name:        in.Name,
		Brand:       in.Brand,
		Category:    in.Category,
		Size:        in.Size,
		Price:       in.Price,
		OldPrice:    oldPrice,
		Discount:    models.ComputeDiscount(in.Price, oldPrice),
		Rating:      in.Rating,
		Dealer:      in.Dealer,
		Stock:       in.Stock,
		Popular:     in.Popular,
		Description: in.Description,
		Images:      urls,
	}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		tyre.UserID = &userID
	}

	created, err := t.tyres.CreateTyre(ctx, tyre)
	if err != nil {
		log.Err(err).Str("func", "tyreService.CreateTyre").Str("slug", tyre.Slug).Msg("tyre creation failed")
		return models.Tyre{}, fmt.Errorf("tyre creation failed: %w", err)
	}

	t.events.emit(ctx, models.EventTyreCreated, created.ID, created)
	return created, nil
}

// GetTyre resolves idOrSlug as an id first and as a slug second.
func (t *tyreService) GetTyre(ctx context.Context, idOrSlug string) (models.Tyre, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return models.Tyre{}, store.ErrTyreNotFound
	}

	if utils.IsUUID(idOrSlug) {
		tyre, err := t.tyres.FindTyreByID(ctx, idOrSlug)
		if !errors.Is(err, store.ErrTyreNotFound) {
			return tyre, err
		}
	}

	return t.tyres.FindTyreBySlug(ctx, strings.ToLower(idOrSlug))
}

// ListTyres returns one page of tyres and the number of tyres matching
// filter. A zero limit falls back to the default page size.
func (t *tyreService) ListTyres(ctx context.Context, filter models.TyreFilter) ([]models.Tyre, int64, error) {
	if filter.Limit == 0 {
		filter.Limit = defaultTyrePageLimit
	}
	if filter.Limit > maxTyrePageLimit {
		filter.Limit = maxTyrePageLimit
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, 0, &validators.ValidationError{Fields: []validators.FieldError{{Field: "minPrice", Rule: "ltefield"}}}
	}

	return t.tyres.ListTyres(ctx, filter)
}

// UpdateTyre applies a partial update. New images are appended and only the
// newest [models.MaxTyreImages] are kept.
func (t *tyreService) UpdateTyre(ctx context.Context, update models.TyreUpdate, images []models.UploadedFile) (models.Tyre, error) {
	log := logger.FromContext(ctx)

	if !utils.IsUUID(update.ID) {
		return models.Tyre{}, store.ErrTyreNotFound
	}
	if update.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*update.Slug))
		update.Slug = &slug
	}
	if err := t.validator.Validate(ctx, update); err != nil {
		return models.Tyre{}, err
	}
	if err := checkImageCount(len(images), false); err != nil {
		return models.Tyre{}, err
	}
	if isEmptyTyreUpdate(update) && len(images) == 0 {
		return models.Tyre{}, ErrNothingToUpdate
	}

	if len(images) > 0 {
		exists, err := t.tyres.TyreExists(ctx, update.ID)
		if err != nil {
			return models.Tyre{}, fmt.Errorf("tyre lookup failed: %w", err)
		}
		if !exists {
			return models.Tyre{}, store.ErrTyreNotFound
		}

		urls, err := uploadAll(ctx, t.uploader, images)
		if err != nil {
			return models.Tyre{}, err
		}
		update.NewImages = urls
	}

	updated, err := t.tyres.UpdateTyre(ctx, update)
	if err != nil {
		log.Err(err).Str("func", "tyreService.UpdateTyre").Str("tyre_id", update.ID).Msg("tyre update failed")
		return models.Tyre{}, fmt.Errorf("tyre update failed: %w", err)
	}

	return updated, nil
}

// DeleteTyre removes the tyre. Its reviews and enquiries stay, with their
// tyre link cleared by the database.
func (t *tyreService) DeleteTyre(ctx context.Context, id string) error {
	if !utils.IsUUID(id) {
		return store.ErrTyreNotFound
	}

	if err := t.tyres.DeleteTyre(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tyreService.DeleteTyre").Str("tyre_id", id).Msg("tyre deletion failed")
		return fmt.Errorf("tyre deletion failed: %w", err)
	}

	t.events.emit(ctx, models.EventTyreDeleted, id, map[string]string{"_id": id})
	return nil
}

func checkImageCount(n int, required bool) error {
	if required && n == 0 {
		return ErrImageRequired
	}
	if n > models.MaxTyreImages {
		return ErrTooManyImages
	}
	return nil
}

func isEmptyTyreUpdate(u models.TyreUpdate) bool {
	return u.Slug == nil && u.Name == nil && u.Brand == nil && u.Category == nil &&
		u.Size == nil && u.Price == nil && u.OldPrice == nil && u.Rating == nil &&
		u.Dealer == nil && u.Stock == nil && u.Popular == nil && u.Description == nil
}
