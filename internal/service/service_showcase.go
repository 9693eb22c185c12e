package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// imageCard is a showcase item whose picture can be replaced by an upload.
type imageCard[T any] interface {
	WithImage(url string) T
}

// showcaseService manages one image-card collection (stories, trusted
// stories, testimonials, shop-by-vehicle cards).
type showcaseService[T imageCard[T]] struct {
	kind      models.ShowcaseKind
	items     store.ShowcaseRepository
	uploader  adapter.MediaUploader
	validator validators.Validator
	ids       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewShowcaseService[T imageCard[T]](
	kind models.ShowcaseKind,
	items store.ShowcaseRepository,
	uploader adapter.MediaUploader,
	validator validators.Validator,
	logger *logger.Logger,
) ShowcaseService[T] {
	return &showcaseService[T]{
		kind:      kind,
		items:     items,
		uploader:  uploader,
		validator: validator,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

func (s *showcaseService[T]) Create(ctx context.Context, item T, upload *models.UploadedFile) (models.Document[T], error) {
	url, err := uploadOne(ctx, s.uploader, upload)
	if err != nil {
		return models.Document[T]{}, err
	}
	if url != "" {
		item = item.WithImage(url)
	}

	if err = s.validator.Validate(ctx, item); err != nil {
		return models.Document[T]{}, err
	}

	body, err := json.Marshal(item)
	if err != nil {
		return models.Document[T]{}, fmt.Errorf("encode %s: %w", s.kind, err)
	}

	created, err := s.items.CreateItem(ctx, models.ShowcaseItem{ID: s.ids.Generate(), Kind: s.kind, Body: body})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "showcaseService.Create").Str("kind", string(s.kind)).Msg("item creation failed")
		return models.Document[T]{}, err
	}

	return decodeDocument[T](created)
}

func (s *showcaseService[T]) Get(ctx context.Context, id string) (models.Document[T], error) {
	if !utils.IsUUID(id) {
		return models.Document[T]{}, store.ErrItemNotFound
	}

	item, err := s.items.GetItem(ctx, s.kind, id)
	if err != nil {
		return models.Document[T]{}, err
	}
	return decodeDocument[T](item)
}

func (s *showcaseService[T]) List(ctx context.Context) ([]models.Document[T], error) {
	items, err := s.items.ListItems(ctx, s.kind)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document[T], 0, len(items))
	for _, item := range items {
		doc, err := decodeDocument[T](item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Update merges patch into the stored item under a row lock. The image is
// uploaded only after the item is known to exist.
func (s *showcaseService[T]) Update(ctx context.Context, id string, patch []byte, upload *models.UploadedFile) (models.Document[T], error) {
	if !utils.IsUUID(id) {
		return models.Document[T]{}, store.ErrItemNotFound
	}

	var url string
	if upload != nil {
		if _, err := s.items.GetItem(ctx, s.kind, id); err != nil {
			return models.Document[T]{}, err
		}

		var err error
		if url, err = uploadOne(ctx, s.uploader, upload); err != nil {
			return models.Document[T]{}, err
		}
	}

	updated, err := s.items.UpdateItem(ctx, s.kind, id, func(raw json.RawMessage) (json.RawMessage, error) {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.kind, err)
		}
		if len(patch) > 0 {
			if err := json.Unmarshal(patch, &item); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
		}
		if url != "" {
			item = item.WithImage(url)
		}
		if err := s.validator.Validate(ctx, item); err != nil {
			return nil, err
		}
		return json.Marshal(item)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "showcaseService.Update").Str("kind", string(s.kind)).Str("id", id).Msg("item update failed")
		return models.Document[T]{}, err
	}

	return decodeDocument[T](updated)
}

func (s *showcaseService[T]) Delete(ctx context.Context, id string) error {
	if !utils.IsUUID(id) {
		return store.ErrItemNotFound
	}
	return s.items.DeleteItem(ctx, s.kind, id)
}

func decodeDocument[T any](item models.ShowcaseItem) (models.Document[T], error) {
	doc := models.Document[T]{ID: item.ID, CreatedAt: item.CreatedAt, UpdatedAt: item.UpdatedAt}
	if err := json.Unmarshal(item.Body, &doc.Data); err != nil {
		return models.Document[T]{}, fmt.Errorf("decode %s item: %w", item.Kind, err)
	}
	return doc, nil
}
