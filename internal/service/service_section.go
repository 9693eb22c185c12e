// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// mediaBinder places uploaded media URLs, keyed by multipart field name,
// into a section body.
type mediaBinder[T any] func(body *T, media map[string][]string)

// sectionService stores one singleton section kind as JSON and hands it out
// typed. Nested edits go through Mutate, which runs under the row lock taken
// by the store.
type sectionService[T any] struct {
	kind      models.SectionKind
	sections  store.SectionRepository
	uploader  adapter.MediaUploader
	validator validators.Validator
	bind      mediaBinder[T]
	policy    retryPolicy

	logger *logger.Logger
}

func newSectionService[T any](
	kind models.SectionKind,
	sections store.SectionRepository,
	uploader adapter.MediaUploader,
	validator validators.Validator,
	bind mediaBinder[T],
	policy retryPolicy,
	logger *logger.Logger,
) *sectionService[T] {
	return &sectionService[T]{
		kind:      kind,
		sections:  sections,
		uploader:  uploader,
		validator: validator,
		bind:      bind,
		policy:    policy,
		logger:    logger,
	}
}

// NewSectionService returns a service for a section without media fields.
func NewSectionService[T any](kind models.SectionKind, sections store.SectionRepository, validator validators.Validator, cfg config.Workers, logger *logger.Logger) SectionService[T] {
	return newSectionService[T](kind, sections, nil, validator, nil, newRetryPolicy(cfg), logger)
}

func NewAboutService(sections store.SectionRepository, uploader adapter.MediaUploader, validator validators.Validator, cfg config.Workers, logger *logger.Logger) SectionService[models.About] {
	return newSectionService[models.About](models.SectionAbout, sections, uploader, validator, bindAboutMedia, newRetryPolicy(cfg), logger)
}

func NewFooterService(sections store.SectionRepository, uploader adapter.MediaUploader, validator validators.Validator, cfg config.Workers, logger *logger.Logger) SectionService[models.Footer] {
	return newSectionService[models.Footer](models.SectionFooter, sections, uploader, validator, bindFooterMedia, newRetryPolicy(cfg), logger)
}

// prepare uploads the given files, binds their URLs into body and validates
// the result. Uploads are ignored for sections without media fields.
func (s *sectionService[T]) prepare(ctx context.Context, body *T, uploads models.Uploads) error {
	if len(uploads) > 0 && s.bind != nil && s.uploader != nil {
		media, err := uploadFields(ctx, s.uploader, uploads)
		if err != nil {
			return err
		}
		s.bind(body, media)
	}

	return s.validator.Validate(ctx, *body)
}

func (s *sectionService[T]) Create(ctx context.Context, body T, uploads models.Uploads) (T, error) {
	return s.write(ctx, "Create", body, uploads, s.sections.CreateSection)
}

func (s *sectionService[T]) Upsert(ctx context.Context, body T, uploads models.Uploads) (T, error) {
	return s.write(ctx, "Upsert", body, uploads, s.sections.UpsertSection)
}

func (s *sectionService[T]) Replace(ctx context.Context, body T, uploads models.Uploads) (T, error) {
	return s.write(ctx, "Replace", body, uploads, s.sections.ReplaceSection)
}

type sectionWriter func(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error)

func (s *sectionService[T]) write(ctx context.Context, op string, body T, uploads models.Uploads, save sectionWriter) (T, error) {
	var zero T

	if err := s.prepare(ctx, &body, uploads); err != nil {
		return zero, err
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("encode %s section: %w", s.kind, err)
	}

	section, err := save(ctx, s.kind, raw)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sectionService."+op).
			Str("kind", string(s.kind)).
			Msg("section write failed")
		return zero, err
	}

	return decodeSection[T](section)
}

func (s *sectionService[T]) Get(ctx context.Context) (T, error) {
	section, err := s.sections.GetSection(ctx, s.kind)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeSection[T](section)
}

// Mutate loads the stored body under a row lock, applies mutate, validates
// the result and stores it. An error from mutate aborts without writing.
func (s *sectionService[T]) Mutate(ctx context.Context, mutate func(body *T) error) (T, error) {
	section, err := withConflictRetry(ctx, s.policy, func(ctx context.Context) (models.Section, error) {
		return s.sections.MutateSection(ctx, s.kind, func(raw json.RawMessage) (json.RawMessage, error) {
			var body T
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, fmt.Errorf("decode %s section: %w", s.kind, err)
			}
			if err := mutate(&body); err != nil {
				return nil, err
			}
			if err := s.validator.Validate(ctx, body); err != nil {
				return nil, err
			}
			return json.Marshal(body)
		})
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return decodeSection[T](section)
}

func (s *sectionService[T]) Delete(ctx context.Context) error {
	return s.sections.DeleteSection(ctx, s.kind)
}

func decodeSection[T any](section models.Section) (T, error) {
	var body T
	if err := json.Unmarshal(section.Body, &body); err != nil {
		return body, fmt.Errorf("decode %s section: %w", section.Kind, err)
	}
	return body, nil
}

// ---- Media binders ----

func bindAboutMedia(about *models.About, media map[string][]string) {
	if url := firstURL(media, "heroImage"); url != "" {
		about.Hero.Image = url
	}
	if url := firstURL(media, "heroVideo"); url != "" {
		about.Hero.Video = url
	}
	if url := firstURL(media, "modelImage"); url != "" {
		about.Model.Image = url
	}
	if url := firstURL(media, "wideRangeVideo"); url != "" {
		about.WideRange.Video = url
	}
	if urls := media["wideRangeImages"]; len(urls) > 0 {
		about.WideRange.Images = urls
	}
	bindIcons(about.CoreValues, media["coreValueIcons"])
	bindIcons(about.HowItWorks, media["howItWorksIcons"])
}

func bindHeroMedia(hero *models.Hero, media map[string][]string) {
	if url := firstURL(media, "image"); url != "" {
		hero.Image = url
	}
	bindIcons(hero.Features, media["featureIcons"])
}

func bindFooterMedia(footer *models.Footer, media map[string][]string) {
	for i, url := range media["icons"] {
		if i >= len(footer.SocialLinks) {
			break
		}
		footer.SocialLinks[i].Icon = url
	}
}

// bindIcons sets the icon of the i-th card to the i-th URL.
func bindIcons(cards []models.IconCard, urls []string) {
	for i, url := range urls {
		if i >= len(cards) {
			return
		}
		cards[i].Icon = url
	}
}

func firstURL(media map[string][]string, field string) string {
	if urls := media[field]; len(urls) > 0 {
		return urls[0]
	}
	return ""
}
