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

type faqService struct {
	*sectionService[models.Faq]
}

func NewFaqService(sections store.SectionRepository, validator validators.Validator, cfg config.Workers, logger *logger.Logger) FaqService {
	return &faqService{
		sectionService: newSectionService[models.Faq](models.SectionFaq, sections, nil, validator, nil, newRetryPolicy(cfg), logger),
	}
}

func (f *faqService) AddCategory(ctx context.Context, category string) (models.Faq, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.Faq{}, requiredField("category")
	}

	return f.Mutate(ctx, func(faq *models.Faq) error {
		if faq.CategoryIndex(category) >= 0 {
			return ErrFaqCategoryExists
		}
		faq.Faqs = append(faq.Faqs, models.FaqCategory{Category: category, Items: []models.FaqItem{}})
		return nil
	})
}

func (f *faqService) DeleteCategory(ctx context.Context, category string) (models.Faq, error) {
	return f.Mutate(ctx, func(faq *models.Faq) error {
		i := faq.CategoryIndex(strings.TrimSpace(category))
		if i < 0 {
			return ErrFaqCategoryNotFound
		}
		faq.Faqs = slices.Delete(faq.Faqs, i, i+1)
		return nil
	})
}

// AddQuestion appends item to the named category.
func (f *faqService) AddQuestion(ctx context.Context, category string, item models.FaqItem) (models.Faq, error) {
	item.Question = strings.TrimSpace(item.Question)
	item.Answer = strings.TrimSpace(item.Answer)
	if err := f.validator.Validate(ctx, item); err != nil {
		return models.Faq{}, err
	}

	return f.Mutate(ctx, func(faq *models.Faq) error {
		i := faq.CategoryIndex(strings.TrimSpace(category))
		if i < 0 {
			return ErrFaqCategoryNotFound
		}
		faq.Faqs[i].Items = append(faq.Faqs[i].Items, item)
		return nil
	})
}

// requiredField reports a single missing field the way the request
// validator does.
func requiredField(field string) error {
	return &validators.ValidationError{Fields: []validators.FieldError{{Field: field, Rule: "required"}}}
}
