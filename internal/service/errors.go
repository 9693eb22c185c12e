package service

import (
	"errors"

	"github.com/MKhiriev/go-tyre-shop/internal/validators"
)

var (
	// ErrInvalidInput is wrapped by every payload validation failure.
	ErrInvalidInput = validators.ErrInvalidInput

	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrNothingToUpdate = errors.New("nothing to update")

	ErrImageRequired = errors.New("at least one image is required")
	ErrTooManyImages = errors.New("too many images")

	ErrInvalidFeatureIndex   = errors.New("invalid feature index")
	ErrInvalidMilestoneIndex = errors.New("invalid milestone index")

	ErrFaqCategoryExists   = errors.New("faq category already exists")
	ErrFaqCategoryNotFound = errors.New("faq category not found")

	ErrInvalidVehicleCategory = errors.New("invalid vehicle category")
	ErrBrandNotFound          = errors.New("brand not found")
	ErrModelNotFound          = errors.New("model not found")
)
