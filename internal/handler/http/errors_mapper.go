package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/service"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
)

const internalErrorMessage = "Internal server error"

var errorStatusMap = map[error]int{
	ErrInvalidBody:      http.StatusBadRequest,
	ErrInvalidPathParam: http.StatusBadRequest,
	ErrUploadTooLarge:   http.StatusRequestEntityTooLarge,

	service.ErrInvalidInput:            http.StatusBadRequest,
	service.ErrNothingToUpdate:         http.StatusBadRequest,
	service.ErrImageRequired:           http.StatusBadRequest,
	service.ErrTooManyImages:           http.StatusBadRequest,
	service.ErrInvalidFeatureIndex:     http.StatusBadRequest,
	service.ErrInvalidMilestoneIndex:   http.StatusBadRequest,
	service.ErrInvalidVehicleCategory:  http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrFaqCategoryExists:       http.StatusConflict,
	service.ErrFaqCategoryNotFound:     http.StatusNotFound,
	service.ErrBrandNotFound:           http.StatusNotFound,
	service.ErrModelNotFound:           http.StatusNotFound,

	adapter.ErrEmptyUpload:  http.StatusBadRequest,
	adapter.ErrUploadFailed: http.StatusBadGateway,
	adapter.ErrSendFailed:   http.StatusBadGateway,

	store.ErrEmailAlreadyExists:   http.StatusConflict,
	store.ErrNoUserWasFound:       http.StatusNotFound,
	store.ErrTyreNotFound:         http.StatusNotFound,
	store.ErrParentNotFound:       http.StatusNotFound,
	store.ErrSlugAlreadyExists:    http.StatusConflict,
	store.ErrReviewNotFound:       http.StatusNotFound,
	store.ErrEnquiryNotFound:      http.StatusNotFound,
	store.ErrSectionNotFound:      http.StatusNotFound,
	store.ErrSectionAlreadyExists: http.StatusConflict,
	store.ErrItemNotFound:         http.StatusNotFound,
	store.ErrGrowthNotFound:       http.StatusNotFound,
	store.ErrGrowthAlreadyExists:  http.StatusConflict,
	store.ErrAlreadySubscribed:    http.StatusConflict,
	store.ErrSubscriberNotFound:   http.StatusNotFound,
	store.ErrTransactionConflict:  http.StatusConflict,
	store.ErrStorageUnavailable:   http.StatusInternalServerError,
}

// errorMessageMap holds the client-facing text of errors that mean the same
// thing on every route.
var errorMessageMap = map[error]string{
	ErrInvalidBody:      "Invalid JSON was passed",
	ErrInvalidPathParam: "Invalid path parameter",
	ErrUploadTooLarge:   "Upload too large",

	service.ErrNothingToUpdate:         "Nothing to update",
	service.ErrImageRequired:           "At least one image is required",
	service.ErrTooManyImages:           "Too many images",
	service.ErrInvalidFeatureIndex:     "Invalid feature index.",
	service.ErrInvalidMilestoneIndex:   "Invalid milestone index.",
	service.ErrInvalidVehicleCategory:  "Invalid category. Use car, twoWheeler, or truck.",
	service.ErrInvalidCredentials:      "Invalid credentials",
	service.ErrTokenIsExpiredOrInvalid: "Invalid or expired token",
	service.ErrFaqCategoryExists:       "Category already exists.",
	service.ErrFaqCategoryNotFound:     "Category not found.",
	service.ErrBrandNotFound:           "Brand not found.",
	service.ErrModelNotFound:           "Model not found.",

	adapter.ErrEmptyUpload:  "Image upload failed",
	adapter.ErrUploadFailed: "Image upload failed",
	adapter.ErrSendFailed:   "Failed to send email.",

	store.ErrEmailAlreadyExists:  "User already exists",
	store.ErrNoUserWasFound:      "User not found",
	store.ErrTyreNotFound:        "Tyre not found",
	store.ErrParentNotFound:      "Tyre not found",
	store.ErrSlugAlreadyExists:   "Tyre with this slug already exists",
	store.ErrReviewNotFound:      "Review not found",
	store.ErrEnquiryNotFound:     "Enquiry not found",
	store.ErrAlreadySubscribed:   "This email is already subscribed",
	store.ErrSubscriberNotFound:  "Subscriber not found",
	store.ErrTransactionConflict: "The resource is busy, please try again",
}

// resource carries the route-specific messages of errors whose text depends
// on what was addressed: a missing section reads "About page not found." on
// /about and "Journey not found." on /journey.
type resource struct {
	// invalid replaces the validation detail when the payload only lacks
	// required fields.
	invalid  string
	notFound string
	exists   string
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError resolves the client-facing text of err. Server-side
// failures never leak their detail unless an upstream message is registered
// for them.
func messageFromError(err error, status int, res resource) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}

	if status >= http.StatusInternalServerError {
		return internalErrorMessage
	}

	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		if verr.MissingOnly() && res.invalid != "" {
			return res.invalid
		}
		return verr.Error()
	}

	switch {
	case status == http.StatusNotFound && res.notFound != "":
		return res.notFound
	case status == http.StatusConflict && res.exists != "":
		return res.exists
	case status == http.StatusBadRequest && res.invalid != "":
		return res.invalid
	}

	return http.StatusText(status)
}

// writeError maps err to a status and message and writes the failure
// envelope. 5xx errors are logged with their full chain.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, res resource) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	message := messageFromError(err, status, res)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "*Handler.writeError").Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", "*Handler.writeError").Int("status", status).Msg("request rejected")
	}

	if writeErr := utils.WriteError(w, status, message); writeErr != nil {
		log.Err(writeErr).Str("func", "*Handler.writeError").Msg("failed to write response")
	}
}
