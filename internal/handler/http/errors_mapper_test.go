package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/service"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapping(t *testing.T) {
	res := resource{invalid: "Fill the form", notFound: "Thing not found", exists: "Thing exists"}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "wrapped tyre not found",
			err:         fmt.Errorf("get tyre: %w", store.ErrTyreNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Tyre not found",
		},
		{
			name:        "section not found uses the route text",
			err:         store.ErrSectionNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Thing not found",
		},
		{
			name:        "section exists uses the route text",
			err:         store.ErrSectionAlreadyExists,
			wantStatus:  http.StatusConflict,
			wantMessage: "Thing exists",
		},
		{
			name:        "missing fields",
			err:         &validators.ValidationError{Fields: []validators.FieldError{{Field: "title", Rule: "required"}}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Fill the form",
		},
		{
			name:        "broken rule keeps the detail",
			err:         &validators.ValidationError{Fields: []validators.FieldError{{Field: "email", Rule: "email"}}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid input: email (email)",
		},
		{
			name:        "bad path parameter",
			err:         fmt.Errorf("%w: index", ErrInvalidPathParam),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid path parameter",
		},
		{
			name:        "expired token",
			err:         service.ErrTokenIsExpiredOrInvalid,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid or expired token",
		},
		{
			name:        "media host down",
			err:         fmt.Errorf("upload: %w", adapter.ErrUploadFailed),
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Image upload failed",
		},
		{
			name:        "transaction conflict",
			err:         store.ErrTransactionConflict,
			wantStatus:  http.StatusConflict,
			wantMessage: "The resource is busy, please try again",
		},
		{
			name:        "unknown error never leaks",
			err:         errors.New(`relation "tyres" does not exist`),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := statusFromError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, messageFromError(tt.err, status, res))
		})
	}
}

func TestMessageFromError_FallsBackToStatusText(t *testing.T) {
	assert.Equal(t, "Not Found", messageFromError(store.ErrItemNotFound, http.StatusNotFound, resource{}))
}
