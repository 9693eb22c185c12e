package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/MKhiriev/go-tyre-shop/internal/service"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newShopRouter wires the services the route tests talk to. The auth
// service accepts the token "good".
func newShopRouter(t *testing.T, services *service.Services) http.Handler {
	t.Helper()

	if services.AuthService == nil {
		services.AuthService = &mockAuthService{authenticateFn: authenticateOnly("good")}
	}
	if services.HealthService == nil {
		services.HealthService = &mockHealthService{}
	}
	return newTestHandler(t, services).Init()
}

func doJSON(router http.Handler, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer good")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ─────────────────────────────────────────────
// Route registration
// ─────────────────────────────────────────────

func TestInit_RegistersRoutes(t *testing.T) {
	router := newShopRouter(t, &service.Services{})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/user/register"},
		{http.MethodGet, "/api/v1/user/me"},
		{http.MethodGet, "/api/v1/user/dashboard"},
		{http.MethodPost, "/api/v1/tyre/"},
		{http.MethodPatch, "/api/v1/tyre/t-1"},
		{http.MethodDelete, "/api/v1/tyre/t-1"},
		{http.MethodPatch, "/api/v1/review/r-1/approve"},
		{http.MethodDelete, "/api/v1/review/r-1"},
		{http.MethodGet, "/api/v1/enquiry/"},
		{http.MethodDelete, "/api/v1/enquiry/e-1"},
		{http.MethodPost, "/api/v1/about/"},
		{http.MethodPut, "/api/v1/footer/"},
		{http.MethodPost, "/api/v1/faq/category"},
		{http.MethodPut, "/api/v1/hero/feature/0"},
		{http.MethodDelete, "/api/v1/journey/delete/1"},
		{http.MethodPost, "/api/v1/vehicle/car/add"},
		{http.MethodDelete, "/api/v1/vehicle/car/bmw/x5"},
		{http.MethodGet, "/api/v1/newsletter/subscribers"},
		{http.MethodPost, "/api/v1/story/"},
		{http.MethodPatch, "/api/v1/trustedstory/s-1"},
		{http.MethodPut, "/api/v1/testimonial/s-1"},
		{http.MethodDelete, "/api/v1/sbv/s-1"},
		{http.MethodPost, "/api/v1/growth/"},
		{http.MethodPut, "/api/v1/growth/2024"},
	}

	// Every listed route sits behind the auth gate, so an anonymous call
	// proves the route exists without reaching a service.
	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := doJSON(router, tc.method, tc.path, "", false)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestInit_UnknownRoute(t *testing.T) {
	router := newShopRouter(t, &service.Services{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/nonexistent"},
		{http.MethodPost, "/healthz"},
		{http.MethodPut, "/api/v1/review/r-1/approve"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := doJSON(router, tc.method, tc.path, "", true)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, "Route not found", env.Error)
		})
	}
}

// ─────────────────────────────────────────────
// Linked reviews and enquiries
// ─────────────────────────────────────────────

func TestCreateReview_LinksToTyre(t *testing.T) {
	tyreID := "tyre-1"
	var got models.ReviewInput
	router := newShopRouter(t, &service.Services{
		ReviewService: &mockReviewService{
			createFn: func(_ context.Context, in models.ReviewInput) (models.Review, error) {
				got = in
				return models.Review{ID: "review-1", Name: in.Name, Rating: in.Rating, Comment: in.Comment, TyreID: &tyreID}, nil
			},
		},
	})

	rec := doJSON(router, http.MethodPost, "/api/v1/review/",
		`{"name":"Asha","rating":5,"comment":"Great grip","tyre":"tyre-1"}`, false)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Review created successfully", env.Message)

	var review models.Review
	require.NoError(t, json.Unmarshal(env.Data, &review))
	assert.Equal(t, "review-1", review.ID)
	assert.Equal(t, "tyre-1", got.TyreID)
}

func TestCreateReview_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown tyre",
			err:        fmt.Errorf("create review: %w", store.ErrParentNotFound),
			wantStatus: http.StatusNotFound,
			wantError:  "Tyre not found",
		},
		{
			name: "missing fields",
			err: &validators.ValidationError{Fields: []validators.FieldError{
				{Field: "name", Rule: "required"},
				{Field: "tyre", Rule: "required"},
			}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Name, rating, comment, and tyre are required",
		},
		{
			name:       "rating out of range",
			err:        &validators.ValidationError{Fields: []validators.FieldError{{Field: "rating", Rule: "max"}}},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid input: rating (max)",
		},
		{
			name:       "retries exhausted",
			err:        fmt.Errorf("create review: %w", store.ErrTransactionConflict),
			wantStatus: http.StatusConflict,
			wantError:  "The resource is busy, please try again",
		},
		{
			name:       "database down",
			err:        store.ErrStorageUnavailable,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newShopRouter(t, &service.Services{
				ReviewService: &mockReviewService{
					createFn: func(context.Context, models.ReviewInput) (models.Review, error) {
						return models.Review{}, tt.err
					},
				},
			})

			rec := doJSON(router, http.MethodPost, "/api/v1/review/",
				`{"name":"Asha","rating":5,"comment":"Great grip","tyre":"missing"}`, false)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantError, env.Error)
		})
	}
}

func TestDeleteReview_OrphanSucceeds(t *testing.T) {
	var deleted string
	router := newShopRouter(t, &service.Services{
		ReviewService: &mockReviewService{
			// The service skips the parent when the tyre is already gone.
			deleteFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		},
	})

	rec := doJSON(router, http.MethodDelete, "/api/v1/review/orphan-1", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "orphan-1", deleted)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Review deleted successfully", env.Message)
}

func TestApproveReview(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
		wantError   string
	}{
		{name: "approve", body: `{"approved":true}`, wantStatus: http.StatusOK, wantMessage: "Review approved successfully"},
		{name: "disapprove", body: `{"approved":false}`, wantStatus: http.StatusOK, wantMessage: "Review disapproved successfully"},
		{name: "missing flag", body: `{}`, wantStatus: http.StatusBadRequest, wantError: "Approved field must be true or false"},
		{name: "not a boolean", body: `{"approved":"yes"}`, wantStatus: http.StatusBadRequest, wantError: "Approved field must be true or false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newShopRouter(t, &service.Services{ReviewService: &mockReviewService{}})

			rec := doJSON(router, http.MethodPatch, "/api/v1/review/r-1/approve", tt.body, true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Equal(t, tt.wantError, env.Error)
		})
	}
}

func TestCreateEnquiry(t *testing.T) {
	t.Run("tyre id comes from the path", func(t *testing.T) {
		var got models.EnquiryInput
		router := newShopRouter(t, &service.Services{
			EnquiryService: &mockEnquiryService{
				createFn: func(_ context.Context, in models.EnquiryInput) (models.Enquiry, error) {
					got = in
					return models.Enquiry{ID: "enq-1", TyreID: &in.TyreID}, nil
				},
			},
		})

		rec := doJSON(router, http.MethodPost, "/api/v1/enquiry/tyre-9",
			`{"name":"Ravi","email":"ravi@example.com","enquirie":"In stock?"}`, false)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "tyre-9", got.TyreID)
		assert.Equal(t, "In stock?", got.Message)
		assert.Equal(t, "Query created and email sent successfully", decodeEnvelope(t, rec).Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		router := newShopRouter(t, &service.Services{
			EnquiryService: &mockEnquiryService{
				createFn: func(context.Context, models.EnquiryInput) (models.Enquiry, error) {
					return models.Enquiry{}, &validators.ValidationError{Fields: []validators.FieldError{
						{Field: "name", Rule: "required"},
						{Field: "email", Rule: "required"},
					}}
				},
			},
		})

		rec := doJSON(router, http.MethodPost, "/api/v1/enquiry/tyre-9", `{"enquirie":"hi"}`, false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Please fill all fields", env.Error)
	})

	t.Run("malformed json", func(t *testing.T) {
		router := newShopRouter(t, &service.Services{EnquiryService: &mockEnquiryService{}})

		rec := doJSON(router, http.MethodPost, "/api/v1/enquiry/tyre-9", `{"name":`, false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON was passed", decodeEnvelope(t, rec).Error)
	})
}

func TestCreateReview_ConcurrentRequests(t *testing.T) {
	var created atomic.Int64
	router := newShopRouter(t, &service.Services{
		ReviewService: &mockReviewService{
			createFn: func(_ context.Context, in models.ReviewInput) (models.Review, error) {
				n := created.Add(1)
				return models.Review{ID: fmt.Sprintf("review-%d", n), Name: in.Name}, nil
			},
		},
	})

	const workers = 10
	codes := make([]int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"name":"user-%d","rating":4,"comment":"ok","tyre":"tyre-1"}`, i)
			codes[i] = doJSON(router, http.MethodPost, "/api/v1/review/", body, false).Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusCreated, code, "request %d", i)
	}
	assert.Equal(t, int64(workers), created.Load())
}

// ─────────────────────────────────────────────
// Tyres
// ─────────────────────────────────────────────

func TestListTyres_CountIsTotal(t *testing.T) {
	var got models.TyreFilter
	router := newShopRouter(t, &service.Services{
		TyreService: &mockTyreService{
			listFn: func(_ context.Context, filter models.TyreFilter) ([]models.Tyre, int64, error) {
				got = filter
				return []models.Tyre{{ID: "t-1"}}, 42, nil
			},
		},
	})

	rec := doJSON(router, http.MethodGet, "/api/v1/tyre/?brand=Apollo&page=2&limit=1", "", false)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Count)
	assert.Equal(t, 42, *env.Count)
	assert.Equal(t, "Apollo", got.Brand)
	assert.Equal(t, uint64(2), got.Page)
	assert.Equal(t, uint64(1), got.Limit)
}

func TestGetTyre_NotFound(t *testing.T) {
	router := newShopRouter(t, &service.Services{
		TyreService: &mockTyreService{
			getFn: func(context.Context, string) (models.Tyre, error) {
				return models.Tyre{}, store.ErrTyreNotFound
			},
		},
	})

	rec := doJSON(router, http.MethodGet, "/api/v1/tyre/no-such-slug", "", false)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Tyre not found", decodeEnvelope(t, rec).Error)
}
