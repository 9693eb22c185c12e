package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/service"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// ---- Mock: AuthService ----

type mockAuthService struct {
	registerFn     func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, req models.LoginRequest) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	authenticateFn func(ctx context.Context, token string) (models.Identity, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return models.User{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return models.User{}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "signed"}, nil
}

func (m *mockAuthService) ParseToken(_ context.Context, _ string) (models.Token, error) {
	return models.Token{}, nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, token)
	}
	return models.Identity{}, service.ErrTokenIsExpiredOrInvalid
}

// ---- Mock: TyreService ----

type mockTyreService struct {
	createFn func(ctx context.Context, in models.TyreInput, images []models.UploadedFile) (models.Tyre, error)
	getFn    func(ctx context.Context, idOrSlug string) (models.Tyre, error)
	listFn   func(ctx context.Context, filter models.TyreFilter) ([]models.Tyre, int64, error)
	updateFn func(ctx context.Context, update models.TyreUpdate, images []models.UploadedFile) (models.Tyre, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockTyreService) CreateTyre(ctx context.Context, in models.TyreInput, images []models.UploadedFile) (models.Tyre, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in, images)
	}
	return models.Tyre{}, nil
}

func (m *mockTyreService) GetTyre(ctx context.Context, idOrSlug string) (models.Tyre, error) {
	if m.getFn != nil {
		return m.getFn(ctx, idOrSlug)
	}
	return models.Tyre{}, nil
}

func (m *mockTyreService) ListTyres(ctx context.Context, filter models.TyreFilter) ([]models.Tyre, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTyreService) UpdateTyre(ctx context.Context, update models.TyreUpdate, images []models.UploadedFile) (models.Tyre, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, update, images)
	}
	return models.Tyre{}, nil
}

func (m *mockTyreService) DeleteTyre(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ---- Mock: ReviewService ----

type mockReviewService struct {
	createFn      func(ctx context.Context, in models.ReviewInput) (models.Review, error)
	setApprovedFn func(ctx context.Context, id string, approval models.ReviewApproval) (models.Review, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockReviewService) CreateReview(ctx context.Context, in models.ReviewInput) (models.Review, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return models.Review{}, nil
}

func (m *mockReviewService) ListReviews(_ context.Context) ([]models.Review, error) {
	return []models.Review{}, nil
}

func (m *mockReviewService) ListApprovedReviews(_ context.Context, _ string) ([]models.Review, error) {
	return []models.Review{}, nil
}

func (m *mockReviewService) SetApproved(ctx context.Context, id string, approval models.ReviewApproval) (models.Review, error) {
	if m.setApprovedFn != nil {
		return m.setApprovedFn(ctx, id, approval)
	}
	return models.Review{ID: id, Approved: *approval.Approved}, nil
}

func (m *mockReviewService) DeleteReview(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ---- Mock: EnquiryService ----

type mockEnquiryService struct {
	createFn func(ctx context.Context, in models.EnquiryInput) (models.Enquiry, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockEnquiryService) CreateEnquiry(ctx context.Context, in models.EnquiryInput) (models.Enquiry, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return models.Enquiry{}, nil
}

func (m *mockEnquiryService) ListEnquiries(_ context.Context) ([]models.Enquiry, error) {
	return []models.Enquiry{}, nil
}

func (m *mockEnquiryService) DeleteEnquiry(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ---- Mock: HealthService ----

type mockHealthService struct {
	pingErr error
}

func (m *mockHealthService) Ping(_ context.Context) error { return m.pingErr }
func (m *mockHealthService) Version() string            { return "test-version" }

// ---- Helpers ----

// newTestHandler builds a Handler around services with a nop logger and a
// per-test upload dir.
func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()

	return &Handler{
		services:  services,
		uploadDir: t.TempDir(),
		logger:    logger.Nop(),
	}
}

// decodeEnvelope reads the JSON envelope of rec. Data is left raw so tests
// can decode it into the type they expect.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// withURLParam sets a chi path parameter on r, for handlers called without
// the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
