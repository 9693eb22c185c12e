package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_CopiesSettings(t *testing.T) {
	svc := &service.Services{}
	cfg := config.StructuredConfig{
		App:     config.App{TokenDuration: 2 * time.Hour, SecureCookies: true},
		Server:  config.Server{RequestTimeout: 5 * time.Second},
		Workers: config.Workers{UploadDir: "/var/tmp/uploads"},
	}

	h := NewHandler(svc, cfg, logger.Nop())

	require.NotNil(t, h)
	assert.Same(t, svc, h.services)
	assert.Equal(t, "/var/tmp/uploads", h.uploadDir)
	assert.Equal(t, 2*time.Hour, h.tokenDuration)
	assert.True(t, h.secureCookies)
	assert.Equal(t, 5*time.Second, h.requestTimeout)
}

func TestNewHandler_DefaultsUploadDir(t *testing.T) {
	h := NewHandler(&service.Services{}, config.StructuredConfig{}, logger.Nop())

	assert.Equal(t, os.TempDir(), h.uploadDir)
}

// ─────────────────────────────────────────────
// healthz
// ─────────────────────────────────────────────

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "database reachable",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","version":"test-version"}`,
		},
		{
			name:       "database down",
			pingErr:    assert.AnError,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable","version":"test-version"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{HealthService: &mockHealthService{pingErr: tt.pingErr}})

			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
