package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger returns a request with a logger writing JSON lines to buf.
func captureLogger(r *http.Request, buf *bytes.Buffer) *http.Request {
	l := zerolog.New(buf)
	return r.WithContext(l.WithContext(r.Context()))
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		status    int
		body      string
		wantLevel string
	}{
		{name: "GET 200", method: http.MethodGet, status: http.StatusOK, body: `{"success":true}`, wantLevel: "info"},
		{name: "POST 201", method: http.MethodPost, status: http.StatusCreated, body: `{"success":true}`, wantLevel: "info"},
		{name: "DELETE 404", method: http.MethodDelete, status: http.StatusNotFound, body: `{"success":false}`, wantLevel: "info"},
		{name: "PATCH 500", method: http.MethodPatch, status: http.StatusInternalServerError, body: `{"success":false}`, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			var buf bytes.Buffer
			req := captureLogger(httptest.NewRequest(tt.method, "/api/v1/tyre/?page=2", nil), &buf)
			rec := httptest.NewRecorder()

			h.withLogging(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, tt.method, line["method"])
			assert.Equal(t, "/api/v1/tyre/?page=2", line["uri"])
			assert.EqualValues(t, tt.status, line["status"])
			assert.EqualValues(t, len(tt.body), line["size"])
			assert.Contains(t, line, "duration")
		})
	}
}

func TestWithLogging_ImplicitStatus(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	var buf bytes.Buffer
	req := captureLogger(httptest.NewRequest(http.MethodGet, "/", nil), &buf)
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, strings.Contains(buf.String(), `"status":200`), buf.String())
}
