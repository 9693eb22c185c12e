package http

import (
	"os"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/service"
)

// Handler serves the REST API. It owns no state besides its settings; every
// request is delegated to the service layer.
type Handler struct {
	services *service.Services

	// uploadDir is where multipart files are spooled before the media
	// adapter picks them up.
	uploadDir string

	// tokenDuration is the max age of the AccessToken cookie.
	tokenDuration time.Duration
	secureCookies bool

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	uploadDir := cfg.Workers.UploadDir
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}

	return &Handler{
		services:       services,
		uploadDir:      uploadDir,
		tokenDuration:  cfg.App.TokenDuration,
		secureCookies:  cfg.App.SecureCookies,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
