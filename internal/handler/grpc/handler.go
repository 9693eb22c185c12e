package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name under which the shop reports its own health, next
// to the overall "" entry.
const ServiceName = "tyreshop.v1.Shop"

// DefaultProbeInterval is how often [Handler.Watch] pings the database.
const DefaultProbeInterval = 10 * time.Second

// Handler is the root gRPC transport handler.
//
// It exposes the standard gRPC health protocol, backed by the same database
// ping as the HTTP /healthz route, so that orchestrators can probe the
// service over either transport.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger. Its health status starts as NOT_SERVING until the first probe.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the health service to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// Probe pings the database once and publishes the result.
func (h *Handler) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.services.HealthService.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Str("func", "*Handler.Probe").Msg("database is not reachable")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.setStatus(status)
	return status
}

// Watch probes every interval until ctx is done, then marks the service as
// shutting down so that in-flight health watchers see the change.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
