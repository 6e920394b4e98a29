package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/todo-server/internal/logger"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health serves the standard gRPC health protocol. The overall status
// follows the storage backend: SERVING while it answers pings.
type Health struct {
	server *health.Server
	pinger Pinger
	logger *logger.Logger
}

func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	h := &Health{
		server: health.NewServer(),
		pinger: pinger,
		logger: logger,
	}
	h.server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// Server returns the health service implementation to register.
func (h *Health) Server() healthpb.HealthServer {
	return h.server
}

// Check pings the backend once and publishes the result.
func (h *Health) Check(ctx context.Context) error {
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("Health handler: storage ping failed", "error", err.Error())
		h.server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		return err
	}
	h.server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return nil
}

// Run re-checks the backend every interval until ctx is done, then marks
// the service as not serving for good.
func (h *Health) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Shutdown()
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, interval)
			_ = h.Check(checkCtx)
			cancel()
		}
	}
}

// Shutdown sets every service to NOT_SERVING and ignores later updates.
func (h *Health) Shutdown() {
	h.server.Shutdown()
}
