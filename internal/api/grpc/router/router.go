package router

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dtroode/todo-server/internal/api/grpc/handler"
	"github.com/dtroode/todo-server/internal/api/grpc/middleware"
	"github.com/dtroode/todo-server/internal/logger"
)

// Router represents the operational gRPC surface of the server.
type Router struct {
	health *handler.Health
	logger *logger.Logger
}

func New(health *handler.Health, logger *logger.Logger) *Router {
	return &Router{
		health: health,
		logger: logger,
	}
}

// Register builds a gRPC server with logging and panic recovery and
// registers the health service on it.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(r.recover)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
		),
	)
	healthpb.RegisterHealthServer(s, r.health.Server())

	return s
}

func (r *Router) recover(_ context.Context, p any) error {
	r.logger.Error("gRPC router: recovered from panic", "panic", fmt.Sprint(p))
	return status.Error(codes.Internal, "internal server error")
}
