package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/urfave/cli/v2"
	"google.golang.org/grpc/reflection"

	grpchandler "github.com/dtroode/todo-server/internal/api/grpc/handler"
	grpcrouter "github.com/dtroode/todo-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/todo-server/internal/api/grpc/server"
	httpctx "github.com/dtroode/todo-server/internal/api/http/context"
	apirouter "github.com/dtroode/todo-server/internal/api/http/router"
	httpserver "github.com/dtroode/todo-server/internal/api/http/server"
	"github.com/dtroode/todo-server/internal/config"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/password"
	"github.com/dtroode/todo-server/internal/server"
	"github.com/dtroode/todo-server/internal/service"
	"github.com/dtroode/todo-server/internal/storage"
	"github.com/dtroode/todo-server/internal/token"
)

const (
	shutdownTimeout     = 10 * time.Second
	healthCheckInterval = 15 * time.Second
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API and the gRPC health endpoint",
		Action: func(c *cli.Context) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			return serve(c.Context, cfg, logger.New(cfg.LogLevel))
		},
	}
}

type listener struct {
	server model.Server
	layer  model.SecurityLayer
}

func serve(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	backend, err := storage.Open(ctx, cfg, lg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			lg.Error("failed to close storage", "error", err)
		}
	}()

	codec := token.NewJWT(cfg.JWT.Secret)
	hasher := password.NewBcrypt(cfg.Password.Cost)
	authService := service.NewAuth(backend.Users, backend.Tasks, codec, hasher, lg)
	taskService := service.NewTask(backend.Tasks, lg)

	httpHandler := apirouter.New(authService, taskService, httpctx.NewManager(), lg).Register()
	httpSrv := httpserver.NewHTTPServer(httpHandler, fmt.Sprintf(":%s", cfg.HTTP.Port))

	health := grpchandler.NewHealth(backend.Users, lg)
	if err := health.Check(ctx); err != nil {
		return fmt.Errorf("storage is not reachable: %w", err)
	}
	grpcSrv := registerGRPCServer(health, lg, fmt.Sprintf(":%s", cfg.GRPC.Port))

	listeners := []listener{
		{server: httpSrv, layer: server.NewSecurityLayer(cfg.HTTP)},
		{server: grpcSrv, layer: server.NewSecurityLayer(cfg.GRPC)},
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(listeners))
	for _, l := range listeners {
		wg.Add(1)
		go func(l listener) {
			defer wg.Done()
			lg.Info("Starting server on", "address", l.server.Address())
			if err := l.server.Start(l.layer); err != nil {
				errCh <- fmt.Errorf("server %s: %w", l.server.Address(), err)
			}
		}(l)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		health.Run(runCtx, healthCheckInterval)
	}()

	logAppVersion(lg)

	var runErr error
	select {
	case <-ctx.Done():
		lg.Info("received interruption signal, shutting down")
	case runErr = <-errCh:
		lg.Error("server failed, shutting down", "error", runErr)
	}

	cancel()
	health.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, l := range listeners {
		if err := l.server.Stop(shutdownCtx); err != nil {
			lg.Error("error during server shutdown", "error", err, "address", l.server.Address())
			runErr = errors.Join(runErr, err)
		}
	}

	wg.Wait()
	lg.Info("shutdown complete")

	return runErr
}

func registerGRPCServer(health *grpchandler.Health, lg *logger.Logger, addr string) *grpcserver.GRPCServer {
	s := grpcrouter.New(health, lg).Register()
	reflection.Register(s)

	return grpcserver.NewGRPCServer(s, addr)
}
