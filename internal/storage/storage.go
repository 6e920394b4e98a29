package storage

import (
	"context"
	"fmt"

	"github.com/dtroode/todo-server/internal/config"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/repository/memory"
	"github.com/dtroode/todo-server/internal/repository/mongodb"
	"github.com/dtroode/todo-server/internal/repository/postgres"
)

// Backend bundles the stores of one storage driver.
type Backend struct {
	Users model.UserStore
	Tasks model.TaskStore
	close func(ctx context.Context) error
}

// Close releases the connections held by the backend.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open connects to the backend selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, lg *logger.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		lg.Info("Storage: connected to postgres")
		return &Backend{
			Users: postgres.NewUserRepository(conn),
			Tasks: postgres.NewTaskRepository(conn),
			close: func(context.Context) error { return conn.Close() },
		}, nil

	case config.DriverMongo:
		conn, err := mongodb.NewConnection(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		lg.Info("Storage: connected to mongo", "database", cfg.Mongo.Database)
		return &Backend{
			Users: mongodb.NewUserRepository(conn),
			Tasks: mongodb.NewTaskRepository(conn),
			close: conn.Close,
		}, nil

	case config.DriverMemory:
		lg.Warn("Storage: using in-memory store, data is lost on restart")
		store := memory.New()
		return &Backend{
			Users: store,
			Tasks: store.Tasks(),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
