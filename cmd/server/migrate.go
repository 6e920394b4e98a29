package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtroode/todo-server/database"
	"github.com/dtroode/todo-server/internal/config"
	"github.com/dtroode/todo-server/internal/logger"
)

func migrateCmd() *cli.Command {
	var dsn string
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending postgres migrations and exit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dsn",
				Usage:       "Postgres connection string, defaults to DATABASE_DSN",
				Destination: &dsn,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			lg := logger.New(cfg.LogLevel)

			if dsn == "" {
				dsn = cfg.Database.DSN
			}
			if err := database.Migrate(c.Context, dsn); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			lg.Info("migrations applied")
			return nil
		},
	}
}
