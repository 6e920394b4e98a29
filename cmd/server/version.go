package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtroode/todo-server/internal/logger"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprint(c.App.Writer, versionText())
			return err
		},
	}
}

func versionText() string {
	tmpl := `Build version: %s
Build date: %s
Build commit: %s
`
	return fmt.Sprintf(tmpl, buildVersion, buildDate, buildCommit)
}

func logAppVersion(lg *logger.Logger) {
	lg.Info("build info",
		"version", buildVersion,
		"date", buildDate,
		"commit", buildCommit)
}
