package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/dtroode/todo-server/internal/config"
	"github.com/dtroode/todo-server/internal/testutil"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	app := &cli.App{
		Writer:   &out,
		Commands: []*cli.Command{versionCmd()},
	}

	require.NoError(t, app.Run([]string{"todo-server", "version"}))
	assert.Contains(t, out.String(), "Build version: N/A")
	assert.Contains(t, out.String(), "Build commit: N/A")
}

func TestServe_MemoryStopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		HTTP:    config.Listener{Port: "0"},
		GRPC:    config.Listener{Port: "0"},
		Storage: config.Storage{Driver: config.DriverMemory},
		JWT:     config.JWT{Secret: "test"},
		Password: config.Password{
			Cost: 4,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, testutil.MakeNoopLogger()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: "sqlite"}}

	err := serve(context.Background(), cfg, testutil.MakeNoopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize storage")
}
