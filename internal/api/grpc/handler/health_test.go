package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/todo-server/internal/testutil"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error {
	return p.err
}

func status(t *testing.T, h *Health) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.Server().Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealth_StartsNotServing(t *testing.T) {
	h := NewHealth(&fakePinger{}, testutil.MakeNoopLogger())

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, h))
}

func TestHealth_Check(t *testing.T) {
	pinger := &fakePinger{}
	h := NewHealth(pinger, testutil.MakeNoopLogger())

	require.NoError(t, h.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, h))

	pinger.err = errors.New("connection refused")
	require.Error(t, h.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, h))
}

func TestHealth_ShutdownIsFinal(t *testing.T) {
	h := NewHealth(&fakePinger{}, testutil.MakeNoopLogger())
	require.NoError(t, h.Check(context.Background()))

	h.Shutdown()
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, h))

	_ = h.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, h))
}

func TestHealth_RunStopsWithContext(t *testing.T) {
	h := NewHealth(&fakePinger{}, testutil.MakeNoopLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		h.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return status(t, h) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, h))
}
