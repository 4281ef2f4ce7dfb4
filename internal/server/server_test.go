package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	api := NewWebAPI(zap.New(core), Config{})

	rr := do(t, api.Handler(), http.MethodGet, "/api/v1/presets/nope", "")
	require.Equal(t, http.StatusNotFound, rr.Code)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/presets/nope", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRecoverer(t *testing.T) {
	api := NewWebAPI(zap.NewNop(), Config{})
	api.router.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := do(t, api.Handler(), http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	api := NewWebAPI(zap.NewNop(), Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- api.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
