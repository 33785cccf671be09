package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsConfigError(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_StopsWhenContextIsDone(t *testing.T) {
	t.Setenv("PORT", "0")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "run.db"))
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("REDIS_ADDR", "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
