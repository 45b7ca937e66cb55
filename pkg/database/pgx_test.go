package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            5432,
		User:            "vidhub",
		Password:        "vidhub_dev_password",
		Database:        "vidhub_dev",
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        2,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
		Timeout:         10 * time.Second,
	}
}

func TestNewPGXPool(t *testing.T) {
	// Requires a running PostgreSQL instance
	pool, err := NewPGXPool(devConfig())
	if err != nil {
		t.Skipf("Skipping test: PostgreSQL not available: %v", err)
		return
	}
	defer pool.Close()

	err = HealthCheck(context.Background(), pool)
	require.NoError(t, err)
}

func TestHealthCheckCancelledContext(t *testing.T) {
	pool, err := NewPGXPool(devConfig())
	if err != nil {
		t.Skipf("Skipping test: PostgreSQL not available: %v", err)
		return
	}
	defer pool.Close()

	err = HealthCheck(context.Background(), pool)
	assert.NoError(t, err)

	cancelCtx, cancel := context.WithCancel(context.Background())
	cancel()
	err = HealthCheck(cancelCtx, pool)
	assert.Error(t, err)
}
