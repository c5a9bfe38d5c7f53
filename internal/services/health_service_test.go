package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t20cli/internal/config"
	"t20cli/internal/dataset"
	"t20cli/internal/shared/testutil"
)

func TestHealthCheck(t *testing.T) {
	svc := newTestService(t)
	health := NewHealthService(svc.config, svc.store, testutil.NewTestLogger(t))

	body := health.HealthCheck(context.Background())
	assert.Equal(t, "healthy", body["status"])

	ds, ok := body["dataset"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, ds["cached"], "dataset not loaded until first query")
}

func TestReadinessCheck(t *testing.T) {
	svc := newTestService(t)
	health := NewHealthService(svc.config, svc.store, testutil.NewTestLogger(t))

	body := health.ReadinessCheck(context.Background())
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, len(testRows), body["deliveries"])

	// The readiness probe warms the cache
	assert.True(t, svc.store.Cached(svc.config.GetCSVPath()))
}

func TestReadinessCheckMissingDataset(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.CSVPath = filepath.Join(t.TempDir(), "missing.csv")

	logger := testutil.NewTestLogger(t)
	health := NewHealthService(cfg, dataset.NewStore(logger), logger)

	body := health.ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", body["status"])
	assert.NotEmpty(t, body["error"])
}

func TestLivenessAndVersion(t *testing.T) {
	svc := newTestService(t)
	health := NewHealthService(svc.config, svc.store, testutil.NewTestLogger(t))

	assert.Equal(t, "alive", health.LivenessCheck(context.Background())["status"])
	assert.NotEmpty(t, health.Version()["version"])
}
