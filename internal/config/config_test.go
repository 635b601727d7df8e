package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasSevenSuiteTargets(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.SuiteTargets, 7)
}

func TestLoadFallsBackToDefaultsWithoutEnvFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/.env")
	require.NoError(t, err)
	assert.Equal(t, Default().WorkerPoolSize, cfg.WorkerPoolSize)
}

func TestLoadHonoursEnvironmentOverride(t *testing.T) {
	require.NoError(t, os.Setenv("WORKER_POOL_SIZE", "8"))
	defer os.Unsetenv("WORKER_POOL_SIZE")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.WorkerPoolSize)
}
