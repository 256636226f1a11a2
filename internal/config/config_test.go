package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, DefaultExpectedTables, cfg.Catalog.ExpectedTables)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "tools")
	t.Setenv("CATALOG_DEFAULT_LIMIT", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Catalog.DefaultLimit)
	assert.Equal(t,
		"host=db.internal port=6543 user=catalog password=secret dbname=tools sslmode=disable",
		cfg.Database.DSN())
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TOOLCAT_TEST_KEY", "")
	assert.Equal(t, "fallback", GetEnvOrDefault("TOOLCAT_TEST_KEY", "fallback"))
	t.Setenv("TOOLCAT_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnvOrDefault("TOOLCAT_TEST_KEY", "fallback"))
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
