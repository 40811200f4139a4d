package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, ":9090", cfg.Server.GRPCPort)
	assert.Equal(t, CatalogSourceSeed, cfg.Catalog.Source)
	assert.Equal(t, DefaultCalibers, cfg.Catalog.Calibers)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "3000")
	t.Setenv("CATALOG_SOURCE", "sql")
	t.Setenv("CATALOG_CALIBERS", "9mm, .308 ,,")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("LOGGER_DISABLE_CALLER", "yes-please")

	cfg := LoadEnv()

	assert.Equal(t, "3000", cfg.Server.HTTPPort)
	assert.Equal(t, CatalogSourceSQL, cfg.Catalog.Source)
	assert.Equal(t, []string{"9mm", ".308"}, cfg.Catalog.Calibers)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	// unparsable bool falls back
	assert.False(t, cfg.Logger.DisableCaller)
}

func TestLoadEnv_DefaultCalibersNotAliased(t *testing.T) {
	cfg := LoadEnv()
	cfg.Catalog.Calibers[0] = "mutated"
	assert.Equal(t, "9mm", DefaultCalibers[0])
}

func TestNormalizePort(t *testing.T) {
	assert.Equal(t, ":8080", NormalizePort("8080"))
	assert.Equal(t, ":8080", NormalizePort(":8080"))
	assert.Equal(t, "127.0.0.1:80", NormalizePort("127.0.0.1:80"))
	assert.Equal(t, "", NormalizePort(""))
}
