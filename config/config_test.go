package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Finance.FundIDsChunkSize)
	assert.Equal(t, 15, cfg.Finance.IDListChunkSize)
	assert.Equal(t, "USD", cfg.Finance.DefaultSystemCurrency)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("FUND_IDS_CHUNK_SIZE", "7")
	t.Setenv("DEFAULT_SYSTEM_CURRENCY", "EUR")
	t.Setenv("REDIS_CACHE_TTL", "30s")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 7, cfg.Finance.FundIDsChunkSize)
	assert.Equal(t, "EUR", cfg.Finance.DefaultSystemCurrency)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("ID_LIST_CHUNK_SIZE", "many")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 15, cfg.Finance.IDListChunkSize)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}
