package db

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acquisitions-finance/backend/config"
	"github.com/acquisitions-finance/backend/internal/integration/persistence/model"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver:          DriverSQLite,
		URL:             "file:db_test?mode=memory&cache=shared",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.AutoMigrate(model.All()...))
	assert.True(t, database.HealthCheck())
	assert.True(t, database.DB().Migrator().HasTable(&model.TransactionModel{}))
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "oracle"})

	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + server.Addr() + "/0"})
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, RedisHealthChecker(client)())

	server.Close()
	assert.False(t, RedisHealthChecker(client)())
}

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(&config.RedisConfig{})

	require.NoError(t, err)
	assert.Nil(t, client)
}
