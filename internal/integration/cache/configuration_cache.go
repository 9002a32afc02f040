// Package cache provides redis-backed decorators for slow-changing repositories.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// SystemSettingsKey is the redis key holding the cached system settings.
const SystemSettingsKey = "finance:configuration:system-settings"

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 5 * time.Minute

type cachedSettings struct {
	Locale   string `json:"locale"`
	Currency string `json:"currency"`
	Timezone string `json:"timezone"`
}

// configurationCache implements adapter.ConfigurationRepository on top of another
// repository, keeping the result in redis for ttl.
type configurationCache struct {
	next   adapter.ConfigurationRepository
	client *redis.Client
	ttl    time.Duration
}

// NewConfigurationCache wraps the repository with a redis cache.
// Redis failures are logged and fall through to the wrapped repository.
func NewConfigurationCache(next adapter.ConfigurationRepository, client *redis.Client, ttl time.Duration) adapter.ConfigurationRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &configurationCache{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// GetSystemSettings returns the cached settings, loading them on a miss.
func (c *configurationCache) GetSystemSettings(ctx context.Context) (*entity.SystemSettings, error) {
	payload, err := c.client.Get(ctx, SystemSettingsKey).Bytes()
	switch {
	case err == nil:
		var cached cachedSettings
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &entity.SystemSettings{
				Locale:   cached.Locale,
				Currency: cached.Currency,
				Timezone: cached.Timezone,
			}, nil
		}
		slog.Warn("Discarding unreadable cached system settings", "key", SystemSettingsKey)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Failed to read system settings from cache", "error", err)
	}

	settings, err := c.next.GetSystemSettings(ctx)
	if err != nil {
		return nil, err
	}

	payload, err = json.Marshal(cachedSettings{
		Locale:   settings.Locale,
		Currency: settings.Currency,
		Timezone: settings.Timezone,
	})
	if err != nil {
		return settings, nil
	}
	if err := c.client.Set(ctx, SystemSettingsKey, payload, c.ttl).Err(); err != nil {
		slog.Warn("Failed to cache system settings", "error", err)
	}
	return settings, nil
}
