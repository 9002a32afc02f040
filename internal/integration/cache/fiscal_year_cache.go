package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

const fiscalYearKeyPrefix = "finance:fiscal-year:"

type cachedFiscalYear struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Series      string `json:"series"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

// fiscalYearCache implements adapter.FiscalYearRepository with fiscal years kept in
// redis for ttl. Fiscal years are read on every totals computation for their currency.
type fiscalYearCache struct {
	next   adapter.FiscalYearRepository
	client *redis.Client
	ttl    time.Duration
}

// NewFiscalYearCache wraps the repository with a redis cache.
// Redis failures are logged and fall through to the wrapped repository.
func NewFiscalYearCache(next adapter.FiscalYearRepository, client *redis.Client, ttl time.Duration) adapter.FiscalYearRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &fiscalYearCache{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// FiscalYearKey returns the redis key of a cached fiscal year.
func FiscalYearKey(id uuid.UUID) string {
	return fiscalYearKeyPrefix + id.String()
}

// GetByID returns the cached fiscal year, loading it on a miss.
func (c *fiscalYearCache) GetByID(ctx context.Context, id uuid.UUID) (*entity.FiscalYear, error) {
	key := FiscalYearKey(id)

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedFiscalYear
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &entity.FiscalYear{
				ID:          id,
				Name:        cached.Name,
				Code:        cached.Code,
				Series:      cached.Series,
				Currency:    cached.Currency,
				Description: cached.Description,
			}, nil
		}
		slog.Warn("Discarding unreadable cached fiscal year", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Failed to read fiscal year from cache", "fiscalYearId", id, "error", err)
	}

	fiscalYear, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err = json.Marshal(cachedFiscalYear{
		Name:        fiscalYear.Name,
		Code:        fiscalYear.Code,
		Series:      fiscalYear.Series,
		Currency:    fiscalYear.Currency,
		Description: fiscalYear.Description,
	})
	if err != nil {
		return fiscalYear, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("Failed to cache fiscal year", "fiscalYearId", id, "error", err)
	}
	return fiscalYear, nil
}
