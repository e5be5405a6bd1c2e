// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"swing_backend/internal/feature/prices/domain/entity"
	"swing_backend/internal/feature/prices/usecase"
)

// CachingPriceRepository decorates a PriceRepository with Redis caching.
// Range reads are cached per symbol and date range; upserts invalidate every
// cached range of the touched symbols.
type CachingPriceRepository struct {
	inner     usecase.PriceRepository
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var _ usecase.PriceRepository = (*CachingPriceRepository)(nil)

const defaultTTL = 5 * time.Minute

// NewCachingPriceRepository decorates a PriceRepository with Redis caching.
// ttl is evaluated on every cache write; a nil ttl or a non-positive result
// falls back to 5 minutes. If namespace is empty, it uses "prices".
// A nil rdb disables caching.
func NewCachingPriceRepository(rdb *redis.Client, ttl func() time.Duration, inner usecase.PriceRepository, namespace string) *CachingPriceRepository {
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch stores prices and invalidates the cached ranges of their symbols.
func (c *CachingPriceRepository) UpsertBatch(ctx context.Context, prices []entity.DailyPrice) error {
	if err := c.inner.UpsertBatch(ctx, prices); err != nil {
		return err
	}
	if c.rdb == nil || len(prices) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	for _, p := range prices {
		prefix := c.cacheKeyPrefix(p.Symbol)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		// Best effort: a stale entry expires with its TTL.
		if err := c.deleteByPattern(ctx, prefix+"*"); err != nil {
			slog.Warn("price cache invalidation failed", "symbol", p.Symbol, "error", err)
		}
	}
	return nil
}

// FindRange returns cached prices when present and loads them from the inner
// repository otherwise.
func (c *CachingPriceRepository) FindRange(ctx context.Context, symbol string, from, to time.Time) ([]entity.DailyPrice, error) {
	if c.rdb == nil {
		return c.inner.FindRange(ctx, symbol, from, to)
	}

	key := c.cacheKey(symbol, from, to)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.DailyPrice
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindRange(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.expiry()).Err()
	}
	return out, nil
}

func (c *CachingPriceRepository) expiry() time.Duration {
	if c.ttl == nil {
		return defaultTTL
	}
	if d := c.ttl(); d > 0 {
		return d
	}
	return defaultTTL
}

func (c *CachingPriceRepository) cacheKey(symbol string, from, to time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(symbol),
		from.UTC().Format("20060102"),
		to.UTC().Format("20060102"),
	)
}

func (c *CachingPriceRepository) cacheKeyPrefix(symbol string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(symbol))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
