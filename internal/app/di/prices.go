// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	priceadapters "swing_backend/internal/feature/prices/adapters"
	"swing_backend/internal/platform/cache"
	"swing_backend/internal/platform/config"
)

// NewPriceRepository creates the price repository backed by the database.
// Reads are cached in Redis until the next daily refresh; a nil rdb disables the cache.
func NewPriceRepository(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *cache.CachingPriceRepository {
	loc, hour := cfg.CacheLocation(), cfg.Cache.RefreshHour
	ttl := func() time.Duration { return cache.TimeUntilNextRefresh(loc, hour) }
	return cache.NewCachingPriceRepository(rdb, ttl, priceadapters.NewPriceRepository(db), cfg.Cache.Namespace)
}
