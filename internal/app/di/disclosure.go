// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	disclosureadapters "disclosure_backend/internal/feature/disclosure/adapters"
	"disclosure_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewDisclosureRepository creates the disclosure store.
// If Redis is available, category lookups and the sector list are cached;
// otherwise every call goes to the database.
func NewDisclosureRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *cache.CachingDisclosureRepository {
	return cache.NewCachingDisclosureRepository(rdb, ttl, disclosureadapters.NewDisclosureRepository(db), "disclosures")
}
