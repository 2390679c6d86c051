// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"disclosure_backend/internal/feature/disclosure/domain/entity"
)

// DisclosureRepository は公示ストアの読み書きをまとめたインターフェースです。
// Goの慣例に従い、インターフェースは利用者（decorator）側で定義します。
type DisclosureRepository interface {
	UpsertBatch(ctx context.Context, records []entity.Disclosure) error
	FindByCategories(ctx context.Context, categories []string) ([]entity.Disclosure, error)
	Search(ctx context.Context, field entity.SearchField, term string) ([]entity.Disclosure, error)
	ListSectors(ctx context.Context) ([]string, error)
	FindRatios(ctx context.Context, query entity.RatioQuery) ([]entity.Disclosure, error)
}

// CachingDisclosureRepository decorates a DisclosureRepository with Redis caching.
// Category lookups and the sector list are cached; free-text search and ratio
// queries always go to the store.
type CachingDisclosureRepository struct {
	inner     DisclosureRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ DisclosureRepository = (*CachingDisclosureRepository)(nil)

// NewCachingDisclosureRepository decorates a DisclosureRepository with Redis caching.
// If ttl is 0, entries expire at the next daily refresh (see TimeUntilNextRefresh).
// If namespace is empty, it uses "disclosures". A nil rdb disables caching.
func NewCachingDisclosureRepository(rdb *redis.Client, ttl time.Duration, inner DisclosureRepository, namespace string) *CachingDisclosureRepository {
	if namespace == "" {
		namespace = "disclosures"
	}
	return &CachingDisclosureRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch writes records and invalidates every cached entry of the namespace.
func (c *CachingDisclosureRepository) UpsertBatch(ctx context.Context, records []entity.Disclosure) error {
	if err := c.inner.UpsertBatch(ctx, records); err != nil {
		return err
	}
	if c.rdb == nil || len(records) == 0 {
		return nil
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("failed to invalidate disclosure cache", "error", err)
	}
	return nil
}

// FindByCategories returns cached records for the category set, falling back to the store.
func (c *CachingDisclosureRepository) FindByCategories(ctx context.Context, categories []string) ([]entity.Disclosure, error) {
	if c.rdb == nil {
		return c.inner.FindByCategories(ctx, categories)
	}
	key := c.categoriesKey(categories)

	var out []entity.Disclosure
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.FindByCategories(ctx, categories)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// ListSectors returns the cached sector list, falling back to the store.
func (c *CachingDisclosureRepository) ListSectors(ctx context.Context) ([]string, error) {
	if c.rdb == nil {
		return c.inner.ListSectors(ctx)
	}
	key := c.namespace + ":sectors"

	var out []string
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.ListSectors(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// Search is not cached.
func (c *CachingDisclosureRepository) Search(ctx context.Context, field entity.SearchField, term string) ([]entity.Disclosure, error) {
	return c.inner.Search(ctx, field, term)
}

// FindRatios is not cached.
func (c *CachingDisclosureRepository) FindRatios(ctx context.Context, query entity.RatioQuery) ([]entity.Disclosure, error) {
	return c.inner.FindRatios(ctx, query)
}

// get decodes a cached value into dst. A corrupted entry is deleted and reported as a miss.
func (c *CachingDisclosureRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores a value (best effort).
func (c *CachingDisclosureRepository) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ttl := c.ttl
	if ttl <= 0 {
		ttl = TimeUntilNextRefresh(time.Now())
	}
	_ = c.rdb.Set(ctx, key, b, ttl).Err()
}

// categoriesKey generates a cache key that does not depend on the order of categories.
func (c *CachingDisclosureRepository) categoriesKey(categories []string) string {
	sorted := make([]string, 0, len(categories))
	seen := map[string]struct{}{}
	for _, cat := range categories {
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		sorted = append(sorted, safe(cat))
	}
	sort.Strings(sorted)
	return fmt.Sprintf("%s:categories:%s", c.namespace, strings.Join(sorted, ","))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingDisclosureRepository) deleteByPattern(ctx context.Context, pattern string) error {
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

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, ",", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
