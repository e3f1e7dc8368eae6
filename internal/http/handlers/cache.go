package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productListCachePrefix = "products:v:"
	cacheVersionKey        = "products:version"
	productCacheTTL        = 5 * time.Minute
)

// CatalogCache caches product-list responses in Redis under versioned keys.
// Bumping the version on any catalog write invalidates every cached list at
// once without scanning keys.
type CatalogCache struct {
	rdb *redis.Client
}

func NewCatalogCache(rdb *redis.Client) *CatalogCache {
	return &CatalogCache{rdb: rdb}
}

func (c *CatalogCache) version(ctx context.Context) int64 {
	v, err := c.rdb.Get(ctx, cacheVersionKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *CatalogCache) listKey(version int64, query string) string {
	return fmt.Sprintf("%s%d:%s", productListCachePrefix, version, query)
}

// GetList returns a cached product listing for the raw query string.
func (c *CatalogCache) GetList(ctx context.Context, query string) (ProductsSearchResult, bool) {
	version := c.version(ctx)
	if version == 0 {
		return ProductsSearchResult{}, false
	}
	data, err := c.rdb.Get(ctx, c.listKey(version, query)).Result()
	if err != nil {
		return ProductsSearchResult{}, false
	}
	var result ProductsSearchResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		logger.Warn("failed to unmarshal cached product list", zap.Error(err))
		return ProductsSearchResult{}, false
	}
	return result, true
}

func (c *CatalogCache) SetList(ctx context.Context, query string, result ProductsSearchResult) {
	version := c.version(ctx)
	if version == 0 {
		if err := c.rdb.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return
		}
		version = 1
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.listKey(version, query), data, productCacheTTL).Err(); err != nil {
		logger.Warn("failed to cache product list", zap.Error(err))
	}
}

// Invalidate bumps the cache version; stale entries expire via TTL.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, cacheVersionKey).Err(); err != nil {
		logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func invalidateCatalogCache() {
	if catalogCache == nil || Ctx == nil {
		return
	}
	catalogCache.Invalidate(Ctx)
}
