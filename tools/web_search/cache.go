package web_search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pepo-gtm/pepo/tools/web_search/models"
)

// CachedSearcher wraps a WebSearcher with a Redis result cache. Daily-plan
// runs repeat many of the same queries; caching keeps them cheap. Cache
// failures fall through to the backend.
type CachedSearcher struct {
	backend WebSearcher
	rdb     *redis.Client
	ttl     time.Duration
}

func NewCachedSearcher(backend WebSearcher, rdb *redis.Client, ttl time.Duration) *CachedSearcher {
	return &CachedSearcher{backend: backend, rdb: rdb, ttl: ttl}
}

func (c *CachedSearcher) Search(ctx context.Context, q string, k int) ([]models.Result, error) {
	key := cacheKey(q, k)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached []models.Result
		if json.Unmarshal(b, &cached) == nil {
			return cached, nil
		}
	}

	results, err := c.backend.Search(ctx, q, k)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(results); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return results, nil
}

func cacheKey(q string, k int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", k, q)))
	return "websearch:" + hex.EncodeToString(sum[:16])
}
