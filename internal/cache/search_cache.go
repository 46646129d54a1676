package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hoponhub/internal/domain/models"
)

const (
	searchPrefix     = "search:"
	DefaultSearchTTL = 5 * time.Minute
	scanBatch        = 100
)

// SearchCache keeps search results in Redis. A nil client turns every call
// into a no-op, so callers never need to check whether Redis is configured.
type SearchCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSearchCache(client *redis.Client) *SearchCache {
	return &SearchCache{Client: client, TTL: DefaultSearchTTL}
}

// SearchKey builds search:<from>:<to>:<date>; an empty date is stored as "any".
// Each part is query-escaped so a ':' in user input cannot shift the fields.
func SearchKey(from, to, date string) string {
	if date == "" {
		date = "any"
	}
	return fmt.Sprintf("%s%s:%s:%s", searchPrefix,
		url.QueryEscape(strings.ToLower(from)),
		url.QueryEscape(strings.ToLower(to)),
		url.QueryEscape(date))
}

func (c *SearchCache) enabled() bool {
	return c != nil && c.Client != nil
}

// Get returns the cached offerings and whether the key was present.
func (c *SearchCache) Get(ctx context.Context, key string) ([]models.Offering, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] get %s gagal: %v", key, err)
		}
		return nil, false
	}
	var out []models.Offering
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("[CACHE] decode %s gagal: %v", key, err)
		return nil, false
	}
	return out, true
}

func (c *SearchCache) Set(ctx context.Context, key string, offerings []models.Offering) {
	if !c.enabled() {
		return
	}
	b, err := json.Marshal(offerings)
	if err != nil {
		log.Printf("[CACHE] encode %s gagal: %v", key, err)
		return
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	if err := c.Client.Set(ctx, key, string(b), ttl).Err(); err != nil {
		log.Printf("[CACHE] set %s gagal: %v", key, err)
	}
}

// Invalidate removes every search entry. It returns the number of keys deleted.
func (c *SearchCache) Invalidate(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := c.Client.Scan(ctx, cursor, searchPrefix+"*", scanBatch).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan search keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.Client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("delete search keys: %w", err)
			}
			deleted += n
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}
