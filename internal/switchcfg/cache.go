package switchcfg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through Redis cache of resolved settings. Entries include
// the switch secret, so the Redis instance must be private to the service.
type Cache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewCache(rdb redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func defaultKey(tenantID string) string { return "switchcfg:" + tenantID + ":default" }

func serverKey(tenantID, id string) string { return "switchcfg:" + tenantID + ":id:" + id }

// Get returns the cached settings under key and whether they were present.
func (c *Cache) Get(ctx context.Context, key string) (Settings, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Settings{}, false, nil
	}
	if err != nil {
		return Settings{}, false, err
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, false, err
	}
	return s, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate drops the entry for one server and the tenant's default entry.
func (c *Cache) Invalidate(ctx context.Context, tenantID, id string) error {
	return c.rdb.Del(ctx, defaultKey(tenantID), serverKey(tenantID, id)).Err()
}
