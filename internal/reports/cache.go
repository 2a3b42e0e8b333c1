package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache wraps Redis-backed caching of report payloads with a per-user
// version counter. Invalidation bumps the version, so stale keys simply
// fall out of use and expire on their own TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper. A nil client degrades to
// pass-through behavior, which tests and cache-less deployments rely on.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func versionKey(userID uuid.UUID) string {
	return "reports:version:" + userID.String()
}

// version returns the user's current cache version, initialising it when
// missing.
func (c *Cache) version(ctx context.Context, userID uuid.UUID) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, versionKey(userID), 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey composes the cache key for one report kind, embedding the
// user's current version.
func (c *Cache) BuildKey(ctx context.Context, userID uuid.UUID, kind string) (string, error) {
	if c == nil || c.client == nil {
		return fmt.Sprintf("reports:%s:%s", kind, userID), nil
	}
	ver, err := c.version(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("reports:%s:%s:%d", kind, userID, ver), nil
}

// FetchJSON loads a cached value or populates it using the loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("reports: cache loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if err != redis.Nil {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate bumps the user's cache version after an entry mutation.
// Failures are swallowed: the worst case is a report staying cached
// until its TTL runs out.
func (c *Cache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Incr(ctx, versionKey(userID)).Err()
}
