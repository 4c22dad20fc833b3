package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis, or returns nil when no address is
// configured or the server is unreachable. Callers degrade to computing
// the display projection on every request.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// DisplayCache caches the resolved ad cards for one page and hour key.
// Entries expire at the hour boundary; the projection is never cached
// beyond the hour it was computed for.
type DisplayCache struct {
	rdb *redis.Client
}

func NewDisplayCache(rdb *redis.Client) *DisplayCache {
	return &DisplayCache{rdb: rdb}
}

func (c *DisplayCache) key(page, hourKey string) string {
	return fmt.Sprintf("display:%s:%s", page, hourKey)
}

// Get returns the cached cards into dest, reporting whether there was a
// hit. A nil cache always misses.
func (c *DisplayCache) Get(ctx context.Context, page, hourKey string, dest any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}

	data, err := c.rdb.Get(ctx, c.key(page, hourKey)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the cards with a TTL reaching to the next hour boundary.
func (c *DisplayCache) Set(ctx context.Context, page, hourKey string, cards any, now time.Time) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(cards)
	if err != nil {
		return err
	}

	ttl := now.Truncate(time.Hour).Add(time.Hour).Sub(now)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return c.rdb.Set(ctx, c.key(page, hourKey), data, ttl).Err()
}
