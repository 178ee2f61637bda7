package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRenderTTL = time.Hour

// RenderCache memoises rendered note HTML.
// Key format: render:<note_id>:<updated_at_unix_nano>
type RenderCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRenderCache(client redis.Cmdable, ttl time.Duration) *RenderCache {
	if ttl <= 0 {
		ttl = DefaultRenderTTL
	}
	return &RenderCache{client: client, ttl: ttl}
}

func (c *RenderCache) Get(ctx context.Context, key string) (string, bool, error) {
	html, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("render cache get: %w", err)
	}
	return html, true, nil
}

// Set stores html for key; entries expire after the configured TTL.
func (c *RenderCache) Set(ctx context.Context, key, html string) error {
	if err := c.client.Set(ctx, c.key(key), html, c.ttl).Err(); err != nil {
		return fmt.Errorf("render cache set: %w", err)
	}
	return nil
}

func (c *RenderCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RenderCache) key(k string) string {
	return "render:" + k
}
