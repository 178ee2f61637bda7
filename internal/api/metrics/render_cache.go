package metrics

import (
	"context"

	"github.com/mdnotes/notes-api/internal/core/ports"
)

// CountingRenderCache records hits and misses of the wrapped cache.
type CountingRenderCache struct {
	next ports.RenderCache
}

func NewCountingRenderCache(next ports.RenderCache) *CountingRenderCache {
	return &CountingRenderCache{next: next}
}

func (c *CountingRenderCache) Get(ctx context.Context, key string) (string, bool, error) {
	html, ok, err := c.next.Get(ctx, key)
	switch {
	case err != nil:
		RenderCacheTotal.WithLabelValues("error").Inc()
	case ok:
		RenderCacheTotal.WithLabelValues("hit").Inc()
	default:
		RenderCacheTotal.WithLabelValues("miss").Inc()
	}
	return html, ok, err
}

func (c *CountingRenderCache) Set(ctx context.Context, key, html string) error {
	return c.next.Set(ctx, key, html)
}
