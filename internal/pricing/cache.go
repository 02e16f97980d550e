package pricing

import (
	"context"
	"time"
)

// nopCache is the default cache backend: every read misses and writes are
// discarded. Used when no external cache is configured.
type nopCache struct{}

var _ Cache = nopCache{}

func (nopCache) Get(ctx context.Context, key string) (map[string]Quote, bool, error) {
	return nil, false, nil
}

func (nopCache) Set(ctx context.Context, key string, quotes map[string]Quote, ttl time.Duration) error {
	return nil
}
