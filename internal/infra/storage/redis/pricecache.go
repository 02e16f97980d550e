package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gcavalcante/walletfolio/internal/pricing"

	redis "github.com/redis/go-redis/v9"
)

// priceCachePrefix is the base key prefix for cached quote sets.
const priceCachePrefix = "prices"

// priceCacheKey returns the Redis key for one resolved quote set.
//
// Format: "prices:batch:{key}"
func priceCacheKey(key string) string {
	return fmt.Sprintf("%s:batch:%s", priceCachePrefix, key)
}

// Get implements the pricing.Cache interface. A missing key is a cache
// miss, not an error.
func (c *client) Get(ctx context.Context, key string) (map[string]pricing.Quote, bool, error) {
	payload, err := c.conn.Get(ctx, priceCacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var quotes map[string]pricing.Quote
	if err := json.Unmarshal(payload, &quotes); err != nil {
		return nil, false, err
	}
	return quotes, true, nil
}

// Set implements the pricing.Cache interface, storing the quote set as
// JSON with the given TTL.
func (c *client) Set(ctx context.Context, key string, quotes map[string]pricing.Quote, ttl time.Duration) error {
	payload, err := json.Marshal(quotes)
	if err != nil {
		return err
	}

	return c.conn.Set(ctx, priceCacheKey(key), payload, ttl).Err()
}

// Compile-time assertion to ensure *client satisfies the pricing.Cache interface
var _ pricing.Cache = new(client)
