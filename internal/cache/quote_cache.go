package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segyhp/cuota-engine/pkg/cuota"

	"github.com/redis/go-redis/v9"
)

const keyQuote = "cuota:quote:"

// QuoteCache caches cuota quotes in Redis keyed by the normalised date span.
type QuoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewQuoteCache returns a new QuoteCache.
func NewQuoteCache(rdb *redis.Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{rdb: rdb, ttl: ttl}
}

// QuoteKey builds the cache key for a span. Absent bounds are encoded as "-".
func QuoteKey(start, end *time.Time) string {
	return keyQuote + keyPart(start) + ":" + keyPart(end)
}

func keyPart(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// GetQuote returns the cached quote, or nil on a miss.
func (c *QuoteCache) GetQuote(ctx context.Context, start, end *time.Time) (*cuota.Info, error) {
	b, err := c.rdb.Get(ctx, QuoteKey(start, end)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var info cuota.Info
	if err := json.Unmarshal(b, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SetQuote stores a quote in cache.
func (c *QuoteCache) SetQuote(ctx context.Context, start, end *time.Time, info cuota.Info) error {
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, QuoteKey(start, end), b, c.ttl).Err()
}
