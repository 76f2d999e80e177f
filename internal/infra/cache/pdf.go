package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces cached PDFs inside the Redis database.
const keyPrefix = "pdfcache:"

// defaultTTL applies when the configured TTL is not positive.
const defaultTTL = time.Minute

// opTimeout bounds every Redis round trip so a slow cache never stalls a conversion.
const opTimeout = time.Second

// PDFCache stores relayed PDFs in Redis. A nil *PDFCache is a valid, always
// missing cache.
type PDFCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a cache backed by rdb, or nil when rdb is nil.
func New(rdb *redis.Client, ttl time.Duration) *PDFCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PDFCache{rdb: rdb, ttl: ttl}
}

// Key derives a cache key from the parameters that influence the rendered PDF.
func Key(url, pageSize, orientation string) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write([]byte{0})
	h.Write([]byte(pageSize))
	h.Write([]byte{0})
	h.Write([]byte(orientation))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached PDF for key. A miss is (nil, false, nil).
func (c *PDFCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores data under key with the cache TTL.
func (c *PDFCache) Set(ctx context.Context, key string, data []byte) error {
	if c == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// TTL returns the expiry applied to new entries.
func (c *PDFCache) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}
