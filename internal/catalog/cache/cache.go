// Package cache keeps catalog GET responses in redis until the next catalog
// write.
package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/machbazar/storefront/pkg/logger"
)

// KeyPrefix namespaces cached catalog responses
const KeyPrefix = "machbazar:catalog:"

// DefaultTTL bounds staleness for writes that bypass Invalidate
const DefaultTTL = 5 * time.Minute

// ResponseCache caches successful JSON responses keyed by path and query.
// Redis failures never fail a request; they only skip the cache.
type ResponseCache struct {
	rdb *redis.Client
	ttl time.Duration
	// generation advances on every Invalidate; a response rendered across
	// an invalidation is not stored
	generation atomic.Uint64
}

// NewResponseCache creates a response cache; a non-positive ttl falls back
// to DefaultTTL
func NewResponseCache(rdb *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{rdb: rdb, ttl: ttl}
}

// Key derives the redis key for a request. Query parameters are normalized
// so that ordering does not create separate entries.
func Key(r *http.Request) string {
	sum := sha256.Sum256([]byte(r.URL.Path + "?" + r.URL.Query().Encode()))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// Middleware serves cached GET responses and stores fresh 200 responses
func (c *ResponseCache) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := Key(r)

		body, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		case !errors.Is(err, redis.Nil):
			logger.Warn(ctx).Err(err).Msg("Catalog cache read failed")
		}

		gen := c.generation.Load()
		rec := &bodyRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		w.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(rec, r)

		if rec.statusCode != http.StatusOK {
			return
		}
		if c.generation.Load() != gen {
			logger.Debug(ctx).Msg("Catalog cache invalidated while rendering, not storing")
			return
		}
		if err := c.rdb.Set(ctx, key, rec.body.Bytes(), c.ttl).Err(); err != nil {
			logger.Warn(ctx).Err(err).Msg("Catalog cache write failed")
		}
	}
}

// Invalidate drops every cached catalog response
func (c *ResponseCache) Invalidate(ctx context.Context) {
	c.generation.Add(1)
	var keys []string
	iter := c.rdb.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn(ctx).Err(err).Msg("Catalog cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx).Err(err).Msg("Catalog cache invalidation failed")
		return
	}
	logger.Debug(ctx).Int("keys", len(keys)).Msg("Catalog cache invalidated")
}

// bodyRecorder tees the response body so it can be cached
type bodyRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
