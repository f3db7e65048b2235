package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*ResponseCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewResponseCache(rdb, time.Minute), mr
}

func TestMiddleware_CachesSuccessfulGets(t *testing.T) {
	c, mr := newCache(t)
	calls := 0
	h := c.Middleware(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	})

	first := httptest.NewRecorder()
	h(first, httptest.NewRequest(http.MethodGet, "/api/products?page=1&fishType=carp", nil))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	h(second, httptest.NewRequest(http.MethodGet, "/api/products?fishType=carp&page=1", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"success":true}`, second.Body.String())

	assert.Equal(t, 1, calls)
	assert.Len(t, mr.Keys(), 1)

	key := mr.Keys()[0]
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestMiddleware_SkipsErrorsAndWrites(t *testing.T) {
	c, mr := newCache(t)
	h := c.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/products", nil))

	assert.Empty(t, mr.Keys())
}

func TestMiddleware_RedisDownServesUncached(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	h := c.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestInvalidate(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set(KeyPrefix+"a", "1"))
	require.NoError(t, mr.Set(KeyPrefix+"b", "2"))
	require.NoError(t, mr.Set("machbazar:cart:abc", "{}"))

	c.Invalidate(context.Background())

	assert.Equal(t, []string{"machbazar:cart:abc"}, mr.Keys())
}

func TestMiddleware_InvalidateDuringRenderSkipsStore(t *testing.T) {
	c, mr := newCache(t)
	invalidate := true
	h := c.Middleware(func(w http.ResponseWriter, r *http.Request) {
		if invalidate {
			c.Invalidate(r.Context())
		}
		w.Write([]byte(`{"success":true,"stock":10}`))
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/products/rui", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"stock":10}`, rec.Body.String())
	assert.Empty(t, mr.Keys())

	invalidate = false
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products/rui", nil))
	assert.Len(t, mr.Keys(), 1)
}
