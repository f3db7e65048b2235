package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machbazar/storefront/internal/cart/domain"
)

func exerciseStorage(t *testing.T, s domain.Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)

	require.NoError(t, s.Put(ctx, "abc", []byte(`{"items":[]}`)))
	data, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(data))

	require.NoError(t, s.Put(ctx, "abc", []byte(`{"items":null}`)))
	data, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":null}`, string(data))

	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)

	// deleting an absent key is not an error
	assert.NoError(t, s.Delete(ctx, "never-written"))
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	exerciseStorage(t, NewRedisStorage(rdb, time.Hour))
}

func TestRedisStorage_UsesPrefixAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	s := NewRedisStorage(rdb, time.Hour)
	require.NoError(t, s.Put(context.Background(), "abc", []byte("{}")))

	assert.True(t, mr.Exists(KeyPrefix+"abc"))
	assert.Equal(t, time.Hour, mr.TTL(KeyPrefix+"abc"))

	mr.FastForward(2 * time.Hour)
	_, err := s.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)
}

func TestBoltStorage(t *testing.T) {
	s, err := OpenBoltStorage(filepath.Join(t.TempDir(), "nested", "carts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	exerciseStorage(t, s)
}

func TestBoltStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carts.db")

	s, err := OpenBoltStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "abc", []byte(`{"total":900}`)))
	require.NoError(t, s.Close())

	s, err = OpenBoltStorage(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	data, err := s.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":900}`, string(data))
}
