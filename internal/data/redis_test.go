package data

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func TestRedisStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	srv, client := newTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	res := sampleResult(t)

	id, err := store.Save(ctx, res)
	require.NoError(t, err)
	assert.True(t, srv.Exists(redisKeyPrefix+id))
	assert.Equal(t, time.Minute, srv.TTL(redisKeyPrefix+id))

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.Rows, got.Rows)
	assert.Equal(t, res.Summary, got.Summary)
	assert.Equal(t, res.Rounding, got.Rounding)
	assert.Equal(t, res.Allocation, got.Allocation)
}

func TestRedisStore_Expired(t *testing.T) {
	ctx := context.Background()
	srv, client := newTestRedis(t)
	store := NewRedisStore(client, time.Minute)

	id, err := store.Save(ctx, sampleResult(t))
	require.NoError(t, err)

	srv.FastForward(2 * time.Minute)
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	srv, client := newTestRedis(t)
	store := NewRedisStore(client, 0)

	require.NoError(t, srv.Set(redisKeyPrefix+"bad", "not json"))
	_, err := store.Load(ctx, "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrResultNotFound)
}
