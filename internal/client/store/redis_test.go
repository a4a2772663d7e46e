package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, namespace string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, namespace)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		s, _ := setupTestRedis(t, "device-1")
		return s
	})
}

func TestRedisStore_KeysAreNamespaced(t *testing.T) {
	s, mr := setupTestRedis(t, "laptop")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyToken, "tok"))

	got, err := mr.Get("eduroot:laptop:token")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
	assert.Zero(t, mr.TTL("eduroot:laptop:token"), "no expiry")
}

func TestRedisStore_EmptyNamespaceDefaults(t *testing.T) {
	s, mr := setupTestRedis(t, "")
	require.NoError(t, s.Set(context.Background(), KeyLanguage, "hi"))
	assert.True(t, mr.Exists("eduroot:default:language"))
}

func TestRedisStore_ClearLeavesOtherNamespaces(t *testing.T) {
	s, mr := setupTestRedis(t, "a")
	ctx := context.Background()

	require.NoError(t, mr.Set("eduroot:b:token", "other"))
	require.NoError(t, s.Set(ctx, KeyToken, "mine"))

	require.NoError(t, s.Clear(ctx))

	assert.False(t, mr.Exists("eduroot:a:token"))
	assert.True(t, mr.Exists("eduroot:b:token"))
}

func TestRedisStore_ErrorsWrapped(t *testing.T) {
	s, mr := setupTestRedis(t, "x")
	ctx := context.Background()
	mr.Close()

	_, _, err := s.Get(ctx, "k")
	require.ErrorContains(t, err, "redis get kv[k] failed")

	err = s.Set(ctx, "k", "v")
	require.ErrorContains(t, err, "redis set kv[k] failed")
}
