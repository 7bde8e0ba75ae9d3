//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
)

func redisAddr() string {
	if addr := os.Getenv("FRIENDGRAPH_TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "127.0.0.1:6379"
}

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "friendgraph-test:" + uuid.NewString()
	s, err := NewRedisStore(ctx, RedisConfig{Addr: redisAddr(), Key: key}, 2*time.Second)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() {
		s.client.Del(context.Background(), key, key+":lock")
		s.Close()
	})
	return s
}

func TestRedisStore(t *testing.T) {
	testStoreContract(t, newTestRedisStore(t))
}

func TestRedisStoreHashLayout(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)
	require.NoError(t, s.Save(ctx, testGraph(t)))

	fields, err := s.client.HGetAll(ctx, s.key).Result()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"alice": "carol bob",
		"bob":   "alice",
		"carol": "alice",
		"dave":  "",
	}, fields)
}

func TestRedisStoreLock(t *testing.T) {
	s := newTestRedisStore(t)

	unlock, err := s.Lock(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err = s.Lock(ctx)
	assert.True(t, ferrors.Is(err, ferrors.ErrCodeLocked), "got %v", err)

	require.NoError(t, unlock())

	unlock, err = s.Lock(context.Background())
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestRedisStoreLockExpires(t *testing.T) {
	s := newTestRedisStore(t)

	// Never released: the lease runs out after the TTL.
	_, err := s.Lock(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	unlock, err := s.Lock(ctx)
	require.NoError(t, err)
	require.NoError(t, unlock())
}
