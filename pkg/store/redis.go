package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/friendgraph/pkg/cache"
	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
)

// RedisConfig configures [RedisStore].
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`

	// Key names the hash holding the network. The lock lives at Key+":lock".
	Key string `toml:"key"`
}

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps the network in one Redis hash: field = user name,
// value = the space-separated friend sequence.
type RedisStore struct {
	client  *redis.Client
	key     string
	lockTTL time.Duration
}

// NewRedisStore connects to Redis and checks the connection, retrying
// transient failures.
func NewRedisStore(ctx context.Context, cfg RedisConfig, lockTTL time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	err := cache.RetryWithBackoff(ctx, func() error {
		return cache.Retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		client.Close()
		return nil, unavailable(err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisStoreFromClient(client, cfg.Key, lockTTL), nil
}

// NewRedisStoreFromClient wraps an existing client. The store takes
// ownership of client and closes it in Close.
func NewRedisStoreFromClient(client *redis.Client, key string, lockTTL time.Duration) *RedisStore {
	if key == "" {
		key = DefaultConfig().Redis.Key
	}
	if lockTTL <= 0 {
		lockTTL = DefaultConfig().LockTTL
	}
	return &RedisStore{client: client, key: key, lockTTL: lockTTL}
}

// Load reads every field of the hash, retrying transient failures. A
// missing hash loads as an empty graph.
func (s *RedisStore) Load(ctx context.Context) (*network.Graph, error) {
	var fields map[string]string
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		fields, err = s.client.HGetAll(ctx, s.key).Result()
		return cache.Retryable(err)
	})
	if err != nil {
		return nil, unavailable(err, "read %s", s.key)
	}

	g := network.New()
	for user, friends := range fields {
		if err := ferrors.ValidateUserName(user); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, err, "field %q of %s", user, s.key)
		}
		g.SetFriends(user, strings.Fields(friends))
	}
	return g, nil
}

// Save replaces the hash in a single MULTI/EXEC transaction.
func (s *RedisStore) Save(ctx context.Context, g *network.Graph) error {
	users := g.Users()
	values := make([]any, 0, 2*len(users))
	for _, u := range users {
		values = append(values, u, strings.Join(g.Neighbors(u), " "))
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.HSet(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return unavailable(err, "write %s", s.key)
	}
	return nil
}

// Lock takes a lease on Key+":lock" with SET NX. The lease expires after
// the configured TTL even if the holder dies.
func (s *RedisStore) Lock(ctx context.Context) (func() error, error) {
	lockKey := s.key + ":lock"
	token := uuid.NewString()

	for {
		ok, err := s.client.SetNX(ctx, lockKey, token, s.lockTTL).Result()
		if err != nil {
			return nil, unavailable(err, "lock %s", lockKey)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ferrors.Wrap(ferrors.ErrCodeLocked, ctx.Err(), "%s is locked by another client", s.key)
		case <-time.After(lockPollInterval):
		}
	}

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, s.client, []string{lockKey}, token).Err(); err != nil {
			return unavailable(err, "unlock %s", lockKey)
		}
		return nil
	}, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var (
	_ Store  = (*RedisStore)(nil)
	_ Locker = (*RedisStore)(nil)
)
