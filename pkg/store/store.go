package store

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
)

// Store persists the whole friendship graph as one snapshot.
type Store interface {
	// Load reads the current snapshot. A store without a snapshot yields an
	// empty graph and no error.
	Load(ctx context.Context) (*network.Graph, error)

	// Save replaces the stored snapshot with g in full.
	Save(ctx context.Context, g *network.Graph) error

	// Close releases any resources held by the store.
	Close() error
}

// Locker is implemented by stores that can be shared between processes.
// Lock blocks until the store-wide lock is held or ctx is done, and returns
// the function that releases it.
type Locker interface {
	Lock(ctx context.Context) (unlock func() error, err error)
}

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendBadger = "badger"
)

// Backends lists every supported backend name.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendBadger}

// Config selects and configures a backend.
type Config struct {
	Backend string `toml:"backend"`

	// Path is the snapshot file for the file backend and the database
	// directory for the badger backend.
	Path string `toml:"path"`

	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Badger BadgerConfig `toml:"badger"`

	// LockTTL bounds how long a distributed lock is held before it expires.
	LockTTL time.Duration `toml:"lock_ttl"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Backend: BackendFile,
		Path:    "network_data.txt",
		Redis:   RedisConfig{Addr: "127.0.0.1:6379", Key: "friendgraph:network"},
		Mongo:   MongoConfig{URI: "mongodb://127.0.0.1:27017", Database: "friendgraph", Collection: "users"},
		LockTTL: 30 * time.Second,
	}
}

// Open creates the store selected by cfg.Backend.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger.Debug("opening store", "backend", cfg.Backend)

	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Path)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, cfg.Redis, cfg.LockTTL)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.Mongo)
	case BackendBadger:
		bc := cfg.Badger
		if bc.Path == "" {
			bc.Path = cfg.Path
		}
		return NewBadgerStore(bc, logger)
	default:
		return nil, ferrors.New(ferrors.ErrCodeUnsupported, "unknown store backend %q (want one of %v)", cfg.Backend, Backends)
	}
}

// unavailable wraps a backend failure with the STORE_UNAVAILABLE code.
func unavailable(err error, format string, args ...any) error {
	return ferrors.Wrap(ferrors.ErrCodeStoreUnavailable, err, format, args...)
}
