// Package config loads friendgraph settings from a TOML file and the
// environment.
//
// Sources are applied in order, later ones winning: built-in defaults, the
// config file, FRIENDGRAPH_* environment variables and finally command-line
// flags, which the CLI applies on top of the returned Config.
//
// A config file looks like:
//
//	[store]
//	backend = "redis"
//	lock_ttl = "30s"
//
//	[store.redis]
//	addr = "127.0.0.1:6379"
//
//	[cache]
//	enabled = true
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	timeout = "5s"
package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/friendgraph/pkg/cache"
	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/store"
)

const appName = "friendgraph"

// Environment variables read by [Load].
const (
	EnvConfig    = "FRIENDGRAPH_CONFIG"
	EnvData      = "FRIENDGRAPH_DATA"
	EnvBackend   = "FRIENDGRAPH_BACKEND"
	EnvRedisAddr = "FRIENDGRAPH_REDIS_ADDR"
	EnvMongoURI  = "FRIENDGRAPH_MONGO_URI"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the complete application configuration.
type Config struct {
	Store  store.Config `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig configures the query cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means the user cache directory.
	Dir string `toml:"dir"`

	// RedisPrefix namespaces cache keys when Backend is redis. The Redis
	// server is the one configured for the store.
	RedisPrefix string `toml:"redis_prefix"`

	TTL time.Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP wrapper.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	Timeout         time.Duration `toml:"timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Default returns the configuration used when no file or environment
// variable sets anything.
func Default() Config {
	return Config{
		Store: store.DefaultConfig(),
		Cache: CacheConfig{
			Enabled:     true,
			Backend:     CacheFile,
			RedisPrefix: "friendgraph:cache:",
			TTL:         cache.TTLQuery,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			Timeout:         5 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load builds the configuration. path is the --config flag value; when it
// is empty, $FRIENDGRAPH_CONFIG and then the default location are tried.
// A missing file at the default location yields the defaults, but a file
// named explicitly must exist. It returns the file actually read, or "".
func Load(path string) (Config, string, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, string, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if path = getenv(EnvConfig); path != "" {
			explicit = true
		} else {
			path = DefaultPath(getenv)
		}
	}

	used, err := decodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			used = ""
		} else {
			return Config{}, "", err
		}
	}

	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}

func decodeFile(path string, cfg *Config) (string, error) {
	if path == "" {
		return "", os.ErrNotExist
	}
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if err != nil {
		return "", ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return "", ferrors.New(ferrors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return path, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/friendgraph/config.toml, falling
// back to ~/.config. It returns "" if no home directory is known.
func DefaultPath(getenv func(string) string) string {
	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// ApplyEnv overrides settings from FRIENDGRAPH_* variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvData); v != "" {
		c.Store.Path = v
	}
	if v := getenv(EnvBackend); v != "" {
		c.Store.Backend = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Store.Redis.Addr = v
	}
	if v := getenv(EnvMongoURI); v != "" {
		c.Store.Mongo.URI = v
	}
}

// Validate checks the settings that are not checked when a backend opens.
func (c *Config) Validate() error {
	if !slices.Contains(store.Backends, c.Store.Backend) {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "unknown store backend %q (want one of %v)", c.Store.Backend, store.Backends)
	}
	if c.Cache.Backend != CacheFile && c.Cache.Backend != CacheRedis {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "unknown cache backend %q (want file or redis)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 || c.Server.Timeout < 0 || c.Store.LockTTL < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "durations cannot be negative")
	}
	return nil
}
