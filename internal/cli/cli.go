// Package cli implements the friendgraph command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/friendgraph/internal/config"
	"github.com/matzehuels/friendgraph/pkg/cache"
	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/social"
	"github.com/matzehuels/friendgraph/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "friendgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Exit statuses returned by [CLI.Run].
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitInvalid  = 2
	ExitNotFound = 3
	ExitCanceled = 130
)

// Fixed invocation messages.
const (
	msgNoCommand      = "No command provided."
	msgInvalidCommand = "Invalid command or arguments."
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output; Err receives failure messages.
	Out io.Writer
	Err io.Writer

	flags    globalFlags
	cfg      config.Config
	notFound bool
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	config  string
	data    string
	backend string
	noCache bool
	strict  bool
	verbose bool
}

// New creates a new CLI writing output to out and logs to errw.
func New(out, errw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errw, level),
		Out:    out,
		Err:    errw,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Run executes one command line and returns the process exit status.
//
// Reported outcomes, including unknown users and invalid invocations, exit
// 0 unless --strict is set. Invalid user names count as invalid
// invocations. Store and other failures exit 1.
func (c *CLI) Run(ctx context.Context, args []string) int {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(c.Out)
	root.SetErr(c.Err)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		if c.notFound && c.flags.strict {
			return ExitNotFound
		}
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case ferrors.Is(err, ferrors.ErrCodeInvalidInvocation), ferrors.Is(err, ferrors.ErrCodeInvalidName):
		if !errors.Is(err, errNoCommand) {
			c.printLine(msgInvalidCommand)
		}
		c.Logger.Debug("invalid invocation", "err", err)
		if c.flags.strict {
			return ExitInvalid
		}
		return ExitOK
	default:
		c.printError("%s", ferrors.UserMessage(err))
		c.Logger.Debug("command failed", "err", err)
		return ExitFailure
	}
}

// errNoCommand is returned when no command is given at all.
var errNoCommand = ferrors.New(ferrors.ErrCodeInvalidInvocation, "no command")

// invalid returns an error that makes Run report an invalid invocation.
func invalid(format string, args ...any) error {
	return ferrors.New(ferrors.ErrCodeInvalidInvocation, format, args...)
}

// =============================================================================
// Service Factory
// =============================================================================

// openService opens the configured store and cache and returns an engine
// over them. The returned close function releases both.
func (c *CLI) openService(ctx context.Context) (*social.Service, func(), error) {
	st, err := store.Open(ctx, c.cfg.Store, c.Logger)
	if err != nil {
		return nil, nil, err
	}

	qc, closeCache := c.newCache()
	svc := social.NewService(st, qc, nil, c.Logger)
	svc.Backend = c.cfg.Store.Backend

	return svc, func() {
		closeCache()
		if err := st.Close(); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}, nil
}

// newCache builds the query cache. Any problem setting it up disables
// caching instead of failing the command.
func (c *CLI) newCache() (cache.Cache, func()) {
	noop := func() {}
	if c.flags.noCache || !c.cfg.Cache.Enabled {
		return cache.NewNullCache(), noop
	}

	if c.cfg.Cache.Backend == config.CacheRedis {
		rc := c.cfg.Store.Redis
		client := redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		return cache.NewRedisCache(client, c.cfg.Cache.RedisPrefix), func() { _ = client.Close() }
	}

	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), noop
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("file cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), noop
	}
	return fc, noop
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/friendgraph/).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
