package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v4"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
)

// BadgerConfig configures [BadgerStore].
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string `toml:"path"`

	// InMemory keeps the database in memory only.
	InMemory bool `toml:"in_memory"`

	// SyncWrites fsyncs every commit.
	SyncWrites bool `toml:"sync_writes"`
}

const badgerUserPrefix = "user/"

// BadgerStore keeps one key per user, "user/<name>", holding the friend
// sequence as a JSON array.
type BadgerStore struct {
	db *badger.DB
}

// badgerLogger routes BadgerDB's own logging to a charmbracelet logger.
// Badger reports routine compaction at info level, so that goes to debug.
type badgerLogger struct {
	logger *log.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// NewBadgerStore opens (or creates) a BadgerDB database.
func NewBadgerStore(cfg BadgerConfig, logger *log.Logger) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ferrors.ValidatePath(cfg.Path); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, unavailable(err, "create database directory %s", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger.WithPrefix("badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, unavailable(err, "open badger database")
	}
	return &BadgerStore{db: db}, nil
}

// Load reads every user key. An empty database loads as an empty graph.
func (s *BadgerStore) Load(ctx context.Context) (*network.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g := network.New()
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(badgerUserPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			name := strings.TrimPrefix(string(item.Key()), badgerUserPrefix)
			err := item.Value(func(val []byte) error {
				var friends []string
				if err := json.Unmarshal(val, &friends); err != nil {
					return ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, err, "user %q", name)
				}
				g.SetFriends(name, friends)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if ferrors.Is(err, ferrors.ErrCodeInvalidSnapshot) {
			return nil, err
		}
		return nil, unavailable(err, "read badger database")
	}
	return g, nil
}

// Save replaces every user key in one read-write transaction. Keys of
// users that no longer exist are deleted.
func (s *BadgerStore) Save(ctx context.Context, g *network.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := []byte(badgerUserPrefix)
		var stale [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if !g.HasUser(strings.TrimPrefix(string(key), badgerUserPrefix)) {
				stale = append(stale, key)
			}
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		for _, u := range g.Users() {
			val, err := json.Marshal(g.Friends(u))
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(badgerUserPrefix+u), val); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return unavailable(err, "write badger database")
	}
	return nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)
