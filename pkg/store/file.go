package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
	"github.com/matzehuels/friendgraph/pkg/snapshot"
)

// lockPollInterval is how often a blocked Lock retries the flock.
const lockPollInterval = 50 * time.Millisecond

// FileStore keeps the snapshot in a single text file.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a store for the snapshot file at path. The file does
// not need to exist; its directory is created on the first save.
func NewFileStore(path string) (*FileStore, error) {
	if err := ferrors.ValidatePath(path); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string { return s.path }

// Load reads and decodes the snapshot file. A missing file loads as an
// empty graph.
func (s *FileStore) Load(ctx context.Context) (*network.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return network.New(), nil
	}
	if err != nil {
		return nil, unavailable(err, "read %s", s.path)
	}

	g, err := snapshot.Unmarshal(data)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, err, "parse %s", s.path)
	}
	return g, nil
}

// Save writes g to a temporary file next to the snapshot and renames it
// over the snapshot, so readers see either the old or the new file. A
// symlinked snapshot is replaced at its target, and an existing file keeps
// its permissions.
func (s *FileStore) Save(ctx context.Context, g *network.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	target, mode, err := s.target()
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return unavailable(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+"-*.tmp")
	if err != nil {
		return unavailable(err, "create temp file")
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := snapshot.Encode(tmp, g); err != nil {
		tmp.Close()
		return unavailable(err, "write snapshot")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return unavailable(err, "sync snapshot")
	}
	if err := tmp.Close(); err != nil {
		return unavailable(err, "close snapshot")
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return unavailable(err, "chmod snapshot")
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return unavailable(err, "replace %s", target)
	}

	success = true
	return nil
}

// target resolves the file Save replaces and the mode it gets. A snapshot
// that does not exist yet is created with mode 0644.
func (s *FileStore) target() (string, os.FileMode, error) {
	path := s.path
	resolved, err := filepath.EvalSymlinks(path)
	switch {
	case err == nil:
		path = resolved
	case !os.IsNotExist(err):
		return "", 0, unavailable(err, "resolve %s", s.path)
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return path, 0644, nil
	case err != nil:
		return "", 0, unavailable(err, "stat %s", path)
	case info.IsDir():
		return "", 0, ferrors.New(ferrors.ErrCodeStoreUnavailable, "%s is a directory", path)
	}
	return path, info.Mode().Perm(), nil
}

// Lock takes an exclusive advisory lock on "<path>.lock", waiting until it
// is free or ctx is done. The lock file is left in place after unlocking.
func (s *FileStore) Lock(ctx context.Context) (func() error, error) {
	lockPath := s.path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, unavailable(err, "create directory for %s", lockPath)
	}
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, unavailable(err, "open %s", lockPath)
	}

	for {
		err := tryLockFile(f)
		if err == nil {
			break
		}
		if err != errWouldBlock {
			f.Close()
			return nil, unavailable(err, "lock %s", lockPath)
		}
		select {
		case <-ctx.Done():
			f.Close()
			return nil, ferrors.Wrap(ferrors.ErrCodeLocked, ctx.Err(), "%s is locked by another process", s.path)
		case <-time.After(lockPollInterval):
		}
	}

	var once sync.Once
	var unlockErr error
	return func() error {
		once.Do(func() {
			unlockErr = unlockFile(f)
			if err := f.Close(); unlockErr == nil {
				unlockErr = err
			}
		})
		return unlockErr
	}, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

var (
	_ Store  = (*FileStore)(nil)
	_ Locker = (*FileStore)(nil)
)
