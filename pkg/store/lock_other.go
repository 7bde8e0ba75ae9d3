//go:build !unix

package store

import (
	"errors"
	"os"
	"sync"
)

var errWouldBlock = errors.New("lock held elsewhere")

// Without flock(2) the lock only excludes other stores in this process.
var (
	heldMu sync.Mutex
	held   = make(map[string]bool)
)

func tryLockFile(f *os.File) error {
	heldMu.Lock()
	defer heldMu.Unlock()
	if held[f.Name()] {
		return errWouldBlock
	}
	held[f.Name()] = true
	return nil
}

func unlockFile(f *os.File) error {
	heldMu.Lock()
	defer heldMu.Unlock()
	delete(held, f.Name())
	return nil
}
