package store

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/friendgraph/pkg/network"
	"github.com/matzehuels/friendgraph/pkg/snapshot"
)

// MemoryStore keeps the encoded snapshot in memory. Loads decode a fresh
// graph each time, so callers never share state with the store.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int

	// SaveErr, when set, is returned by every Save.
	SaveErr error
	// LoadErr, when set, is returned by every Load.
	LoadErr error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreFrom returns a store whose snapshot is the encoding of g.
func NewMemoryStoreFrom(g *network.Graph) *MemoryStore {
	return &MemoryStore{data: snapshot.Marshal(g)}
}

// Load decodes the stored snapshot.
func (s *MemoryStore) Load(ctx context.Context) (*network.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.data == nil {
		return network.New(), nil
	}
	return snapshot.Unmarshal(s.data)
}

// Save encodes g and replaces the stored snapshot.
func (s *MemoryStore) Save(ctx context.Context, g *network.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.data = snapshot.Marshal(g)
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Bytes returns a copy of the stored snapshot encoding.
func (s *MemoryStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data)
}

// SetBytes replaces the stored snapshot with raw bytes, which need not be
// valid. It does not count as a save.
func (s *MemoryStore) SetBytes(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = slices.Clone(b)
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
