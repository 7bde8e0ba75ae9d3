package social

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/friendgraph/pkg/cache"
	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
	"github.com/matzehuels/friendgraph/pkg/observability"
	"github.com/matzehuels/friendgraph/pkg/store"
)

// Service runs every operation against a fresh snapshot from its store.
//
// Mutations are serialized: within the process by a mutex, and across
// processes by the store's lock when the store implements [store.Locker].
// Queries share a read lock and never write.
//
// Multiple goroutines can safely use the same Service.
type Service struct {
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Backend labels store events for hooks and logs.
	Backend string

	mu sync.RWMutex
}

// NewService creates a service over st.
// If c is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
func NewService(st store.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Service {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		Store:   st,
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Backend: "store",
	}
}

// =============================================================================
// Mutators
// =============================================================================

// AddUser adds name with no friends. Reports UserAdded or UserExists; the
// snapshot is saved either way.
func (s *Service) AddUser(ctx context.Context, name string) (Outcome, error) {
	if err := ferrors.ValidateUserName(name); err != nil {
		return Outcome{}, err
	}
	return s.mutate(ctx, "add_user", func(g *network.Graph) (Outcome, bool) {
		if err := g.AddUser(name); errors.Is(err, network.ErrDuplicateUser) {
			return Outcome{Kind: UserExists, Users: []string{name}}, true
		}
		return Outcome{Kind: UserAdded, Users: []string{name}}, true
	})
}

// RemoveUser removes name and every friendship it has. Reports UserRemoved,
// or UserNotFound without saving anything.
func (s *Service) RemoveUser(ctx context.Context, name string) (Outcome, error) {
	if err := ferrors.ValidateUserName(name); err != nil {
		return Outcome{}, err
	}
	return s.mutate(ctx, "remove_user", func(g *network.Graph) (Outcome, bool) {
		if err := g.RemoveUser(name); err != nil {
			return Outcome{Kind: UserNotFound, Users: []string{name}}, false
		}
		return Outcome{Kind: UserRemoved, Users: []string{name}}, true
	})
}

// AddFriendship befriends a and b. Reports Befriended, AlreadyFriends,
// SelfFriendship or UsersNotFound; the snapshot is saved in every case.
func (s *Service) AddFriendship(ctx context.Context, a, b string) (Outcome, error) {
	if err := ferrors.ValidateUserNames(a, b); err != nil {
		return Outcome{}, err
	}
	return s.mutate(ctx, "add_friend", func(g *network.Graph) (Outcome, bool) {
		users := []string{a, b}
		switch err := g.Befriend(a, b); {
		case errors.Is(err, network.ErrUnknownUser):
			return Outcome{Kind: UsersNotFound, Users: users}, true
		case errors.Is(err, network.ErrSelfFriendship):
			return Outcome{Kind: SelfFriendship, Users: users}, true
		case errors.Is(err, network.ErrAlreadyFriends):
			return Outcome{Kind: AlreadyFriends, Users: users}, true
		default:
			return Outcome{Kind: Befriended, Users: users}, true
		}
	})
}

// RemoveFriendship ends the friendship of a and b. Reports Unfriended,
// NotFriends or UsersNotFound; the snapshot is saved in every case.
func (s *Service) RemoveFriendship(ctx context.Context, a, b string) (Outcome, error) {
	if err := ferrors.ValidateUserNames(a, b); err != nil {
		return Outcome{}, err
	}
	return s.mutate(ctx, "remove_friend", func(g *network.Graph) (Outcome, bool) {
		users := []string{a, b}
		switch err := g.Unfriend(a, b); {
		case errors.Is(err, network.ErrUnknownUser):
			return Outcome{Kind: UsersNotFound, Users: users}, true
		case errors.Is(err, network.ErrNotFriends):
			return Outcome{Kind: NotFriends, Users: users}, true
		default:
			return Outcome{Kind: Unfriended, Users: users}, true
		}
	})
}

// =============================================================================
// Transactions
// =============================================================================

// mutate runs one load, apply, save transaction under the write locks.
// fn reports the outcome and whether the snapshot must be saved.
func (s *Service) mutate(ctx context.Context, op string, fn func(*network.Graph) (Outcome, bool)) (out Outcome, err error) {
	start := time.Now()
	defer func() {
		observability.Operation().OnOperation(ctx, op, string(out.Kind), time.Since(start), err)
	}()

	unlock, err := s.lock(ctx)
	if err != nil {
		return Outcome{}, err
	}
	defer unlock()

	g, err := s.load(ctx)
	if err != nil {
		return Outcome{}, err
	}

	out, persist := fn(g)
	if persist {
		if err := s.save(ctx, g); err != nil {
			return Outcome{}, err
		}
	}

	s.Logger.Debug("operation done", "op", op, "outcome", out.Kind, "saved", persist)
	return out, nil
}

// view loads a fresh snapshot under the read lock and passes it to fn.
func (s *Service) view(ctx context.Context, op string, fn func(*network.Graph) error) (err error) {
	start := time.Now()
	defer func() {
		observability.Operation().OnOperation(ctx, op, "", time.Since(start), err)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.loadOrEmpty(ctx)
	if err != nil {
		return err
	}
	return fn(g)
}

// lock takes the in-process write lock and then the store lock, if any.
func (s *Service) lock(ctx context.Context) (func(), error) {
	s.mu.Lock()
	locker, ok := s.Store.(store.Locker)
	if !ok {
		return s.mu.Unlock, nil
	}
	release, err := locker.Lock(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return func() {
		if err := release(); err != nil {
			s.Logger.Warn("release store lock", "err", err)
		}
		s.mu.Unlock()
	}, nil
}

// load reads the snapshot for a mutation. Any failure aborts the
// operation, so a store that could not be read is never overwritten.
func (s *Service) load(ctx context.Context) (*network.Graph, error) {
	start := time.Now()
	g, err := s.Store.Load(ctx)
	if err != nil {
		observability.Store().OnLoad(ctx, s.Backend, 0, time.Since(start), err)
		return nil, err
	}
	observability.Store().OnLoad(ctx, s.Backend, g.UserCount(), time.Since(start), nil)
	s.Logger.Debug("loaded snapshot", "backend", s.Backend, "users", g.UserCount(), "duration", time.Since(start))
	return g, nil
}

// loadOrEmpty reads the snapshot for a query. An unreachable store reads
// as an empty network with a warning; a corrupt snapshot is an error.
func (s *Service) loadOrEmpty(ctx context.Context) (*network.Graph, error) {
	g, err := s.load(ctx)
	if ferrors.Is(err, ferrors.ErrCodeStoreUnavailable) {
		s.Logger.Warn("store unavailable, reading an empty network", "backend", s.Backend, "err", err)
		return network.New(), nil
	}
	return g, err
}

func (s *Service) save(ctx context.Context, g *network.Graph) error {
	start := time.Now()
	err := s.Store.Save(ctx, g)
	observability.Store().OnSave(ctx, s.Backend, g.UserCount(), time.Since(start), err)
	if err != nil {
		return err
	}
	s.Logger.Debug("saved snapshot", "backend", s.Backend, "users", g.UserCount(), "duration", time.Since(start))
	return nil
}
