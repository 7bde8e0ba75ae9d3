package social

import (
	"context"
	"time"

	"github.com/matzehuels/friendgraph/pkg/cache"
	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
	"github.com/matzehuels/friendgraph/pkg/observability"
)

// UserSummary is one row of a user listing.
type UserSummary struct {
	Name    string `json:"name"`
	Friends int    `json:"friends"`
}

// Stats summarizes the network.
type Stats struct {
	Users       int     `json:"users"`
	Friendships int     `json:"friendships"`
	Isolated    int     `json:"isolated"`
	MaxDegree   int     `json:"max_degree"`
	MostFriends string  `json:"most_friends,omitempty"`
	AvgDegree   float64 `json:"avg_degree"`
}

// Users lists every user with its friend count, sorted by name.
func (s *Service) Users(ctx context.Context) ([]UserSummary, error) {
	var out []UserSummary
	err := s.view(ctx, "list_users", func(g *network.Graph) error {
		out = make([]UserSummary, 0, g.UserCount())
		for _, u := range g.Users() {
			out = append(out, UserSummary{Name: u, Friends: g.Degree(u)})
		}
		return nil
	})
	return out, err
}

// Stats computes summary figures. Ties for the most friends go to the name
// that sorts first.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.view(ctx, "stats", func(g *network.Graph) error {
		st = Stats{Users: g.UserCount(), Friendships: g.FriendshipCount()}
		total := 0
		for _, u := range g.Users() {
			d := g.Degree(u)
			total += d
			if d == 0 {
				st.Isolated++
			}
			if d > st.MaxDegree {
				st.MaxDegree, st.MostFriends = d, u
			}
		}
		if st.Users > 0 {
			st.AvgDegree = float64(total) / float64(st.Users)
		}
		return nil
	})
	return st, err
}

// Check returns every invariant violation in the stored snapshot.
func (s *Service) Check(ctx context.Context) ([]*network.Violation, error) {
	var out []*network.Violation
	err := s.view(ctx, "check", func(g *network.Graph) error {
		out = g.Violations()
		return nil
	})
	return out, err
}

// Repair fixes every invariant violation and saves the result. It returns
// the number of fixes; nothing is saved when there is nothing to fix.
func (s *Service) Repair(ctx context.Context) (fixes int, err error) {
	start := time.Now()
	defer func() {
		observability.Operation().OnOperation(ctx, "repair", "", time.Since(start), err)
	}()

	unlock, err := s.lock(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	g, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if fixes = g.Repair(); fixes == 0 {
		return 0, nil
	}
	if err := s.save(ctx, g); err != nil {
		return 0, err
	}
	s.Logger.Info("repaired snapshot", "fixes", fixes)
	s.invalidate(ctx)
	return fixes, nil
}

// Snapshot returns the stored graph as it is.
func (s *Service) Snapshot(ctx context.Context) (*network.Graph, error) {
	var out *network.Graph
	err := s.view(ctx, "export", func(g *network.Graph) error {
		out = g
		return nil
	})
	return out, err
}

// Replace saves g over the stored snapshot. g must be consistent.
func (s *Service) Replace(ctx context.Context, g *network.Graph) (err error) {
	start := time.Now()
	defer func() {
		observability.Operation().OnOperation(ctx, "import", "", time.Since(start), err)
	}()

	if err := g.Validate(); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, err, "refusing to import inconsistent network")
	}

	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.save(ctx, g); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Invalidate drops cached query results, if the cache supports it.
func (s *Service) Invalidate(ctx context.Context) (int, error) {
	c, ok := s.Cache.(cache.Clearer)
	if !ok {
		return 0, nil
	}
	return c.Clear(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	n, err := s.Invalidate(ctx)
	if err != nil {
		s.Logger.Warn("clear query cache", "err", err)
		return
	}
	s.Logger.Debug("cleared query cache", "entries", n)
}
