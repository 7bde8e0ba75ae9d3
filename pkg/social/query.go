package social

import (
	"context"
	"errors"

	"github.com/matzehuels/friendgraph/pkg/cache"
	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
	"github.com/matzehuels/friendgraph/pkg/network/query"
	"github.com/matzehuels/friendgraph/pkg/snapshot"
)

// ShowFriends returns name's friends in stored order. An absent user is an
// error coded USER_NOT_FOUND.
func (s *Service) ShowFriends(ctx context.Context, name string) ([]string, error) {
	if err := ferrors.ValidateUserName(name); err != nil {
		return nil, err
	}
	var friends []string
	err := s.view(ctx, "show_friends", func(g *network.Graph) error {
		if !g.HasUser(name) {
			return notFound(name)
		}
		friends = g.Friends(name)
		return nil
	})
	return friends, err
}

// pathResult is the cached form of a shortest path query.
type pathResult struct {
	Path []string `json:"path"`
}

// ShortestPath returns a shortest chain of friendships from start to end.
// Returns an error coded USER_NOT_FOUND if either user is absent, or
// query.ErrNoPath if they are not connected.
func (s *Service) ShortestPath(ctx context.Context, start, end string) ([]string, error) {
	if err := ferrors.ValidateUserNames(start, end); err != nil {
		return nil, err
	}
	var path []string
	err := s.view(ctx, "shortest_path", func(g *network.Graph) error {
		res, err := cached(ctx, s, g, "shortest_path", []string{start, end}, func() (pathResult, error) {
			p, err := query.ShortestPath(g, start, end)
			if errors.Is(err, query.ErrNoPath) {
				return pathResult{}, nil
			}
			return pathResult{Path: p}, err
		})
		if err != nil {
			return mapQueryErr(err)
		}
		if len(res.Path) == 0 {
			return query.ErrNoPath
		}
		path = res.Path
		return nil
	})
	return path, err
}

// Recommend returns friend suggestions for name, ordered by mutual friend
// count descending and then by name. Returns an error coded USER_NOT_FOUND
// if name is absent.
func (s *Service) Recommend(ctx context.Context, name string) ([]query.Suggestion, error) {
	if err := ferrors.ValidateUserName(name); err != nil {
		return nil, err
	}
	var out []query.Suggestion
	err := s.view(ctx, "recommend", func(g *network.Graph) error {
		res, err := cached(ctx, s, g, "recommend", []string{name}, func() ([]query.Suggestion, error) {
			return query.Recommend(g, name)
		})
		if err != nil {
			return mapQueryErr(err)
		}
		out = res
		return nil
	})
	return out, err
}

// MutualFriends returns the friends a and b have in common, in a's stored
// order. Returns an error coded USER_NOT_FOUND if either user is absent.
func (s *Service) MutualFriends(ctx context.Context, a, b string) ([]string, error) {
	if err := ferrors.ValidateUserNames(a, b); err != nil {
		return nil, err
	}
	var out []string
	err := s.view(ctx, "mutual_friends", func(g *network.Graph) error {
		res, err := cached(ctx, s, g, "mutual_friends", []string{a, b}, func() ([]string, error) {
			return query.MutualFriends(g, a, b)
		})
		if err != nil {
			return mapQueryErr(err)
		}
		out = res
		return nil
	})
	return out, err
}

// cached returns the result of compute for op and args on g, consulting the
// cache first. Errors from compute are never cached; cache failures are
// logged and otherwise ignored.
func cached[T any](ctx context.Context, s *Service, g *network.Graph, op string, args []string, compute func() (T, error)) (T, error) {
	key := s.Keyer.QueryKey(cache.Hash(snapshot.Marshal(g)), op, args...)

	var v T
	hit, err := cache.GetJSON(ctx, s.Cache, op, key, &v)
	if err != nil {
		s.Logger.Warn("cache read failed", "op", op, "err", err)
	} else if hit {
		s.Logger.Debug("cache hit", "op", op)
		return v, nil
	}

	v, err = compute()
	if err != nil {
		return v, err
	}
	if err := cache.SetJSON(ctx, s.Cache, op, key, v, cache.TTLQuery); err != nil {
		s.Logger.Warn("cache write failed", "op", op, "err", err)
	}
	return v, nil
}

// mapQueryErr codes the unknown-user error of package query.
func mapQueryErr(err error) error {
	if errors.Is(err, network.ErrUnknownUser) {
		return ferrors.Wrap(ferrors.ErrCodeUserNotFound, err, "user not found")
	}
	return err
}

func notFound(name string) error {
	return ferrors.Wrap(ferrors.ErrCodeUserNotFound, network.ErrUnknownUser, "user %s not found", name)
}
