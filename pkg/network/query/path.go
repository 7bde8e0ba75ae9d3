package query

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/friendgraph/pkg/network"
)

// ErrNoPath is returned by [ShortestPath] and [Distance] when both users
// exist but no chain of friendships connects them.
var ErrNoPath = errors.New("no connection found")

// ShortestPath returns a shortest chain of friendships from start to end,
// both included. ShortestPath(g, x, x) returns [x].
//
// Returns an error wrapping network.ErrUnknownUser if either user is absent,
// or ErrNoPath if end is unreachable from start.
func ShortestPath(g *network.Graph, start, end string) ([]string, error) {
	if err := requireUsers(g, start, end); err != nil {
		return nil, err
	}

	queue := [][]string{{start}}
	visited := map[string]bool{start: true}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		last := path[len(path)-1]
		if last == end {
			return path, nil
		}
		for _, f := range g.Neighbors(last) {
			if visited[f] {
				continue
			}
			visited[f] = true
			next := make([]string, len(path), len(path)+1)
			copy(next, path)
			queue = append(queue, append(next, f))
		}
	}
	return nil, ErrNoPath
}

// Distance returns the number of friendships on a shortest path between a
// and b. Errors are those of [ShortestPath].
func Distance(g *network.Graph, a, b string) (int, error) {
	path, err := ShortestPath(g, a, b)
	if err != nil {
		return 0, err
	}
	return len(path) - 1, nil
}

// MutualFriends returns the friends of a that are also friends of b, in a's
// stored order. Returns an error wrapping network.ErrUnknownUser if either
// user is absent.
func MutualFriends(g *network.Graph, a, b string) ([]string, error) {
	if err := requireUsers(g, a, b); err != nil {
		return nil, err
	}
	out := []string{}
	for _, f := range g.Neighbors(a) {
		if f != b && slices.Contains(g.Neighbors(b), f) {
			out = append(out, f)
		}
	}
	return out, nil
}

func requireUsers(g *network.Graph, names ...string) error {
	for _, n := range names {
		if !g.HasUser(n) {
			return fmt.Errorf("%w: %s", network.ErrUnknownUser, n)
		}
	}
	return nil
}
