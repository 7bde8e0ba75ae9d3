package network

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidUserName is returned by [Graph.AddUser] when the name is empty.
	ErrInvalidUserName = errors.New("user name must not be empty")

	// ErrDuplicateUser is returned by [Graph.AddUser] when the name is
	// already a key of the graph.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrUnknownUser is returned when an operation references a name that
	// is not a key of the graph.
	ErrUnknownUser = errors.New("unknown user")

	// ErrSelfFriendship is returned by [Graph.Befriend] when both names are
	// equal, and reported by [Graph.Validate] for self entries.
	ErrSelfFriendship = errors.New("user cannot befriend themselves")

	// ErrAlreadyFriends is returned by [Graph.Befriend] when the second
	// user already appears in the first user's friend sequence.
	ErrAlreadyFriends = errors.New("users are already friends")

	// ErrNotFriends is returned by [Graph.Unfriend] when the second user
	// does not appear in the first user's friend sequence.
	ErrNotFriends = errors.New("users are not friends")
)

// Graph is an undirected social graph stored as adjacency sequences.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	friends map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{friends: make(map[string][]string)}
}

// AddUser inserts name with an empty friend sequence.
// Returns ErrInvalidUserName for an empty name or ErrDuplicateUser if the
// name is already present. The graph is unchanged on error.
func (g *Graph) AddUser(name string) error {
	if name == "" {
		return ErrInvalidUserName
	}
	if _, ok := g.friends[name]; ok {
		return ErrDuplicateUser
	}
	g.friends[name] = []string{}
	return nil
}

// RemoveUser deletes name and removes it from every other friend sequence.
// The scan covers every user, not only the removed user's friends, so a
// one-sided entry left by a damaged snapshot is removed too.
// Returns ErrUnknownUser if name is absent.
func (g *Graph) RemoveUser(name string) error {
	if _, ok := g.friends[name]; !ok {
		return ErrUnknownUser
	}
	for id, list := range g.friends {
		g.friends[id] = slices.DeleteFunc(list, func(f string) bool { return f == name })
	}
	delete(g.friends, name)
	return nil
}

// Befriend creates the friendship a-b by appending b to a's sequence and a
// to b's sequence.
//
// Both users must exist (ErrUnknownUser) and differ (ErrSelfFriendship).
// The existing-friendship check looks at a's sequence only and returns
// ErrAlreadyFriends. The graph is unchanged on error.
func (g *Graph) Befriend(a, b string) error {
	if !g.HasUser(a) || !g.HasUser(b) {
		return ErrUnknownUser
	}
	if a == b {
		return ErrSelfFriendship
	}
	if g.AreFriends(a, b) {
		return ErrAlreadyFriends
	}
	g.friends[a] = append(g.friends[a], b)
	g.friends[b] = append(g.friends[b], a)
	return nil
}

// Unfriend removes the friendship a-b from both sequences.
// Returns ErrUnknownUser if either user is absent, or ErrNotFriends if b is
// not in a's sequence. The graph is unchanged on error.
func (g *Graph) Unfriend(a, b string) error {
	if !g.HasUser(a) || !g.HasUser(b) {
		return ErrUnknownUser
	}
	if !g.AreFriends(a, b) {
		return ErrNotFriends
	}
	g.friends[a] = slices.DeleteFunc(g.friends[a], func(f string) bool { return f == b })
	g.friends[b] = slices.DeleteFunc(g.friends[b], func(f string) bool { return f == a })
	return nil
}

// SetFriends sets the friend sequence of name, adding name if absent.
// The sequence is copied. SetFriends does not check any invariant; it is
// meant for decoders rebuilding a graph from a snapshot.
func (g *Graph) SetFriends(name string, friends []string) {
	list := make([]string, len(friends))
	copy(list, friends)
	g.friends[name] = list
}

// HasUser reports whether name is a key of the graph.
func (g *Graph) HasUser(name string) bool {
	_, ok := g.friends[name]
	return ok
}

// Friends returns a copy of name's friend sequence in stored order.
// Returns nil if name is absent and an empty slice for a user without friends.
func (g *Graph) Friends(name string) []string {
	list, ok := g.friends[name]
	if !ok {
		return nil
	}
	return slices.Clone(list)
}

// Neighbors returns name's friend sequence without copying.
// The returned slice should not be modified - use it as a read-only view.
func (g *Graph) Neighbors(name string) []string { return g.friends[name] }

// AreFriends reports whether b appears in a's friend sequence.
// Only a's side is consulted.
func (g *Graph) AreFriends(a, b string) bool {
	return slices.Contains(g.friends[a], b)
}

// Degree returns the length of name's friend sequence, or 0 if absent.
func (g *Graph) Degree(name string) int { return len(g.friends[name]) }

// Users returns all user names in ascending order.
func (g *Graph) Users() []string {
	return slices.Sorted(maps.Keys(g.friends))
}

// UserCount returns the number of users.
func (g *Graph) UserCount() int { return len(g.friends) }

// FriendshipCount returns the number of distinct friendships.
// Each symmetric pair is counted once; a one-sided entry left by a damaged
// snapshot also counts once.
func (g *Graph) FriendshipCount() int {
	seen := make(map[[2]string]struct{})
	for a, list := range g.friends {
		for _, b := range list {
			seen[pairKey(a, b)] = struct{}{}
		}
	}
	return len(seen)
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := &Graph{friends: make(map[string][]string, len(g.friends))}
	for id, list := range g.friends {
		c.friends[id] = slices.Clone(list)
	}
	return c
}

// Equal reports whether both graphs have the same users and the same
// friend sequences, including order.
func (g *Graph) Equal(other *Graph) bool {
	if g == nil || other == nil {
		return g == other
	}
	return maps.EqualFunc(g.friends, other.friends, slices.Equal[[]string])
}

// pairKey returns an order-independent key for the friendship a-b.
func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
