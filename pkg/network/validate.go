package network

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrAsymmetricFriendship is reported when b is in a's sequence but a
	// is not in b's.
	ErrAsymmetricFriendship = errors.New("friendship is not symmetric")

	// ErrDuplicateFriend is reported when a name appears more than once in
	// a friend sequence.
	ErrDuplicateFriend = errors.New("duplicate friend entry")

	// ErrDanglingFriend is reported when a friend sequence names a user that
	// is not a key of the graph.
	ErrDanglingFriend = errors.New("friend is not a known user")
)

// Violation describes one broken invariant: Friend's entry in User's
// friend sequence. Err is one of the sentinel errors of this package.
type Violation struct {
	User   string
	Friend string
	Err    error
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return fmt.Sprintf("%s -> %s: %v", v.User, v.Friend, v.Err)
}

// Unwrap returns the sentinel error.
func (v *Violation) Unwrap() error { return v.Err }

// Validate checks the graph invariants and returns the first violation, or
// nil if the graph is consistent. Users are inspected in ascending order.
func (g *Graph) Validate() error {
	if vs := g.Violations(); len(vs) > 0 {
		return vs[0]
	}
	return nil
}

// Violations returns every broken invariant. Users are inspected in
// ascending order and friends in stored order, so the result is stable for
// a given graph.
func (g *Graph) Violations() []*Violation {
	var out []*Violation
	for _, user := range g.Users() {
		seen := make(map[string]bool, len(g.friends[user]))
		for _, f := range g.friends[user] {
			switch {
			case f == user:
				out = append(out, &Violation{User: user, Friend: f, Err: ErrSelfFriendship})
			case seen[f]:
				out = append(out, &Violation{User: user, Friend: f, Err: ErrDuplicateFriend})
			case !g.HasUser(f):
				out = append(out, &Violation{User: user, Friend: f, Err: ErrDanglingFriend})
			case !slices.Contains(g.friends[f], user):
				out = append(out, &Violation{User: user, Friend: f, Err: ErrAsymmetricFriendship})
			}
			seen[f] = true
		}
	}
	return out
}

// Repair restores the invariants in place and returns the number of fixes.
//
// Self entries, duplicates and names of unknown users are dropped, keeping
// the first occurrence of each friend. A one-sided friendship is completed
// by appending the missing reverse entry. Users are processed in ascending
// order, so repairs are deterministic.
func (g *Graph) Repair() int {
	fixes := 0
	users := g.Users()

	for _, user := range users {
		seen := make(map[string]bool, len(g.friends[user]))
		g.friends[user] = slices.DeleteFunc(g.friends[user], func(f string) bool {
			drop := f == user || seen[f] || !g.HasUser(f)
			seen[f] = true
			if drop {
				fixes++
			}
			return drop
		})
	}

	for _, user := range users {
		for _, f := range g.friends[user] {
			if !slices.Contains(g.friends[f], user) {
				g.friends[f] = append(g.friends[f], user)
				fixes++
			}
		}
	}
	return fixes
}
