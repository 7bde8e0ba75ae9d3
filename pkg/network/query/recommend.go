package query

import (
	"cmp"
	"slices"

	"github.com/matzehuels/friendgraph/pkg/network"
)

// Suggestion is a recommended friend for some user.
type Suggestion struct {
	User   string   `json:"user"`   // Recommended user
	Mutual int      `json:"mutual"` // Number of mutual friends
	Via    []string `json:"via"`    // Mutual friends, in discovery order
}

// Recommend returns friend suggestions for name, scored by mutual friends.
//
// For every friend F of name and every friend M of F, M is counted when it
// is neither name nor already in name's friend sequence. Only candidates
// with a positive count are returned, ordered by Mutual descending and then
// by User ascending. The result is empty (not nil) when there is nothing to
// suggest.
//
// Returns an error wrapping network.ErrUnknownUser if name is absent.
func Recommend(g *network.Graph, name string) ([]Suggestion, error) {
	if err := requireUsers(g, name); err != nil {
		return nil, err
	}

	friends := g.Neighbors(name)
	direct := make(map[string]bool, len(friends))
	for _, f := range friends {
		direct[f] = true
	}

	index := make(map[string]int)
	out := []Suggestion{}
	for _, f := range friends {
		for _, m := range g.Neighbors(f) {
			if m == name || direct[m] {
				continue
			}
			i, ok := index[m]
			if !ok {
				i = len(out)
				index[m] = i
				out = append(out, Suggestion{User: m})
			}
			out[i].Mutual++
			out[i].Via = append(out[i].Via, f)
		}
	}

	slices.SortStableFunc(out, func(a, b Suggestion) int {
		if c := cmp.Compare(b.Mutual, a.Mutual); c != 0 {
			return c
		}
		return cmp.Compare(a.User, b.User)
	})
	return out, nil
}
