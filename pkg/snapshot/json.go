package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
)

type document struct {
	Users       []user       `json:"users"`
	Friendships []friendship `json:"friendships"`
}

type user struct {
	Name    string   `json:"name"`
	Friends []string `json:"friends"`
}

type friendship struct {
	A string `json:"a"`
	B string `json:"b"`
}

// WriteJSON encodes g as an indented JSON interchange document and writes
// it to w. Users are sorted by name; each friendship is listed once, from
// the side whose name sorts first.
func WriteJSON(g *network.Graph, w io.Writer) error {
	out := document{
		Users:       make([]user, 0, g.UserCount()),
		Friendships: []friendship{},
	}
	seen := make(map[[2]string]bool)
	for _, name := range g.Users() {
		friends := g.Friends(name)
		out.Users = append(out.Users, user{Name: name, Friends: friends})
		for _, f := range friends {
			key := [2]string{name, f}
			if f < name {
				key = [2]string{f, name}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out.Friendships = append(out.Friendships, friendship{A: key[0], B: key[1]})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *network.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes a JSON interchange document from r.
//
// Every user needs a valid name (see ferrors.ValidateUserName) and must be
// listed once. The rebuilt graph must pass [network.Graph.Validate]: friend
// lists have to be symmetric, free of duplicates and self entries, and only
// name listed users. All failures are coded INVALID_SNAPSHOT.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*network.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, err, "decode")
	}

	g := network.New()
	for _, u := range doc.Users {
		if err := ferrors.ValidateUserName(u.Name); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, err, "user %q", u.Name)
		}
		if g.HasUser(u.Name) {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, network.ErrDuplicateUser, "user %s", u.Name)
		}
		g.SetFriends(u.Name, u.Friends)
	}
	if err := g.Validate(); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, err, "inconsistent friendships")
	}
	return g, nil
}

// ImportJSON reads the JSON interchange file at path. It returns the same
// errors as [ReadJSON], plus any error opening the file.
func ImportJSON(path string) (*network.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
