package network

import (
	"errors"
	"slices"
	"testing"
)

func build(t *testing.T, users []string, pairs [][2]string) *Graph {
	t.Helper()
	g := New()
	for _, u := range users {
		if err := g.AddUser(u); err != nil {
			t.Fatalf("AddUser(%q): %v", u, err)
		}
	}
	for _, p := range pairs {
		if err := g.Befriend(p[0], p[1]); err != nil {
			t.Fatalf("Befriend(%q, %q): %v", p[0], p[1], err)
		}
	}
	return g
}

func TestAddUser(t *testing.T) {
	g := New()
	if err := g.AddUser("alice"); err != nil {
		t.Fatalf("AddUser error: %v", err)
	}
	if !g.HasUser("alice") {
		t.Error("alice should be present")
	}
	if got := g.Friends("alice"); got == nil || len(got) != 0 {
		t.Errorf("Friends(alice) = %#v, want empty non-nil slice", got)
	}
	if err := g.AddUser("alice"); !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("second AddUser error = %v, want ErrDuplicateUser", err)
	}
	if err := g.AddUser(""); !errors.Is(err, ErrInvalidUserName) {
		t.Errorf("AddUser(\"\") error = %v, want ErrInvalidUserName", err)
	}
	if g.UserCount() != 1 {
		t.Errorf("UserCount = %d, want 1", g.UserCount())
	}
}

func TestNamesAreCaseSensitive(t *testing.T) {
	g := build(t, []string{"alice", "Alice"}, nil)
	if g.UserCount() != 2 {
		t.Errorf("UserCount = %d, want 2", g.UserCount())
	}
}

func TestBefriend(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantErr error
	}{
		{"new friendship", "alice", "bob", nil},
		{"unknown first", "zed", "bob", ErrUnknownUser},
		{"unknown second", "alice", "zed", ErrUnknownUser},
		{"self", "alice", "alice", ErrSelfFriendship},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, []string{"alice", "bob"}, nil)
			err := g.Befriend(tt.a, tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Befriend error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if g.FriendshipCount() != 0 {
					t.Error("graph should be unchanged on error")
				}
				return
			}
			if !g.AreFriends("alice", "bob") || !g.AreFriends("bob", "alice") {
				t.Error("friendship should be symmetric")
			}
		})
	}
}

func TestBefriendAlreadyFriends(t *testing.T) {
	g := build(t, []string{"alice", "bob"}, [][2]string{{"alice", "bob"}})
	if err := g.Befriend("alice", "bob"); !errors.Is(err, ErrAlreadyFriends) {
		t.Errorf("Befriend error = %v, want ErrAlreadyFriends", err)
	}
	if err := g.Befriend("bob", "alice"); !errors.Is(err, ErrAlreadyFriends) {
		t.Errorf("reverse Befriend error = %v, want ErrAlreadyFriends", err)
	}
	if got := g.Friends("alice"); !slices.Equal(got, []string{"bob"}) {
		t.Errorf("Friends(alice) = %v, want [bob]", got)
	}
}

func TestBefriendKeepsInsertionOrder(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "d"}, {"a", "b"}, {"c", "a"}})
	if got := g.Friends("a"); !slices.Equal(got, []string{"d", "b", "c"}) {
		t.Errorf("Friends(a) = %v, want [d b c]", got)
	}
}

func TestUnfriend(t *testing.T) {
	g := build(t, []string{"alice", "bob", "carol"}, [][2]string{{"alice", "bob"}, {"alice", "carol"}})

	if err := g.Unfriend("bob", "alice"); err != nil {
		t.Fatalf("Unfriend error: %v", err)
	}
	if g.AreFriends("alice", "bob") || g.AreFriends("bob", "alice") {
		t.Error("friendship should be removed on both sides")
	}
	if got := g.Friends("alice"); !slices.Equal(got, []string{"carol"}) {
		t.Errorf("Friends(alice) = %v, want [carol]", got)
	}

	if err := g.Unfriend("alice", "bob"); !errors.Is(err, ErrNotFriends) {
		t.Errorf("second Unfriend error = %v, want ErrNotFriends", err)
	}
	if err := g.Unfriend("alice", "zed"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("Unfriend unknown error = %v, want ErrUnknownUser", err)
	}
}

func TestUnfriendTwiceLeavesGraphUnchanged(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "c"}})
	before := g.Clone()

	for i := 0; i < 2; i++ {
		if err := g.Unfriend("a", "b"); !errors.Is(err, ErrNotFriends) {
			t.Fatalf("call %d: error = %v, want ErrNotFriends", i+1, err)
		}
	}
	if !g.Equal(before) {
		t.Error("graph changed after Unfriend on non-friends")
	}
}

func TestRemoveUser(t *testing.T) {
	g := build(t, []string{"alice", "bob", "carol"}, [][2]string{{"alice", "bob"}, {"bob", "carol"}, {"alice", "carol"}})

	if err := g.RemoveUser("bob"); err != nil {
		t.Fatalf("RemoveUser error: %v", err)
	}
	if g.HasUser("bob") {
		t.Error("bob should be gone")
	}
	if got := g.Friends("alice"); !slices.Equal(got, []string{"carol"}) {
		t.Errorf("Friends(alice) = %v, want [carol]", got)
	}
	if got := g.Friends("carol"); !slices.Equal(got, []string{"alice"}) {
		t.Errorf("Friends(carol) = %v, want [alice]", got)
	}
	if err := g.RemoveUser("bob"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("RemoveUser twice error = %v, want ErrUnknownUser", err)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate after removal: %v", err)
	}
}

func TestRemoveUserScrubsOneSidedEntries(t *testing.T) {
	g := New()
	g.SetFriends("alice", nil)
	g.SetFriends("bob", []string{"alice"})

	if err := g.RemoveUser("alice"); err != nil {
		t.Fatalf("RemoveUser error: %v", err)
	}
	if got := g.Friends("bob"); len(got) != 0 {
		t.Errorf("Friends(bob) = %v, want empty", got)
	}
}

func TestFriendsReturnsCopy(t *testing.T) {
	g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}})
	got := g.Friends("a")
	got[0] = "mutated"
	if g.Friends("a")[0] != "b" {
		t.Error("Friends should return a copy")
	}
	if g.Friends("missing") != nil {
		t.Error("Friends of unknown user should be nil")
	}
}

func TestUsersSorted(t *testing.T) {
	g := build(t, []string{"carol", "alice", "bob"}, nil)
	if got := g.Users(); !slices.Equal(got, []string{"alice", "bob", "carol"}) {
		t.Errorf("Users() = %v", got)
	}
}

func TestFriendshipCount(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	if got := g.FriendshipCount(); got != 3 {
		t.Errorf("FriendshipCount = %d, want 3", got)
	}
	if got := g.Degree("a"); got != 2 {
		t.Errorf("Degree(a) = %d, want 2", got)
	}
	if got := g.Degree("d"); got != 0 {
		t.Errorf("Degree(d) = %d, want 0", got)
	}
}

func TestCloneAndEqual(t *testing.T) {
	g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}})
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone should equal original")
	}
	if err := c.AddUser("c"); err != nil {
		t.Fatal(err)
	}
	if g.Equal(c) {
		t.Error("mutating clone should not affect original")
	}

	reordered := New()
	reordered.SetFriends("a", []string{"b"})
	reordered.SetFriends("b", []string{"a"})
	if !g.Equal(reordered) {
		t.Error("graphs with identical sequences should be equal")
	}

	var nilGraph *Graph
	if g.Equal(nilGraph) {
		t.Error("graph should not equal nil")
	}
}

func TestSymmetryAfterMutations(t *testing.T) {
	g := New()
	ops := []func() error{
		func() error { return g.AddUser("a") },
		func() error { return g.AddUser("b") },
		func() error { return g.AddUser("c") },
		func() error { return g.AddUser("d") },
		func() error { return g.Befriend("a", "b") },
		func() error { return g.Befriend("b", "c") },
		func() error { return g.Befriend("c", "d") },
		func() error { return g.Befriend("d", "a") },
		func() error { return g.Unfriend("c", "b") },
		func() error { return g.RemoveUser("d") },
		func() error { return g.Befriend("a", "c") },
		func() error { return g.AddUser("d") },
		func() error { return g.Befriend("d", "b") },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
		if err := g.Validate(); err != nil {
			t.Fatalf("invariant broken after op %d: %v", i, err)
		}
	}
}
