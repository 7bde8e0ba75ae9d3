// Package network provides the in-memory adjacency model of a social graph:
// users identified by name and symmetric, unweighted friendship edges.
//
// # Overview
//
// A [Graph] maps every user name to an ordered sequence of friend names.
// Order matters: friend sequences keep insertion order, and the graph
// queries in the [query] subpackage iterate neighbours in that order, so two
// snapshots with the same edges but different storage order may break
// shortest-path ties differently.
//
// # Invariants
//
// The mutating methods keep three invariants:
//
//   - Symmetry: b is in Friends(a) if and only if a is in Friends(b)
//   - No self-friendship
//   - No duplicate entries in a friend sequence
//
// A user with an empty friend sequence is still present; [Graph.HasUser]
// distinguishes it from an unknown name.
//
// Decoders build graphs with [Graph.SetFriends], which does not enforce the
// invariants, so that a damaged snapshot can still be loaded. Use
// [Graph.Validate] or [Graph.Violations] to inspect a loaded graph and
// [Graph.Repair] to restore the invariants.
//
// # Basic Usage
//
//	g := network.New()
//	_ = g.AddUser("alice")
//	_ = g.AddUser("bob")
//	_ = g.Befriend("alice", "bob")
//	fmt.Println(g.Friends("alice")) // [bob]
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. The engine in
// [social] builds a fresh Graph for every operation and never shares it.
//
// [query]: github.com/matzehuels/friendgraph/pkg/network/query
// [social]: github.com/matzehuels/friendgraph/pkg/social
package network
