// Package query implements read-only graph queries over a [network.Graph].
//
// # Shortest Path
//
// [ShortestPath] runs a breadth-first search over the undirected friendship
// graph. Each queue entry carries the full path taken to reach it, starting
// from the one-element path holding the start user. A user is marked visited
// the first time it is enqueued, so the first path that reaches the target
// has the minimum number of edges.
// Neighbours are expanded in stored friend order, which decides between
// paths of equal length.
//
// # Recommendations
//
// [Recommend] scores every friend-of-a-friend by the number of mutual
// friends it shares with the target user. Users already befriended, and the
// target itself, are never suggested. Suggestions are ordered by mutual
// count descending, then by name ascending.
//
// All functions take the graph by pointer and never modify it.
//
// [network.Graph]: github.com/matzehuels/friendgraph/pkg/network.Graph
package query
