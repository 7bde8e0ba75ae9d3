// Package snapshot serializes a [network.Graph] to and from its persisted
// forms.
//
// # Line Format
//
// The primary format is line oriented text, one user per line:
//
//	<username> <friend_count> [<friend1> ... <friendN>]
//
// [Encode] writes users in ascending name order and keeps each friend
// sequence in stored order, so encoding the same graph twice produces
// identical bytes. [Decode] accepts any whitespace between tokens, skips
// blank lines, and rejects a line whose count does not match the number of
// names that follow it. When a user appears on several lines the last one
// wins.
//
// Decode rebuilds the graph exactly as written. It does not check symmetry
// or other invariants; call [network.Graph.Validate] for that.
//
// # JSON Interchange
//
// [WriteJSON] and [ReadJSON] use a self-describing JSON document meant for
// export to and import from other tools:
//
//	{
//	  "users": [
//	    {"name": "alice", "friends": ["bob"]},
//	    {"name": "bob", "friends": ["alice"]}
//	  ],
//	  "friendships": [
//	    {"a": "alice", "b": "bob"}
//	  ]
//	}
//
// The "friendships" array lists each friendship once and is informational;
// ReadJSON rebuilds friend sequences from "users" and validates the result.
//
// [network.Graph]: github.com/matzehuels/friendgraph/pkg/network.Graph
// [network.Graph.Validate]: github.com/matzehuels/friendgraph/pkg/network.Graph.Validate
package snapshot
