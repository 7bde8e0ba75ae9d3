// Package social is the friendgraph engine: it runs user operations against
// a persisted network.
//
// Every call on a [Service] is one transaction. It loads the full snapshot
// from the store, works on that in-memory graph, and for mutations saves
// the whole snapshot back before returning. Nothing is kept between calls,
// so each call reflects whatever the store holds when it starts.
//
// # Mutations
//
// [Service.AddUser], [Service.RemoveUser], [Service.AddFriendship] and
// [Service.RemoveFriendship] report an [Outcome] rather than an error for
// soft failures such as an existing user or a missing friendship. Every
// branch saves the snapshot, even when nothing changed, except RemoveUser
// for an unknown user, which returns before saving.
//
// Names are validated before anything is loaded; an invalid name is an
// error coded INVALID_NAME.
//
// # Queries
//
// Queries never save. Results of the graph queries are cached under keys
// derived from the snapshot hash, so a saved mutation makes every older
// entry unreachable.
//
// # Errors
//
// Store failures on save abort the operation. A query against a store that
// cannot be read sees an empty network, with a warning; a mutation aborts
// with STORE_UNAVAILABLE and leaves the stored data alone. A snapshot that
// cannot be parsed is an error coded INVALID_SNAPSHOT.
package social
