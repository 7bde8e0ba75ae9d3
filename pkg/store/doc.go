// Package store persists friendship graphs.
//
// A [Store] holds exactly one snapshot of the graph. Every operation of the
// engine loads the full snapshot, works on the in-memory copy, and saves it
// back in full; there are no partial updates.
//
// # Backends
//
//   - [FileStore]: the line format of package snapshot in a single text
//     file, replaced atomically through a temporary file and rename
//   - [MemoryStore]: encoded snapshot bytes in memory, for tests
//   - [RedisStore]: one Redis hash per network, one field per user
//   - [MongoStore]: one MongoDB document per user
//   - [BadgerStore]: one BadgerDB key per user
//
// [Open] picks a backend from a [Config].
//
// # Locking
//
// Backends that other processes can reach implement [Locker]. The file
// store takes an advisory flock(2) on a sibling ".lock" file; the Redis
// store takes a lease with SET NX and releases it only if it still owns it.
//
// # Errors
//
// Backend failures are returned with the STORE_UNAVAILABLE code from
// package errors. A snapshot that exists but cannot be parsed is returned
// with INVALID_SNAPSHOT.
package store
