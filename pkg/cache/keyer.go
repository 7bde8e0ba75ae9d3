package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Keyer derives cache keys for query results.
type Keyer interface {
	// QueryKey returns the key for running op with args against the
	// snapshot whose hash is snapshotHash.
	QueryKey(snapshotHash, op string, args ...string) string
}

// DefaultKeyer produces keys of the form "query:<op>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// QueryKey hashes the snapshot hash together with the arguments. Every
// part is length-prefixed, so arguments containing separators cannot
// collide.
func (DefaultKeyer) QueryKey(snapshotHash, op string, args ...string) string {
	h := sha256.New()
	for _, part := range append([]string{snapshotHash}, args...) {
		fmt.Fprintf(h, "%d:%s;", len(part), part)
	}
	return "query:" + op + ":" + hex.EncodeToString(h.Sum(nil))
}

var _ Keyer = DefaultKeyer{}

// Hash returns the hex SHA-256 of a snapshot.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// TTLQuery is how long a query result stays cached. Results are keyed by
// snapshot hash, so the TTL only bounds how long stale snapshots linger.
const TTLQuery = 24 * time.Hour
