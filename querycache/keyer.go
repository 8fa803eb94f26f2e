package querycache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// KeyLength is the length of keys produced by DefaultKeyer, in hex characters.
const KeyLength = 32

// Keyer derives deterministic cache keys from query identity.
//
// Contract:
// - Determinism: the same (query, projectID) pair must always produce the
//   same key, across calls and across process restarts.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key derives a fixed-length key from a query and its project scope.
	// An empty projectID is a legal, distinct scope of its own.
	Key(query, projectID string) string
}

// DefaultKeyer derives SHA-256 based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key derives a deterministic fixed-length key.
//
// The project scope is length-prefixed before concatenation with the query,
// so no (query, projectID) pair can produce another pair's input: the frame
// "<len(projectID)>:<projectID><query>" is unambiguous. The first 16 bytes
// of the SHA-256 digest are hex encoded, giving a 128-bit, 32-character key.
func (k *DefaultKeyer) Key(query, projectID string) string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(len(projectID))))
	h.Write([]byte{':'})
	h.Write([]byte(projectID))
	h.Write([]byte(query))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:KeyLength/2])
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
