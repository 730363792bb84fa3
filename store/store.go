// Package store provides the persistence backends for the ledger: an
// object store keyed by content hash and a stable store for small
// pointer records such as HEAD.
package store

import "errors"

var (
	// ErrObjectNotFound is returned when no object exists for a hash.
	ErrObjectNotFound = errors.New("object not found")
	// ErrKeyNotFound is returned when a stable store key does not exist.
	ErrKeyNotFound = errors.New("key not found")
)

// ObjectStore persists serialized entries under their content hash.
// Objects are immutable once written and never deleted.
type ObjectStore interface {
	// Open prepares the store for reading and writing. This must be
	// called before any other method.
	Open() error

	// Put persists data under the given full hash.
	Put(hash string, data []byte) error

	// Get returns the canonical serialized bytes stored under the given
	// full hash, or ErrObjectNotFound.
	Get(hash string) ([]byte, error)

	// Match returns all stored hashes sharing the given prefix, sorted.
	Match(prefix string) ([]string, error)

	// Close releases the store.
	Close() error
}

// StableStore persists small mutable pointer records. The ledger uses it
// to hold the HEAD hash.
type StableStore interface {
	// Open prepares the store for reading and writing. This must be
	// called before any other method.
	Open() error

	// Get returns the value for key, or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)

	// Set atomically replaces the value for key.
	Set(key, value []byte) error

	// Close releases the store.
	Close() error
}
