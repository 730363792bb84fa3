package store

import (
	"sort"
	"strings"
	"sync"
)

// InMemObjectStore is an in-memory implementation of an ObjectStore,
// used for tests and ephemeral ledgers.
type InMemObjectStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewInMemObjectStore creates a new in memory ObjectStore
func NewInMemObjectStore() *InMemObjectStore {
	return &InMemObjectStore{}
}

// Open initializes the in-memory map. This must be called before
// attempting to write or read data.
func (store *InMemObjectStore) Open() error {
	store.m = make(map[string][]byte)
	return nil
}

// Put stores data under the given hash
func (store *InMemObjectStore) Put(hash string, data []byte) error {
	store.mu.Lock()
	store.m[hash] = data
	store.mu.Unlock()
	return nil
}

// Get gets the bytes stored under the given hash or returns an error
func (store *InMemObjectStore) Get(hash string) ([]byte, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if data, ok := store.m[hash]; ok {
		return data, nil
	}
	return nil, ErrObjectNotFound
}

// Match returns all stored hashes sharing the given prefix, sorted.
func (store *InMemObjectStore) Match(prefix string) ([]string, error) {
	store.mu.RLock()
	var matches []string
	for hash := range store.m {
		if strings.HasPrefix(hash, prefix) {
			matches = append(matches, hash)
		}
	}
	store.mu.RUnlock()

	sort.Strings(matches)
	return matches, nil
}

// Close is a no-op to satisfy the ObjectStore interface
func (store *InMemObjectStore) Close() error {
	return nil
}

// InMemStableStore implements an in-memory StableStore interface
type InMemStableStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewInMemStableStore creates a new in memory StableStore
func NewInMemStableStore() *InMemStableStore {
	return &InMemStableStore{}
}

// Open initializes the in-memory map. This must be called before
// attempting to write or read data.
func (store *InMemStableStore) Open() error {
	store.m = make(map[string][]byte)
	return nil
}

// Get gets a key from the in-memory map
func (store *InMemStableStore) Get(key []byte) ([]byte, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if val, ok := store.m[string(key)]; ok {
		return val, nil
	}
	return nil, ErrKeyNotFound
}

// Set sets a key to the value in the in-memory map
func (store *InMemStableStore) Set(key, value []byte) error {
	store.mu.Lock()
	store.m[string(key)] = value
	store.mu.Unlock()
	return nil
}

// Close is a no-op to satisfy the StableStore interface
func (store *InMemStableStore) Close() error {
	return nil
}
