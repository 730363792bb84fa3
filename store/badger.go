package store

import "github.com/dgraph-io/badger"

type baseBadger struct {
	opt badger.Options
	db  *badger.DB
}

func newBaseBadger(dataDir string) *baseBadger {
	opt := badger.DefaultOptions(dataDir).
		WithSyncWrites(true).
		WithLogger(nil)
	return &baseBadger{opt: opt}
}

func (store *baseBadger) Open() (err error) {
	store.db, err = badger.Open(store.opt)
	return
}

func (store *baseBadger) Close() error {
	return store.db.Close()
}

func (store *baseBadger) get(key []byte) ([]byte, error) {
	var val []byte
	err := store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (store *baseBadger) set(key, value []byte) error {
	return store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// BadgerObjectStore is an ObjectStore using badger for persistence.
// Prefix resolution uses badger's native prefix iteration.
type BadgerObjectStore struct {
	*baseBadger
}

// NewBadgerObjectStore instantiates a badger based object store
func NewBadgerObjectStore(dataDir string) *BadgerObjectStore {
	return &BadgerObjectStore{baseBadger: newBaseBadger(dataDir)}
}

// Put persists data under the given hash
func (store *BadgerObjectStore) Put(hash string, data []byte) error {
	return store.set([]byte(hash), data)
}

// Get gets the bytes stored under the given hash
func (store *BadgerObjectStore) Get(hash string) ([]byte, error) {
	val, err := store.get([]byte(hash))
	if err == badger.ErrKeyNotFound {
		return nil, ErrObjectNotFound
	}
	return val, err
}

// Match returns all stored hashes sharing the given prefix, sorted.
// Badger iterates keys in byte order so no extra sort is needed.
func (store *BadgerObjectStore) Match(prefix string) ([]string, error) {
	var matches []string
	err := store.db.View(func(txn *badger.Txn) error {
		opt := badger.DefaultIteratorOptions
		opt.PrefetchValues = false
		it := txn.NewIterator(opt)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			matches = append(matches, string(it.Item().Key()))
		}
		return nil
	})
	return matches, err
}

// BadgerStableStore is a StableStore using badger for persistence
type BadgerStableStore struct {
	*baseBadger
}

// NewBadgerStableStore instantiates a badger based stable store
func NewBadgerStableStore(dataDir string) *BadgerStableStore {
	return &BadgerStableStore{baseBadger: newBaseBadger(dataDir)}
}

// Get gets the value for the key
func (store *BadgerStableStore) Get(key []byte) ([]byte, error) {
	val, err := store.get(key)
	if err == badger.ErrKeyNotFound {
		return nil, ErrKeyNotFound
	}
	return val, err
}

// Set sets the key to the given value
func (store *BadgerStableStore) Set(key, value []byte) error {
	return store.set(key, value)
}
