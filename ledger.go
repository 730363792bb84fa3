// Package bok implements a content-addressed, hash-chained ledger store.
// Accounting entries are serialized to a deterministic binary form,
// hashed, and persisted immutably under their hash. The chain is a
// singly-linked list of entries joined by predecessor hashes, ending at
// a single Origin; HEAD is the hash of the most recently appended entry
// and the only mutable state in the system.
package bok

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hexablock/log"

	"github.com/dtennander/bok/store"
)

// headKey is the stable store key holding the current chain tip.
const headKey = "HEAD"

// Ledger owns the chain: it appends entries linked to the current HEAD,
// resolves references, and loads stored entries. A Ledger assumes it is
// the only writer of its storage; concurrent writers from other
// processes are not guarded against.
type Ledger struct {
	objects store.ObjectStore
	stable  store.StableStore
	hasher  Hasher

	mu    sync.RWMutex
	head  string
	cache map[string]Entry
}

// Create initializes a fresh chain at cfg.Path whose only entry is an
// Origin for the given year. It fails with ErrLedgerExists if a chain
// already exists there.
func Create(cfg *Config, year uint64) (*Ledger, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, err
	}
	ledger, err := newLedger(cfg)
	if err != nil {
		return nil, err
	}

	if _, err = ledger.stable.Get([]byte(headKey)); err == nil {
		ledger.Close()
		return nil, fmt.Errorf("%w: %s", ErrLedgerExists, cfg.Path)
	} else if !errors.Is(err, store.ErrKeyNotFound) {
		ledger.Close()
		return nil, err
	}

	if err = writeManifest(cfg); err != nil {
		ledger.Close()
		return nil, err
	}

	origin := NewOrigin(year)
	if _, err = ledger.append(origin); err != nil {
		ledger.Close()
		return nil, err
	}
	log.Printf("[INFO] Created ledger path=%s year=%d head=%s", cfg.Path, year, ledger.head)
	return ledger, nil
}

// Open loads an existing chain at cfg.Path: the manifest, the HEAD
// pointer, and the entry it references. A missing or corrupt pointer or
// entry fails.
func Open(cfg *Config) (*Ledger, error) {
	m, err := readManifest(cfg.Path)
	if err != nil {
		return nil, err
	}
	opened := *cfg
	opened.Backend = m.Backend
	if opened.Hasher, err = HasherForAlgorithm(m.Algorithm); err != nil {
		return nil, err
	}

	ledger, err := newLedger(&opened)
	if err != nil {
		return nil, err
	}

	head, err := ledger.stable.Get([]byte(headKey))
	if err != nil {
		ledger.Close()
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: no HEAD at %s", ErrNotFound, cfg.Path)
		}
		return nil, err
	}
	ledger.head = string(head)

	// Decoding the tip up front surfaces a corrupt chain at open time.
	if _, err = ledger.getByHash(ledger.head); err != nil {
		ledger.Close()
		return nil, err
	}
	log.Printf("[DEBUG] Opened ledger path=%s head=%s", cfg.Path, ledger.head)
	return ledger, nil
}

func newLedger(cfg *Config) (*Ledger, error) {
	var (
		objects store.ObjectStore
		stable  store.StableStore
	)
	switch cfg.Backend {
	case BackendFile:
		objects = store.NewFileObjectStore(filepath.Join(cfg.Path, "objects"))
		stable = store.NewFileStableStore(cfg.Path)
	case BackendBadger:
		objects = store.NewBadgerObjectStore(filepath.Join(cfg.Path, "objects.db"))
		stable = store.NewBadgerStableStore(filepath.Join(cfg.Path, "stable.db"))
	default:
		return nil, fmt.Errorf("unsupported backend: %q", cfg.Backend)
	}

	if err := objects.Open(); err != nil {
		return nil, err
	}
	if err := stable.Open(); err != nil {
		objects.Close()
		return nil, err
	}
	return &Ledger{
		objects: objects,
		stable:  stable,
		hasher:  cfg.Hasher,
		cache:   make(map[string]Entry),
	}, nil
}

// Close releases both stores.
func (ledger *Ledger) Close() error {
	return errors.Join(ledger.objects.Close(), ledger.stable.Close())
}

// Head returns the hash of the most recently appended entry.
func (ledger *Ledger) Head() string {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.head
}

// Hasher returns the hash function the ledger computes entry hashes with.
func (ledger *Ledger) Hasher() Hasher {
	return ledger.hasher
}

// AddEntry appends a Record dated today, linked to the current HEAD. It
// returns the new entry's hash, which becomes the new HEAD.
func (ledger *Ledger) AddEntry(name, description string, lines []EntryLine) (string, error) {
	return ledger.AddEntryOn(time.Now(), name, description, lines)
}

// AddEntryOn appends a Record for the given event date, linked to the
// current HEAD. The entry is persisted before HEAD is repointed, so a
// crash in between leaves the previous chain intact and the new object
// merely unreferenced.
func (ledger *Ledger) AddEntryOn(date time.Time, name, description string, lines []EntryLine) (string, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	record := NewRecord(date, name, description, lines, ledger.head)
	hash, err := ledger.append(record)
	if err != nil {
		return "", err
	}
	log.Printf("[DEBUG] Appended entry name=%s lines=%d head=%s", name, len(lines), hash)
	return hash, nil
}

// append serializes, hashes, and persists the entry, then repoints HEAD.
// The caller holds the write lock where one is needed.
func (ledger *Ledger) append(entry Entry) (string, error) {
	hash, data, err := EncodeEntry(entry, ledger.hasher)
	if err != nil {
		return "", err
	}
	// Object before pointer: the chain stays consistent if the HEAD
	// update never happens.
	if err = ledger.objects.Put(hash, data); err != nil {
		return "", err
	}
	if err = ledger.stable.Set([]byte(headKey), []byte(hash)); err != nil {
		return "", err
	}
	ledger.head = hash
	ledger.cache[hash] = entry
	return hash, nil
}

// ResolveRef resolves a textual reference to a full entry hash. The
// literal token "HEAD" resolves to the current chain tip; any other
// token is treated as a hash prefix. A prefix matching nothing fails
// with ErrNotFound, one matching several entries with ErrAmbiguousRef.
func (ledger *Ledger) ResolveRef(ref string) (string, error) {
	if ref == headKey {
		return ledger.Head(), nil
	}
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	matches, err := ledger.objects.Match(ref)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d entries", ErrAmbiguousRef, ref, len(matches))
	}
}

// GetEntry resolves ref and returns the decoded entry it identifies.
func (ledger *Ledger) GetEntry(ref string) (Entry, error) {
	hash, err := ledger.ResolveRef(ref)
	if err != nil {
		return nil, err
	}
	return ledger.getByHash(hash)
}

// getByHash loads and decodes the entry stored under the full hash,
// memoizing the result. Entries are immutable so the cache is never
// invalidated.
func (ledger *Ledger) getByHash(hash string) (Entry, error) {
	ledger.mu.RLock()
	entry, ok := ledger.cache[hash]
	ledger.mu.RUnlock()
	if ok {
		return entry, nil
	}

	data, err := ledger.objects.Get(hash)
	if err != nil {
		if errors.Is(err, store.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
		}
		return nil, err
	}
	entry, err = Deserialize(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding entry %s: %w", hash, err)
	}

	ledger.mu.Lock()
	ledger.cache[hash] = entry
	ledger.mu.Unlock()
	return entry, nil
}
