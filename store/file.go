package store

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// FileObjectStore keeps one file per object in a directory, named by the
// object's full hash. New objects are written gzip-compressed; reads
// detect the gzip header and transparently fall back to raw bytes for
// files produced without compression.
type FileObjectStore struct {
	dir string
}

// NewFileObjectStore returns a FileObjectStore rooted at dir.
func NewFileObjectStore(dir string) *FileObjectStore {
	return &FileObjectStore{dir: dir}
}

// Open creates the object directory if needed.
func (store *FileObjectStore) Open() error {
	return os.MkdirAll(store.dir, 0o755)
}

// Put writes data under the given hash. The object is written to a
// temporary file and renamed into place so a crash never leaves a
// half-written file under a valid hash name.
func (store *FileObjectStore) Put(hash string, data []byte) error {
	tmp, err := os.CreateTemp(store.dir, ".object-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	zipper := gzip.NewWriter(tmp)
	if _, err = zipper.Write(data); err == nil {
		err = zipper.Close()
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(store.dir, hash))
}

// Get returns the canonical bytes stored under hash, decompressing
// gzip-encoded objects.
func (store *FileObjectStore) Get(hash string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(store.dir, hash))
	if os.IsNotExist(err) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	if !isGzip(data) {
		return data, nil
	}
	unzipper, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer unzipper.Close()
	return io.ReadAll(unzipper)
}

// Match scans the object directory for hashes sharing the given prefix.
func (store *FileObjectStore) Match(prefix string) ([]string, error) {
	entries, err := os.ReadDir(store.dir)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// Close is a no-op to satisfy the ObjectStore interface
func (store *FileObjectStore) Close() error {
	return nil
}

func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// FileStableStore keeps each key as a plain file in a directory. The
// HEAD pointer ends up as a file named HEAD holding the hex hash.
type FileStableStore struct {
	dir string
}

// NewFileStableStore returns a FileStableStore rooted at dir.
func NewFileStableStore(dir string) *FileStableStore {
	return &FileStableStore{dir: dir}
}

// Open creates the directory if needed.
func (store *FileStableStore) Open() error {
	return os.MkdirAll(store.dir, 0o755)
}

// Get reads the value of key from its file.
func (store *FileStableStore) Get(key []byte) ([]byte, error) {
	value, err := os.ReadFile(filepath.Join(store.dir, string(key)))
	if os.IsNotExist(err) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

// Set replaces the value of key via a temporary file and rename, so the
// pointer is either the old value or the new one, never a torn write.
func (store *FileStableStore) Set(key, value []byte) error {
	tmp, err := os.CreateTemp(store.dir, ".key-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(value); err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(store.dir, string(key)))
}

// Close is a no-op to satisfy the StableStore interface
func (store *FileStableStore) Close() error {
	return nil
}
