package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileObjectStore(t *testing.T) {
	store := NewFileObjectStore(t.TempDir())
	if err := store.Open(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Put("aabbcc", []byte("payload")); err != nil {
		t.Fatal(err)
	}
	data, err := store.Get("aabbcc")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("payload")) {
		t.Fatal("wrong value")
	}

	if _, err = store.Get("zz"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatal("should fail with object not found, got", err)
	}
}

func TestFileObjectStore_WritesGzip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileObjectStore(dir)
	if err := store.Open(); err != nil {
		t.Fatal(err)
	}

	if err := store.Put("aa11", []byte("compressed payload")); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "aa11"))
	if err != nil {
		t.Fatal(err)
	}
	if !isGzip(raw) {
		t.Fatal("new objects should be gzip encoded on disk")
	}
}

func TestFileObjectStore_ReadsRawObjects(t *testing.T) {
	dir := t.TempDir()
	store := NewFileObjectStore(dir)
	if err := store.Open(); err != nil {
		t.Fatal(err)
	}

	// An archive produced without compression must still be readable.
	if err := os.WriteFile(filepath.Join(dir, "bb22"), []byte("plain payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := store.Get("bb22")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("plain payload")) {
		t.Fatal("wrong value")
	}
}

func TestFileObjectStore_Match(t *testing.T) {
	store := NewFileObjectStore(t.TempDir())
	if err := store.Open(); err != nil {
		t.Fatal(err)
	}

	for _, hash := range []string{"abc111", "abc222", "def333"} {
		if err := store.Put(hash, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	matches, err := store.Match("abc")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 || matches[0] != "abc111" || matches[1] != "abc222" {
		t.Fatalf("wrong matches: %v", matches)
	}

	matches, err = store.Match("abc1")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0] != "abc111" {
		t.Fatalf("wrong matches: %v", matches)
	}

	matches, err = store.Match("zzz")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("wrong matches: %v", matches)
	}
}

func TestFileStableStore(t *testing.T) {
	store := NewFileStableStore(t.TempDir())
	if err := store.Open(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.Get([]byte("HEAD")); !errors.Is(err, ErrKeyNotFound) {
		t.Fatal("should fail with key not found, got", err)
	}

	if err := store.Set([]byte("HEAD"), []byte("hash-one")); err != nil {
		t.Fatal(err)
	}
	if err := store.Set([]byte("HEAD"), []byte("hash-two")); err != nil {
		t.Fatal(err)
	}

	val, err := store.Get([]byte("HEAD"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(val, []byte("hash-two")) {
		t.Fatal("wrong value")
	}
}
