package store

import (
	"bytes"
	"errors"
	"testing"
)

func TestBadgerObjectStore(t *testing.T) {
	store := NewBadgerObjectStore(t.TempDir())
	if err := store.Open(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, hash := range []string{"abc111", "abc222", "def333"} {
		if err := store.Put(hash, []byte("data-"+hash)); err != nil {
			t.Fatal(err)
		}
	}

	data, err := store.Get("abc222")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("data-abc222")) {
		t.Fatal("wrong value")
	}

	if _, err = store.Get("missing"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatal("should fail with object not found, got", err)
	}

	matches, err := store.Match("abc")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 || matches[0] != "abc111" || matches[1] != "abc222" {
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

func TestBadgerStableStore(t *testing.T) {
	store := NewBadgerStableStore(t.TempDir())
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
