package store

import (
	"bytes"
	"errors"
	"testing"
)

func TestInMemObjectStore(t *testing.T) {
	store := NewInMemObjectStore()
	if err := store.Open(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Put("abc111", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("abc222", []byte("y")); err != nil {
		t.Fatal(err)
	}

	data, err := store.Get("abc111")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("x")) {
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
}

func TestInMemStableStore(t *testing.T) {
	store := NewInMemStableStore()
	if err := store.Open(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.Get([]byte("HEAD")); !errors.Is(err, ErrKeyNotFound) {
		t.Fatal("should fail with key not found, got", err)
	}

	if err := store.Set([]byte("HEAD"), []byte("value")); err != nil {
		t.Fatal(err)
	}
	val, err := store.Get([]byte("HEAD"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(val, []byte("value")) {
		t.Fatal("wrong value")
	}
}
