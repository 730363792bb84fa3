package bok

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"io"
	"testing"
)

// shortWriter accepts at most limit bytes per call without reporting an
// error, to exercise the tee's short-write handling.
type shortWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		p = p[:w.limit]
	}
	return w.buf.Write(p)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestTeeWriter_WritesBoth(t *testing.T) {
	var sink bytes.Buffer
	digest := sha256.New()
	tee := NewTeeWriter(&sink, digest)

	payload := []byte("double entry")
	n, err := tee.Write(payload)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(payload) {
		t.Fatalf("wrote %d bytes, want %d", n, len(payload))
	}
	if !bytes.Equal(sink.Bytes(), payload) {
		t.Fatal("sink content mismatch")
	}

	want := sha256.Sum256(payload)
	if !bytes.Equal(digest.Sum(nil), want[:]) {
		t.Fatal("digest mismatch")
	}
}

func TestTeeWriter_ShortWrite(t *testing.T) {
	sink := &shortWriter{limit: 4}
	digest := sha256.New()
	tee := NewTeeWriter(sink, digest)

	n, err := tee.Write([]byte("0123456789"))
	if n != 4 {
		t.Fatalf("accepted %d bytes, want 4", n)
	}
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatal("short write should be surfaced, got", err)
	}
	// Only the bytes the sink accepted may reach the digest, or the
	// hash would no longer describe the persisted content.
	want := sha256.Sum256([]byte("0123"))
	if !bytes.Equal(digest.Sum(nil), want[:]) {
		t.Fatal("digest saw bytes the sink rejected")
	}
}

func TestTeeWriter_SinkError(t *testing.T) {
	tee := NewTeeWriter(failingWriter{}, sha256.New())
	if _, err := tee.Write([]byte("x")); err == nil {
		t.Fatal("sink error should propagate")
	}
}
