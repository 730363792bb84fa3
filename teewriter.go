package bok

import "io"

// TeeWriter writes everything it receives to both an underlying sink and
// a digest accumulator. It is used to compute an entry's content hash in
// the same pass that serializes it, so the persisted bytes and the
// returned hash always correspond to the same content.
type TeeWriter struct {
	sink   io.Writer
	digest io.Writer
}

// NewTeeWriter returns a TeeWriter forwarding to sink and digest.
func NewTeeWriter(sink, digest io.Writer) *TeeWriter {
	return &TeeWriter{sink: sink, digest: digest}
}

// Write forwards p to the sink and the bytes the sink accepted to the
// digest. It returns the smaller of the two accepted counts so a short
// write on either side is surfaced rather than silently dropped.
func (tee *TeeWriter) Write(p []byte) (int, error) {
	n1, err := tee.sink.Write(p)
	n2, err2 := tee.digest.Write(p[:n1])
	if err == nil {
		err = err2
	}
	n := n1
	if n2 < n {
		n = n2
	}
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Flush flushes the sink and the digest if they support it.
func (tee *TeeWriter) Flush() error {
	if f, ok := tee.sink.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	if f, ok := tee.digest.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
