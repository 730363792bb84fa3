package bok

import "io"

// Walker lazily walks the chain backward from a starting entry to the
// Origin, following predecessor hashes. A fresh Walker from the same
// starting hash always yields the same sequence since entries are
// immutable.
type Walker struct {
	ledger *Ledger
	next   string
	last   string
	done   bool
}

// Walk resolves ref and returns a Walker positioned at that entry.
func (ledger *Ledger) Walk(ref string) (*Walker, error) {
	hash, err := ledger.ResolveRef(ref)
	if err != nil {
		return nil, err
	}
	return &Walker{ledger: ledger, next: hash}, nil
}

// Next returns the next entry walking backward, ending with the Origin.
// After the Origin has been returned, Next returns io.EOF.
func (walker *Walker) Next() (Entry, error) {
	if walker.done {
		return nil, io.EOF
	}
	entry, err := walker.ledger.getByHash(walker.next)
	if err != nil {
		return nil, err
	}
	walker.last = walker.next
	switch e := entry.(type) {
	case *Origin:
		walker.done = true
	case *Record:
		walker.next = e.Previous
	}
	return entry, nil
}

// Hash returns the hash of the entry most recently returned by Next. It
// is empty before the first call.
func (walker *Walker) Hash() string {
	return walker.last
}
