package bok

import "errors"

var (
	// ErrNotFound is returned when a reference or hash does not resolve
	// to any stored entry.
	ErrNotFound = errors.New("entry not found")

	// ErrAmbiguousRef is returned when a hash prefix matches more than
	// one stored entry.
	ErrAmbiguousRef = errors.New("ambiguous reference")

	// ErrLedgerExists is returned by Create when the target location
	// already holds a chain.
	ErrLedgerExists = errors.New("ledger already exists")

	// ErrUnexpectedEOF is returned when a serialized entry ends before
	// all of its declared fields have been read.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrInvalidData is returned when a serialized entry contains bytes
	// that cannot represent a valid entry: an unknown discriminant, an
	// out-of-range enum byte, invalid UTF-8 or an invalid date.
	ErrInvalidData = errors.New("invalid data")
)
