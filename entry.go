package bok

import "time"

// EntryKind identifies an Entry variant. The values double as the wire
// discriminant byte.
type EntryKind uint8

const (
	// KindOrigin marks the terminal ancestor of a chain.
	KindOrigin EntryKind = 0x00
	// KindRecord marks a journal entry.
	KindRecord EntryKind = 0x01
)

// Entry is a single element of the chain: either the Origin that starts
// it or a Record linked to its predecessor by hash. Entries are
// constructed once, persisted immutably and never modified.
type Entry interface {
	Kind() EntryKind

	// Equal reports whether the entry has the same content as other.
	Equal(other Entry) bool

	sealed()
}

// Origin marks the start of a chain. It has no predecessor.
type Origin struct {
	// Year the chain accounts for.
	Year uint64
	// Timestamp is the creation time, truncated to whole seconds.
	Timestamp time.Time
}

// NewOrigin returns an Origin for the given year stamped with the
// current time.
func NewOrigin(year uint64) *Origin {
	return &Origin{
		Year:      year,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
}

// Kind returns KindOrigin
func (origin *Origin) Kind() EntryKind { return KindOrigin }

func (origin *Origin) sealed() {}

// Equal reports whether other is an Origin with the same year and
// creation instant.
func (origin *Origin) Equal(other Entry) bool {
	o, ok := other.(*Origin)
	if !ok {
		return false
	}
	return origin.Year == o.Year && origin.Timestamp.Equal(o.Timestamp)
}

// Record is a journal entry in the chain. Previous holds the hex hash of
// its immediate predecessor, which may be another Record or the Origin.
type Record struct {
	// Timestamp is the creation time, truncated to whole seconds.
	Timestamp time.Time
	// EventDate is the calendar date the entry accounts for.
	EventDate time.Time
	// Name is a short label for the entry.
	Name string
	// Description is free-form text.
	Description string
	// Lines are the posting legs of the entry, in order.
	Lines []EntryLine
	// Previous is the hex-encoded hash of the predecessor entry.
	Previous string
}

// NewRecord returns a Record for the given event date linked to the
// entry identified by previous, stamped with the current time.
func NewRecord(date time.Time, name, description string, lines []EntryLine, previous string) *Record {
	year, month, day := date.Date()
	return &Record{
		Timestamp:   time.Now().UTC().Truncate(time.Second),
		EventDate:   time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Name:        name,
		Description: description,
		Lines:       lines,
		Previous:    previous,
	}
}

// Kind returns KindRecord
func (record *Record) Kind() EntryKind { return KindRecord }

func (record *Record) sealed() {}

// Equal reports whether other is a Record with the same content,
// comparing timestamps as instants and lines in order.
func (record *Record) Equal(other Entry) bool {
	o, ok := other.(*Record)
	if !ok {
		return false
	}
	if !record.Timestamp.Equal(o.Timestamp) ||
		!record.EventDate.Equal(o.EventDate) ||
		record.Name != o.Name ||
		record.Description != o.Description ||
		record.Previous != o.Previous ||
		len(record.Lines) != len(o.Lines) {
		return false
	}
	for i := range record.Lines {
		if !record.Lines[i].Equal(o.Lines[i]) {
			return false
		}
	}
	return true
}

// Balanced reports whether the record's debit and credit totals match.
// The ledger never enforces this; it is provided for callers that want
// to check before appending.
func (record *Record) Balanced() bool {
	return Balanced(record.Lines)
}
