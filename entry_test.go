package bok

import (
	"testing"
	"time"
)

func TestEntry_Equal(t *testing.T) {
	record := testRecord()
	origin := testOrigin()

	if record.Equal(origin) || origin.Equal(record) {
		t.Fatal("different kinds should not be equal")
	}
	if !record.Equal(testRecord()) {
		t.Fatal("identical records should be equal")
	}

	other := testRecord()
	other.Lines[0].Description = nil
	if record.Equal(other) {
		t.Fatal("records with different line descriptions should not be equal")
	}

	// The same instant in another location is still equal.
	shifted := testRecord()
	shifted.Timestamp = shifted.Timestamp.In(time.FixedZone("CET", 3600))
	if !record.Equal(shifted) {
		t.Fatal("timestamps should compare as instants")
	}
}

func TestBalanced(t *testing.T) {
	if !Balanced(testLines()) {
		t.Fatal("matching debit and credit totals should balance")
	}

	lines := testLines()
	lines[0].Amount = 99
	if Balanced(lines) {
		t.Fatal("mismatched totals should not balance")
	}

	if !Balanced(nil) {
		t.Fatal("no lines should balance trivially")
	}
}

func TestNewRecord_NormalizesEventDate(t *testing.T) {
	date := time.Date(2025, time.May, 1, 13, 37, 42, 999, time.UTC)
	record := NewRecord(date, "A1", "", nil, testRecord().Previous)

	want := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	if !record.EventDate.Equal(want) {
		t.Fatalf("event date %s, want %s", record.EventDate, want)
	}
	if record.Timestamp.Nanosecond() != 0 {
		t.Fatal("timestamp should be truncated to whole seconds")
	}
}
