package bok

import (
	"strings"
	"testing"
)

func TestFormatEntry(t *testing.T) {
	record := testRecord()
	out := FormatEntry(record)

	for _, want := range []string{"2025-05-01: A1", "office supplies", "debit", "credit", "1910", "6110", "# paid in cash"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	origin := testOrigin()
	if !strings.Contains(FormatEntry(origin), "2025") {
		t.Fatal("origin output should contain the year")
	}
}

func TestFormatEntryShort_TruncatesDescription(t *testing.T) {
	record := testRecord()
	record.Description = strings.Repeat("long ", 30)
	out := FormatEntryShort(record)

	if !strings.HasPrefix(out, "A1, ") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.HasSuffix(out, "...") {
		t.Fatal("long description should be truncated")
	}
	if len(out) > 70 {
		t.Fatalf("output too long: %d chars", len(out))
	}
}
