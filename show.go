package bok

import (
	"fmt"
	"strings"
)

// FormatEntry renders an entry as a multi-line debit/credit table:
//
//	2025-05-01: My Title
//	A long description of what happened.
//
//	               debit |     credit
//	account 1        100 |            # Short description.
//	account 2            |        100
func FormatEntry(entry Entry) string {
	switch e := entry.(type) {
	case *Origin:
		return fmt.Sprintf("----------------%d---------------\n", e.Year)
	case *Record:
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %s\n", e.EventDate.Format("2006-01-02"), e.Name)
		b.WriteString(e.Description)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "%10s %10s | %10s\n", "", "debit", "credit")
		for _, line := range e.Lines {
			debit, credit := "", ""
			if line.Side == Debit {
				debit = fmt.Sprintf("%d", line.Amount)
			} else {
				credit = fmt.Sprintf("%d", line.Amount)
			}
			fmt.Fprintf(&b, "%10s %10s | %10s", line.Account, debit, credit)
			if line.Description != nil {
				fmt.Fprintf(&b, " # %s", *line.Description)
			}
			b.WriteByte('\n')
		}
		return b.String()
	default:
		return ""
	}
}

// FormatEntryShort renders an entry as a single line, truncating long
// descriptions.
func FormatEntryShort(entry Entry) string {
	switch e := entry.(type) {
	case *Origin:
		return fmt.Sprintf("----------------%d---------------", e.Year)
	case *Record:
		const maxLen = 60
		description := e.Description
		if len(description) > maxLen {
			cut := []rune(description)
			if len(cut) > maxLen {
				cut = cut[:maxLen]
			}
			description = string(cut) + "..."
		}
		return fmt.Sprintf("%s, %s", e.Name, description)
	default:
		return ""
	}
}
