package bok

// Side is the posting side of an EntryLine. The values double as the
// wire encoding.
type Side uint8

const (
	// Credit side
	Credit Side = 0x00
	// Debit side
	Debit Side = 0x01
)

// String returns the side name
func (side Side) String() string {
	switch side {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	default:
		return "unknown"
	}
}

// EntryLine is one leg of a double-entry posting. Amount is in the
// smallest currency unit and never negative.
type EntryLine struct {
	Account     string
	Amount      uint64
	Side        Side
	Description *string
}

// NewEntryLine returns an EntryLine. description may be nil.
func NewEntryLine(account string, amount uint64, side Side, description *string) EntryLine {
	return EntryLine{
		Account:     account,
		Amount:      amount,
		Side:        side,
		Description: description,
	}
}

// Equal reports whether both lines have the same content.
func (line EntryLine) Equal(other EntryLine) bool {
	if line.Account != other.Account || line.Amount != other.Amount || line.Side != other.Side {
		return false
	}
	if (line.Description == nil) != (other.Description == nil) {
		return false
	}
	return line.Description == nil || *line.Description == *other.Description
}

// Balanced reports whether the debit and credit totals of lines match.
func Balanced(lines []EntryLine) bool {
	var debit, credit uint64
	for _, line := range lines {
		switch line.Side {
		case Debit:
			debit += line.Amount
		case Credit:
			credit += line.Amount
		}
	}
	return debit == credit
}
