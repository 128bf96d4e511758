package table

import (
	"strconv"
)

// Kind is the storage type inferred from the values of a column.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	default:
		return "text"
	}
}

// numeric literals only, strconv also accepts "inf", "0x1p-2" and "1_000"
func isDecimal(s string) bool {
	digits := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '-' || c == '+':
			if i != 0 && s[i-1] != 'e' && s[i-1] != 'E' {
				return false
			}
		case c == '.' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	return digits > 0
}

// codes like "0100005" stay text so the leading zeros survive
func hasLeadingZero(s string) bool {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}

// KindOf infers the kind of a single value.
func KindOf(value string) Kind {
	if !isDecimal(value) || hasLeadingZero(value) {
		return KindText
	}
	_, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return KindInteger
	}
	_, err = strconv.ParseFloat(value, 64)
	if err == nil {
		return KindReal
	}
	return KindText
}

// Kind infers the kind of column: integer when every non-null value is an
// integer, real when every non-null value is a number and text otherwise.
// A column without any non-null value is text.
func (t *Table) Kind(column string) (Kind, error) {
	pos, err := t.Index(column)
	if err != nil {
		return KindText, err
	}
	return t.kindAt(pos), nil
}

func (t *Table) kindAt(pos int) Kind {
	kind := KindInteger
	seen := false
	for _, row := range t.rows {
		cell := row[pos]
		if !cell.Valid {
			continue
		}
		seen = true
		switch KindOf(cell.Value) {
		case KindText:
			return KindText
		case KindReal:
			kind = KindReal
		}
	}
	if !seen {
		return KindText
	}
	return kind
}

// Kinds returns the inferred kind of every column in order.
func (t *Table) Kinds() []Kind {
	out := make([]Kind, len(t.columns))
	for i := range t.columns {
		out[i] = t.kindAt(i)
	}
	return out
}
