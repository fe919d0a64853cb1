package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellReference is a 1-based (column, row) position parsed from an A1-style address.
type CellReference struct {
	Column int
	Row    int
}

// ParseCellReference parses an address such as "B7" or "aa12".
// Letters are read as bijective base-26, so "A"=1, "Z"=26 and "AA"=27.
// Neither the column nor the row is capped at Excel's sheet limits.
func ParseCellReference(address string) (CellReference, error) {
	s := strings.ToUpper(strings.TrimSpace(address))

	split := 0
	for split < len(s) && s[split] >= 'A' && s[split] <= 'Z' {
		split++
	}
	if split == 0 || split == len(s) {
		return CellReference{}, fmt.Errorf("%w: invalid cell reference %q", ErrFormat, address)
	}
	for i := split; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return CellReference{}, fmt.Errorf("%w: invalid cell reference %q", ErrFormat, address)
		}
	}

	col := 0
	for i := 0; i < split; i++ {
		if col > (math.MaxInt-26)/26 {
			return CellReference{}, fmt.Errorf("%w: column overflow in %q", ErrFormat, address)
		}
		col = col*26 + int(s[i]-'A'+1)
	}

	row, err := strconv.Atoi(s[split:])
	if err != nil {
		return CellReference{}, fmt.Errorf("%w: row out of range in %q", ErrFormat, address)
	}
	if row < 1 {
		return CellReference{}, fmt.Errorf("%w: row must be positive in %q", ErrFormat, address)
	}

	return CellReference{Column: col, Row: row}, nil
}

// String renders the canonical upper-case address.
func (r CellReference) String() string {
	return ColumnName(r.Column) + strconv.Itoa(r.Row)
}

// ColumnName converts a 1-based column number to its letters.
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}
