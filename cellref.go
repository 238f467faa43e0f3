package xlnest

import (
	"fmt"
	"strings"
)

// CellRef is a 0-based grid position, printed in A1 notation.
type CellRef struct {
	Row int
	Col int
}

// NewCellRef creates a CellRef from 0-based row and column.
func NewCellRef(row, col int) CellRef {
	return CellRef{Row: row, Col: col}
}

// ParseCellRef parses an A1-style reference like "B3" or "$B$3".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}

	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}

	col, err := NameToCol(s[:i])
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}

	row := 0
	for _, ch := range s[i:] {
		if ch < '0' || ch > '9' {
			return CellRef{}, fmt.Errorf("invalid row in cell reference: %q", s)
		}
		row = row*10 + int(ch-'0')
	}
	if row < 1 {
		return CellRef{}, fmt.Errorf("invalid row number in cell reference: %q", s)
	}

	return CellRef{Row: row - 1, Col: col}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// String formats the reference as "B3".
func (c CellRef) String() string {
	return fmt.Sprintf("%s%d", ColToName(c.Col), c.Row+1)
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA"
func ColToName(col int) string {
	result := ""
	col++
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}
