package xlnest

import "strings"

// Grid is a rectangular-ish table of trimmed cell strings, rows × cells.
// Rows may have differing lengths; use At for reads.
type Grid [][]string

// Parse splits tab-separated text into a Grid.
// Rows are separated by "\n" and cells by "\t". Each cell loses one trailing "\r"
// and its surrounding whitespace.
func Parse(text string) Grid {
	lines := strings.Split(text, "\n")
	g := make(Grid, len(lines))
	for i, line := range lines {
		cells := strings.Split(line, "\t")
		row := make([]string, len(cells))
		for j, c := range cells {
			row[j] = cleanCell(c)
		}
		g[i] = row
	}
	return g
}

func cleanCell(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(s, "\r"))
}

// At returns the cell at row, col, or "" when the position is out of range.
func (g Grid) At(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Width returns the length of the first row, which defines the data width.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Column returns a copy of column col, one entry per row.
func (g Grid) Column(col int) []string {
	out := make([]string, len(g))
	for i := range g {
		out[i] = g.At(i, col)
	}
	return out
}

// Clone returns a deep copy with every row padded to at least minWidth cells.
func (g Grid) Clone(minWidth int) Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		n := len(row)
		if n < minWidth {
			n = minWidth
		}
		cp := make([]string, n)
		copy(cp, row)
		out[i] = cp
	}
	return out
}

// trimTrailingBlankRows drops rows at the end of g whose cells are all empty.
// Spreadsheet exports usually end with a newline, which would otherwise add a
// blank data row.
func trimTrailingBlankRows(g Grid) Grid {
	end := len(g)
	for end > 0 && isBlankRow(g[end-1]) {
		end--
	}
	return g[:end]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

// mapCells returns a copy of g with fn applied to every cell.
func mapCells(g Grid, fn func(string) string) Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		cp := make([]string, len(row))
		for j, c := range row {
			cp[j] = fn(c)
		}
		out[i] = cp
	}
	return out
}
