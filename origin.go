package xlnest

import "fmt"

// Origin locates the data region of a grid.
//
// X columns precede the data: columns 0..X-2 are row headers and X-1 is the key
// column. Y rows of column headers precede it.
type Origin struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Cell returns the top-left data cell.
func (o Origin) Cell() CellRef {
	return NewCellRef(o.Y, o.X)
}

// Empty reports whether the data region has no cells.
func (o Origin) Empty() bool {
	return o.Width == 0 || o.Height == 0
}

// String formats the origin as "B3 (4x1)".
func (o Origin) String() string {
	return fmt.Sprintf("%s (%dx%d)", o.Cell(), o.Width, o.Height)
}

// LocateOrigin scans row 0 and column 0 for their first non-empty cells.
// At least one key column and one column-header row are required, so the top-left
// cell must be blank.
func LocateOrigin(g Grid) (Origin, error) {
	if len(g) == 0 {
		return Origin{}, malformed("grid has no rows")
	}

	x := -1
	for c := range g[0] {
		if g[0][c] != "" {
			x = c
			break
		}
	}
	if x < 0 {
		return Origin{}, malformed("row 1 has no non-empty cell; column headers are missing")
	}

	y := -1
	for r := range g {
		if g.At(r, 0) != "" {
			y = r
			break
		}
	}
	if y < 0 {
		return Origin{}, malformed("column A has no non-empty cell; row keys are missing")
	}

	if x == 0 || y == 0 {
		return Origin{}, malformedAt(NewCellRef(0, 0), "top-left cell %q must be blank; at least one key column and one header row are required", g[0][0])
	}

	return originAt(g, x, y)
}

// originAt builds an Origin for an explicit data start, clamping the data size at 0.
func originAt(g Grid, x, y int) (Origin, error) {
	if x < 1 || y < 1 {
		return Origin{}, malformedAt(NewCellRef(y, x), "data origin needs at least one key column and one header row")
	}
	o := Origin{
		X:      x,
		Y:      y,
		Width:  g.Width() - x,
		Height: len(g) - y,
	}
	if o.Width < 0 {
		o.Width = 0
	}
	if o.Height < 0 {
		o.Height = 0
	}
	return o, nil
}
