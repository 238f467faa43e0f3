package xlnest

import "strings"

// FormatTSV renders t back into the merged-cell convention: a blank top-left block,
// one header row per column-group level, one header column per row-group level with
// the data keys in the last one, and each group title written once at the start of
// its span. Normalize(FormatTSV(t)) reproduces t when no title is blank.
func FormatTSV(t FlattenedTable) string {
	l := newLayout(t)
	lines := make([]string, len(l.cells))
	for i, row := range l.cells {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}

// span is a header title and the cells it covers, inclusive.
type span struct {
	from CellRef
	to   CellRef
}

// layout is the sheet form of a FlattenedTable shared by the renderers.
type layout struct {
	cells Grid
	spans []span
}

func newLayout(t FlattenedTable) layout {
	rowLeaves := LeafPaths(t.RowGroups)
	colLeaves := LeafPaths(t.ColumnGroups)
	x := Depth(t.RowGroups)
	y := Depth(t.ColumnGroups)

	l := layout{cells: make(Grid, y+len(rowLeaves))}
	for i := range l.cells {
		l.cells[i] = make([]string, x+len(colLeaves))
	}

	for level := 0; level < y; level++ {
		for _, run := range headerRuns(colLeaves, level) {
			l.cells[level][x+run.start] = run.title
			l.spans = append(l.spans, span{
				from: NewCellRef(level, x+run.start),
				to:   NewCellRef(level, x+run.end),
			})
		}
	}

	// Group titles fill columns 0..x-2; the key, always the last path element,
	// goes to column x-1.
	for level := 0; level < x-1; level++ {
		groupPaths := make([][]string, len(rowLeaves))
		for i, p := range rowLeaves {
			groupPaths[i] = p[:len(p)-1]
		}
		for _, run := range headerRuns(groupPaths, level) {
			l.cells[y+run.start][level] = run.title
			l.spans = append(l.spans, span{
				from: NewCellRef(y+run.start, level),
				to:   NewCellRef(y+run.end, level),
			})
		}
	}
	for i, p := range rowLeaves {
		l.cells[y+i][x-1] = p[len(p)-1]
	}

	for i, row := range t.Cells {
		for j, v := range row {
			if j < len(colLeaves) && i < len(rowLeaves) {
				l.cells[y+i][x+j] = v
			}
		}
	}
	return l
}

type headerRun struct {
	title      string
	start, end int
}

// headerRuns groups consecutive paths sharing the same prefix through level.
// Paths shorter than level+1 produce no run.
func headerRuns(paths [][]string, level int) []headerRun {
	var runs []headerRun
	for i, p := range paths {
		if len(p) <= level {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].end == i-1 && samePrefix(paths[i-1], p, level) {
			runs[n-1].end = i
			continue
		}
		runs = append(runs, headerRun{title: p[level], start: i, end: i})
	}
	return runs
}

func samePrefix(a, b []string, level int) bool {
	if len(a) <= level || len(b) <= level {
		return false
	}
	for k := 0; k <= level; k++ {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}
