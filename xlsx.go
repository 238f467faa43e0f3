package xlnest

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXFile opens an xlsx workbook and reads one sheet into a Grid.
func ReadXLSXFile(path, sheet string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer f.Close()
	return ReadXLSX(f, sheet)
}

// ReadXLSX reads one sheet of an xlsx workbook into a Grid. An empty sheet name
// selects the first sheet. Merged ranges keep their value in the top-left cell only,
// which is the blank-span convention FillMerged expects, and every row is padded to
// the widest row so trailing merged header cells still count toward the data width.
func ReadXLSX(r io.Reader, sheet string) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	g := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]string, width)
		for j, v := range row {
			cells[j] = cleanCell(v)
		}
		g[i] = cells
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("read merged cells from sheet %q: %w", sheet, err)
	}
	for _, m := range merges {
		top, err := ParseCellRef(m.GetStartAxis())
		if err != nil {
			return nil, fmt.Errorf("merged range start %q: %w", m.GetStartAxis(), err)
		}
		bottom, err := ParseCellRef(m.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("merged range end %q: %w", m.GetEndAxis(), err)
		}
		for r := top.Row; r <= bottom.Row && r < len(g); r++ {
			for c := top.Col; c <= bottom.Col && c < len(g[r]); c++ {
				if r != top.Row || c != top.Col {
					g[r][c] = ""
				}
			}
		}
	}

	return g, nil
}

// WriteXLSX writes t as a single-sheet workbook laid out like FormatTSV, with group
// titles in real merged cells. An empty sheet name keeps "Sheet1".
func WriteXLSX(t FlattenedTable, w io.Writer, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("rename sheet to %q: %w", sheet, err)
		}
	}

	l := newLayout(t)
	for r, row := range l.cells {
		for c, v := range row {
			if v == "" {
				continue
			}
			if err := f.SetCellStr(sheet, NewCellRef(r, c).String(), v); err != nil {
				return fmt.Errorf("write cell %s: %w", NewCellRef(r, c), err)
			}
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	for _, s := range l.spans {
		topLeft, bottomRight := s.from.String(), s.to.String()
		if s.from != s.to {
			if err := f.MergeCell(sheet, topLeft, bottomRight); err != nil {
				return fmt.Errorf("merge cells %s:%s: %w", topLeft, bottomRight, err)
			}
		}
		if err := f.SetCellStyle(sheet, topLeft, bottomRight, headerStyle); err != nil {
			return fmt.Errorf("style cells %s:%s: %w", topLeft, bottomRight, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
