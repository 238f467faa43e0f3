package output

// Table is a headed grid of strings for FormatTable.
type Table struct {
	Headers []string
	Rows    [][]string
}
