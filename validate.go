package xlnest

import (
	"fmt"
	"strings"
)

// Severity indicates how much a validation issue matters.
type Severity int

const (
	SeverityWarning Severity = iota // output will silently merge or overwrite data
	SeverityInfo                    // output is well-formed but may surprise
)

// ValidationIssue is one structural problem in a grid.
type ValidationIssue struct {
	Severity Severity
	Cell     CellRef
	Message  string
}

// String formats the issue as "[WARN] B4: message" or "[INFO] ...".
func (v ValidationIssue) String() string {
	sev := "WARN"
	if v.Severity == SeverityInfo {
		sev = "INFO"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.Cell, v.Message)
}

// Validate checks tab-separated text for structure that Normalize resolves silently:
// group titles that merge with an earlier, non-adjacent group of the same title,
// repeated keys within a row group, and blank titles or keys. A non-nil error means
// the input is malformed and cannot be normalized at all.
func Validate(text string, opts ...Option) ([]ValidationIssue, error) {
	return NewNormalizer(opts...).Validate(Parse(text))
}

// Validate checks g. The select option is ignored: the whole grid is checked.
func (n *Normalizer) Validate(g Grid) ([]ValidationIssue, error) {
	filled, o, err := n.Prepare(g)
	if err != nil {
		return nil, err
	}
	if o.Empty() {
		return nil, nil
	}

	var issues []ValidationIssue
	issues = append(issues, validateRowTitles(filled, o)...)
	issues = append(issues, validateColumnTitles(filled, o)...)
	issues = append(issues, validateKeys(filled, o)...)
	return issues, nil
}

// runTracker notices a title that starts a new run under a parent after the same
// title already had a run there.
type runTracker struct {
	last map[string]string
	seen map[string]map[string]bool
}

func newRunTracker() *runTracker {
	return &runTracker{last: make(map[string]string), seen: make(map[string]map[string]bool)}
}

// next records title under parent and reports whether it reopens an earlier run.
func (rt *runTracker) next(parent, title string) bool {
	if last, ok := rt.last[parent]; ok && last == title {
		return false
	}
	rt.last[parent] = title
	if rt.seen[parent] == nil {
		rt.seen[parent] = make(map[string]bool)
	}
	if rt.seen[parent][title] {
		return true
	}
	rt.seen[parent][title] = true
	return false
}

func validateRowTitles(g Grid, o Origin) []ValidationIssue {
	var issues []ValidationIssue
	for c := 0; c < o.X-1; c++ {
		rt := newRunTracker()
		blankReported := false
		for r := o.Y; r < o.Y+o.Height; r++ {
			title := g.At(r, c)
			parent := pathKey(g, r, 0, c)
			if title == "" && !blankReported {
				blankReported = true
				issues = append(issues, ValidationIssue{
					Severity: SeverityInfo,
					Cell:     NewCellRef(r, c),
					Message:  "row group title is blank; rows are grouped under an empty title",
				})
			}
			if rt.next(parent, title) {
				issues = append(issues, ValidationIssue{
					Severity: SeverityWarning,
					Cell:     NewCellRef(r, c),
					Message:  fmt.Sprintf("row group %q appears again after other groups and will be merged with the earlier one", title),
				})
			}
		}
	}
	return issues
}

func validateColumnTitles(g Grid, o Origin) []ValidationIssue {
	var issues []ValidationIssue
	for r := 0; r < o.Y; r++ {
		rt := newRunTracker()
		blankReported := false
		for c := o.X; c < o.X+o.Width; c++ {
			title := g.At(r, c)
			var parts []string
			for pr := 0; pr < r; pr++ {
				parts = append(parts, g.At(pr, c))
			}
			parent := strings.Join(parts, "\x00")
			if title == "" && !blankReported {
				blankReported = true
				issues = append(issues, ValidationIssue{
					Severity: SeverityInfo,
					Cell:     NewCellRef(r, c),
					Message:  "column group title is blank; cells are grouped under an empty title",
				})
			}
			if rt.next(parent, title) {
				issues = append(issues, ValidationIssue{
					Severity: SeverityWarning,
					Cell:     NewCellRef(r, c),
					Message:  fmt.Sprintf("column group %q appears again after other groups and will be merged with the earlier one", title),
				})
			}
		}
	}
	return issues
}

func validateKeys(g Grid, o Origin) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[string]bool)
	keyCol := o.X - 1
	for r := o.Y; r < o.Y+o.Height; r++ {
		key := g.At(r, keyCol)
		if key == "" {
			issues = append(issues, ValidationIssue{
				Severity: SeverityInfo,
				Cell:     NewCellRef(r, keyCol),
				Message:  "key is blank",
			})
		}
		id := pathKey(g, r, 0, keyCol) + "\x01" + key
		if seen[id] {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Cell:     NewCellRef(r, keyCol),
				Message:  fmt.Sprintf("key %q repeats within its row group; this row overwrites the earlier values", key),
			})
			continue
		}
		seen[id] = true
	}
	return issues
}

// pathKey joins the cells of row r in columns [from, to).
func pathKey(g Grid, r, from, to int) string {
	parts := make([]string, 0, to-from)
	for c := from; c < to; c++ {
		parts = append(parts, g.At(r, c))
	}
	return strings.Join(parts, "\x00")
}
