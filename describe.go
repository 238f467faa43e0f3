package xlnest

import (
	"fmt"
	"strings"
)

// Describe normalizes tab-separated text and returns a human-readable outline of the
// data origin and the row and column group trees. Useful when checking how an export
// will be grouped.
func Describe(text string, opts ...Option) (string, error) {
	return NewNormalizer(opts...).Describe(Parse(text))
}

// Describe returns the outline for g.
func (n *Normalizer) Describe(g Grid) (string, error) {
	tree, o, err := n.BuildTree(g)
	if err != nil {
		return "", err
	}
	return DescribeTable(o, Flatten(tree)), nil
}

// DescribeTable formats the outline Describe prints for a table already flattened
// from the data region at o.
func DescribeTable(o Origin, t FlattenedTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Origin: %s\n", o)
	if o.Empty() {
		b.WriteString("(no data)\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Key column: %s\n", ColToName(o.X-1))
	b.WriteString(Outline(t))
	return b.String()
}

// Outline lists the row and column group trees of t, one title per line, indented
// by depth.
//
//	Rows (1):
//	  Key1
//	Columns (2):
//	  EN
//	    Title
//	    Body
func Outline(t FlattenedTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rows (%d):\n", countLeaves(t.RowGroups))
	outlineGroups(&b, t.RowGroups, 1)
	fmt.Fprintf(&b, "Columns (%d):\n", countLeaves(t.ColumnGroups))
	outlineGroups(&b, t.ColumnGroups, 1)
	return b.String()
}

func outlineGroups(b *strings.Builder, groups []GroupSummary, indent int) {
	prefix := strings.Repeat("  ", indent)
	for _, g := range groups {
		title := g.Title
		if title == "" {
			title = "(blank)"
		}
		b.WriteString(prefix)
		b.WriteString(title)
		b.WriteByte('\n')
		outlineGroups(b, g.Groups, indent+1)
	}
}
