package xlnest

// GroupSummary is one row or column group in a FlattenedTable.
type GroupSummary struct {
	Title  string         `json:"title" yaml:"title"`
	Groups []GroupSummary `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// FlattenedTable pairs ordered group metadata with a row-major matrix of cell values.
type FlattenedTable struct {
	RowGroups    []GroupSummary `json:"rowGroups" yaml:"rowGroups"`
	ColumnGroups []GroupSummary `json:"columnGroups" yaml:"columnGroups"`
	Cells        [][]string     `json:"cells" yaml:"cells"`
}

// EmptyTable returns a table whose fields encode as empty lists.
func EmptyTable() FlattenedTable {
	return FlattenedTable{
		RowGroups:    []GroupSummary{},
		ColumnGroups: []GroupSummary{},
		Cells:        [][]string{},
	}
}

// Flatten turns a group tree into a FlattenedTable.
//
// Row groups follow the row-group nodes; below the deepest row level each data key
// becomes a leaf row group, so there is one leaf row group per matrix row. Column
// groups come from the column subtree of the first row context. Cells are emitted
// row by row: for every row context and key, one value per column leaf.
func Flatten(t *Tree) FlattenedTable {
	if t == nil || t.Roots.Len() == 0 {
		return EmptyTable()
	}

	out := EmptyTable()
	out.RowGroups = rowGroups(t.Roots)
	out.ColumnGroups = columnGroups(columnRoots(t.Roots))

	columnCount := countLeaves(out.ColumnGroups)
	if columnCount == 0 {
		return out
	}

	var flat []string
	eachRowContext(t.Roots, func(ctx *Siblings) {
		for _, key := range contextKeys(ctx) {
			eachLeaf(ctx, func(leaf *Node) {
				v, _ := leaf.Content.Get(key)
				flat = append(flat, v)
			})
		}
	})

	for start := 0; start+columnCount <= len(flat); start += columnCount {
		out.Cells = append(out.Cells, flat[start:start+columnCount:start+columnCount])
	}
	return out
}

// eachLeaf visits the leaves under list depth-first in order.
func eachLeaf(list *Siblings, fn func(*Node)) {
	for _, n := range list.Nodes() {
		if n.Content != nil {
			fn(n)
			continue
		}
		eachLeaf(n.Children, fn)
	}
}

// eachRowContext visits, in order, every list directly below the deepest row level.
// With no row-header columns the roots themselves are the only context.
func eachRowContext(list *Siblings, fn func(*Siblings)) {
	if !list.isRowLevel() {
		fn(list)
		return
	}
	for _, n := range list.Nodes() {
		eachRowContext(n.Children, fn)
	}
}

// contextKeys returns the data keys under a row context in first-seen order.
func contextKeys(ctx *Siblings) []string {
	var keys []string
	seen := make(map[string]bool)
	eachLeaf(ctx, func(leaf *Node) {
		for _, k := range leaf.Content.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	})
	return keys
}

func rowGroups(list *Siblings) []GroupSummary {
	if !list.isRowLevel() {
		keys := contextKeys(list)
		groups := make([]GroupSummary, len(keys))
		for i, k := range keys {
			groups[i] = GroupSummary{Title: k}
		}
		return groups
	}
	groups := make([]GroupSummary, 0, list.Len())
	for _, n := range list.Nodes() {
		g := GroupSummary{Title: n.Title}
		if sub := rowGroups(n.Children); len(sub) > 0 {
			g.Groups = sub
		}
		groups = append(groups, g)
	}
	return groups
}

// columnRoots drills through the first row group at each level down to the list
// holding column groups.
func columnRoots(list *Siblings) *Siblings {
	for list.isRowLevel() {
		list = list.First().Children
	}
	return list
}

func columnGroups(list *Siblings) []GroupSummary {
	groups := make([]GroupSummary, 0, list.Len())
	for _, n := range list.Nodes() {
		g := GroupSummary{Title: n.Title}
		if n.Children != nil {
			if sub := columnGroups(n.Children); len(sub) > 0 {
				g.Groups = sub
			}
		}
		groups = append(groups, g)
	}
	return groups
}

func countLeaves(groups []GroupSummary) int {
	n := 0
	for _, g := range groups {
		if len(g.Groups) == 0 {
			n++
			continue
		}
		n += countLeaves(g.Groups)
	}
	return n
}

// Depth returns the number of levels in groups, 0 when empty.
func Depth(groups []GroupSummary) int {
	d := 0
	for _, g := range groups {
		if sub := Depth(g.Groups) + 1; sub > d {
			d = sub
		}
	}
	return d
}

// LeafPaths returns the title path of every leaf group in order.
func LeafPaths(groups []GroupSummary) [][]string {
	var out [][]string
	var walk func(gs []GroupSummary, prefix []string)
	walk = func(gs []GroupSummary, prefix []string) {
		for _, g := range gs {
			p := append(append([]string(nil), prefix...), g.Title)
			if len(g.Groups) == 0 {
				out = append(out, p)
				continue
			}
			walk(g.Groups, p)
		}
	}
	walk(groups, nil)
	return out
}
