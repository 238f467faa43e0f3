package xlnest

import "log/slog"

// Axis tells whether a header path segment comes from a row-header column or a
// column-header row.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

// String returns "row" or "column".
func (a Axis) String() string {
	if a == AxisColumn {
		return "column"
	}
	return "row"
}

// Segment is one step of a header path.
type Segment struct {
	Title string
	Axis  Axis
}

// HeaderPath returns the path of the data cell at (row, col): one AxisRow segment per
// row-header column 0..X-2, then one AxisColumn segment per header row 0..Y-1.
func HeaderPath(g Grid, o Origin, row, col int) []Segment {
	path := make([]Segment, 0, o.X-1+o.Y)
	for c := 0; c < o.X-1; c++ {
		path = append(path, Segment{Title: g.At(row, c), Axis: AxisRow})
	}
	for r := 0; r < o.Y; r++ {
		path = append(path, Segment{Title: g.At(r, col), Axis: AxisColumn})
	}
	return path
}

// NodeKind is fixed when a node is created.
type NodeKind int

const (
	RowGroup NodeKind = iota
	ColumnGroup
	Leaf
)

// String returns a short name for the kind.
func (k NodeKind) String() string {
	switch k {
	case RowGroup:
		return "row group"
	case ColumnGroup:
		return "column group"
	case Leaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is a group in the reconstructed header hierarchy. Group kinds hold Children,
// Leaf holds Content; the other field is always nil.
type Node struct {
	Title    string
	Kind     NodeKind
	Children *Siblings
	Content  *Content
}

func newNode(title string, kind NodeKind) *Node {
	n := &Node{Title: title, Kind: kind}
	if kind == Leaf {
		n.Content = NewContent()
	} else {
		n.Children = NewSiblings()
	}
	return n
}

// Siblings is an ordered node list with a title index. Nodes keep first-seen order.
type Siblings struct {
	nodes []*Node
	index map[string]int
}

// NewSiblings returns an empty list.
func NewSiblings() *Siblings {
	return &Siblings{index: make(map[string]int)}
}

// Find returns the node with the given title.
func (s *Siblings) Find(title string) (*Node, bool) {
	i, ok := s.index[title]
	if !ok {
		return nil, false
	}
	return s.nodes[i], true
}

func (s *Siblings) add(n *Node) {
	s.index[n.Title] = len(s.nodes)
	s.nodes = append(s.nodes, n)
}

// Len returns the number of nodes.
func (s *Siblings) Len() int { return len(s.nodes) }

// Nodes returns the nodes in first-seen order. The slice must not be modified.
func (s *Siblings) Nodes() []*Node { return s.nodes }

// First returns the first node, or nil when the list is empty.
func (s *Siblings) First() *Node {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[0]
}

// isRowLevel reports whether the list holds row groups.
func (s *Siblings) isRowLevel() bool {
	first := s.First()
	return first != nil && first.Kind == RowGroup
}

// Content is an ordered key→value map. A key keeps the position of its first
// insertion; later writes replace the value.
type Content struct {
	keys   []string
	values map[string]string
}

// NewContent returns an empty map.
func NewContent() *Content {
	return &Content{values: make(map[string]string)}
}

// Set stores value under key and reports whether an earlier value was overwritten.
func (c *Content) Set(key, value string) bool {
	if _, ok := c.values[key]; ok {
		c.values[key] = value
		return true
	}
	c.keys = append(c.keys, key)
	c.values[key] = value
	return false
}

// Get returns the value for key.
func (c *Content) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns keys in insertion order. The slice must not be modified.
func (c *Content) Keys() []string { return c.keys }

// Len returns the number of keys.
func (c *Content) Len() int { return len(c.keys) }

// Tree is the nested group hierarchy of one grid.
type Tree struct {
	Roots *Siblings
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{Roots: NewSiblings()}
}

// Insert walks path from the roots, creating missing nodes, and stores value under
// key in the leaf. Nodes are matched by title only. It reports whether the key
// already had a value in that leaf.
func (t *Tree) Insert(path []Segment, key, value string) (bool, error) {
	if len(path) == 0 {
		return false, malformed("empty header path")
	}

	parent := t.Roots
	var content *Content
	for i, seg := range path {
		last := i == len(path)-1
		n, ok := parent.Find(seg.Title)
		if !ok {
			kind := Leaf
			if !last {
				kind = RowGroup
				if seg.Axis == AxisColumn {
					kind = ColumnGroup
				}
			}
			n = newNode(seg.Title, kind)
			parent.add(n)
		}

		if last {
			if n.Kind != Leaf {
				return false, malformed("path shape mismatch: %s %q reached as a leaf at depth %d", n.Kind, n.Title, i)
			}
			content = n.Content
			break
		}
		if n.Kind == Leaf {
			return false, malformed("path shape mismatch: leaf %q reached at depth %d of %d", n.Title, i, len(path))
		}
		parent = n.Children
	}

	return content.Set(key, value), nil
}

// buildConfig carries the per-call settings BuildTree needs from a Normalizer.
type buildConfig struct {
	selector *rowSelector
	logger   *slog.Logger
}

// BuildTree builds the group tree from a merge-filled grid.
func BuildTree(g Grid, o Origin) (*Tree, error) {
	return buildTree(g, o, buildConfig{})
}

func buildTree(g Grid, o Origin, cfg buildConfig) (*Tree, error) {
	t := NewTree()
	for i := o.Y; i < o.Y+o.Height; i++ {
		key := g.At(i, o.X-1)

		if cfg.selector != nil {
			ok, err := cfg.selector.match(g, o, i)
			if err != nil {
				return nil, err
			}
			if !ok {
				if cfg.logger != nil {
					cfg.logger.Debug("row skipped by select", slog.String("cell", NewCellRef(i, o.X-1).String()), slog.String("key", key))
				}
				continue
			}
		}

		for j := o.X; j < o.X+o.Width; j++ {
			overwritten, err := t.Insert(HeaderPath(g, o, i, j), key, g.At(i, j))
			if err != nil {
				return nil, err
			}
			if overwritten && cfg.logger != nil {
				cfg.logger.Debug("key overwritten", slog.String("cell", NewCellRef(i, j).String()), slog.String("key", key))
			}
		}
	}
	return t, nil
}
