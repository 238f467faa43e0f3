package xlnest

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/javajack/xlnest/logging"
)

// Normalize turns tab-separated text into a FlattenedTable.
func Normalize(text string, opts ...Option) (FlattenedTable, error) {
	return NewNormalizer(opts...).Normalize(text)
}

// NormalizeFile reads a TSV, xlsx or HTML file and returns its FlattenedTable.
func NormalizeFile(path string, opts ...Option) (FlattenedTable, error) {
	return NewNormalizer(opts...).NormalizeFile(path)
}

// Normalizer runs the pipeline: grid → origin → merge fill → tree → flattened table.
// It holds no per-call state and may be used concurrently.
type Normalizer struct {
	opts      *Options
	selectors selectorCache
}

// NewNormalizer creates a Normalizer with the given options.
func NewNormalizer(opts ...Option) *Normalizer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Normalizer{opts: o}
}

// Normalize parses text as TSV and flattens it.
func (n *Normalizer) Normalize(text string) (FlattenedTable, error) {
	return n.NormalizeGrid(Parse(text))
}

// NormalizeReader reads a whole document of the given format from r and flattens it.
func (n *Normalizer) NormalizeReader(r io.Reader, format SourceFormat) (FlattenedTable, error) {
	g, err := n.ReadGrid(r, format)
	if err != nil {
		return FlattenedTable{}, err
	}
	return n.NormalizeGrid(g)
}

// NormalizeFile reads path, choosing the source format from its extension.
func (n *Normalizer) NormalizeFile(path string) (FlattenedTable, error) {
	g, err := n.ReadFile(path)
	if err != nil {
		return FlattenedTable{}, err
	}
	t, err := n.NormalizeGrid(g)
	if err != nil {
		return FlattenedTable{}, fmt.Errorf("normalize %q: %w", path, err)
	}
	return t, nil
}

// NormalizeGrid flattens an already parsed grid. g is not modified.
func (n *Normalizer) NormalizeGrid(g Grid) (FlattenedTable, error) {
	tree, o, err := n.BuildTree(g)
	if err != nil {
		return FlattenedTable{}, err
	}
	if o.Empty() {
		return EmptyTable(), nil
	}
	t := Flatten(tree)
	logging.Logger().Debug("table flattened",
		slog.Int("rows", len(t.Cells)),
		slog.Int("columns", countLeaves(t.ColumnGroups)))
	return t, nil
}

// BuildTree runs the pipeline up to the group tree and returns it with the origin.
func (n *Normalizer) BuildTree(g Grid) (*Tree, Origin, error) {
	filled, o, err := n.Prepare(g)
	if err != nil {
		return nil, Origin{}, err
	}
	if o.Empty() {
		return NewTree(), o, nil
	}

	cfg := buildConfig{logger: logging.Logger()}
	if n.opts.selectExpr != "" {
		sel, err := n.selectors.get(n.opts.selectExpr)
		if err != nil {
			return nil, Origin{}, err
		}
		cfg.selector = sel
	}

	tree, err := buildTree(filled, o, cfg)
	if err != nil {
		return nil, Origin{}, err
	}
	return tree, o, nil
}

// Prepare applies the grid options, locates the origin and merge-fills the headers.
func (n *Normalizer) Prepare(g Grid) (Grid, Origin, error) {
	if n.opts.unicodeNormalize {
		g = mapCells(g, norm.NFC.String)
	}
	if n.opts.trimTrailingBlankRows {
		g = trimTrailingBlankRows(g)
	}

	var o Origin
	var err error
	if n.opts.origin != nil {
		o, err = originAt(g, n.opts.origin.Col, n.opts.origin.Row)
	} else {
		o, err = LocateOrigin(g)
	}
	if err != nil {
		return nil, Origin{}, err
	}

	logging.Logger().Debug("origin located",
		slog.String("cell", o.Cell().String()),
		slog.Int("width", o.Width),
		slog.Int("height", o.Height))

	if o.Empty() {
		return g, o, nil
	}
	return FillMerged(g, o), o, nil
}

// SourceFormat names a document type a Grid can be read from.
type SourceFormat string

const (
	SourceTSV  SourceFormat = "tsv"
	SourceXLSX SourceFormat = "xlsx"
	SourceHTML SourceFormat = "html"
)

// ParseSourceFormat converts a name to a SourceFormat. Empty means TSV.
func ParseSourceFormat(s string) (SourceFormat, error) {
	switch SourceFormat(strings.ToLower(strings.TrimSpace(s))) {
	case SourceTSV, "", "txt", "tab":
		return SourceTSV, nil
	case SourceXLSX, "xlsm":
		return SourceXLSX, nil
	case SourceHTML, "htm":
		return SourceHTML, nil
	default:
		return "", fmt.Errorf("unknown source format %q (expected tsv|xlsx|html)", s)
	}
}

// SourceFormatForPath picks the format from the file extension; unknown extensions
// are read as TSV.
func SourceFormatForPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return SourceXLSX
	case ".html", ".htm":
		return SourceHTML
	default:
		return SourceTSV
	}
}

// ReadFile reads path into a Grid.
func (n *Normalizer) ReadFile(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	g, err := n.ReadGrid(f, SourceFormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return g, nil
}

// ReadGrid reads a whole document of the given format from r into a Grid.
func (n *Normalizer) ReadGrid(r io.Reader, format SourceFormat) (Grid, error) {
	switch format {
	case SourceXLSX:
		return ReadXLSX(r, n.opts.sheet)
	case SourceHTML:
		return ReadHTMLTable(r, n.opts.htmlTable)
	case SourceTSV, "":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read text: %w", err)
		}
		return Parse(string(data)), nil
	default:
		return nil, fmt.Errorf("unknown source format %q", format)
	}
}
