package xlnest

// Options holds configuration for the Normalizer.
type Options struct {
	origin                *CellRef
	selectExpr            string
	unicodeNormalize      bool
	trimTrailingBlankRows bool
	sheet                 string
	htmlTable             int
	concurrency           int
}

func defaultOptions() *Options {
	return &Options{}
}

// Option configures the Normalizer.
type Option func(*Options)

// WithOrigin sets the data origin explicitly instead of scanning row 1 and column A.
// x is the number of columns before the data (the key column is x-1) and y the
// number of header rows. Both must be at least 1.
func WithOrigin(x, y int) Option {
	return func(o *Options) { o.origin = &CellRef{Row: y, Col: x} }
}

// WithSelect keeps only the data rows for which the expr-lang expression is true.
// See rowSelector for the variables it can use.
func WithSelect(expression string) Option {
	return func(o *Options) { o.selectExpr = expression }
}

// WithUnicodeNormalization converts every cell to NFC before processing, so titles
// that only differ in composition merge (default: false).
func WithUnicodeNormalization(enabled bool) Option {
	return func(o *Options) { o.unicodeNormalize = enabled }
}

// WithTrimTrailingBlankRows drops blank rows at the end of the grid (default: false).
func WithTrimTrailingBlankRows(trim bool) Option {
	return func(o *Options) { o.trimTrailingBlankRows = trim }
}

// WithSheet selects the worksheet read from xlsx sources (default: first sheet).
func WithSheet(name string) Option {
	return func(o *Options) { o.sheet = name }
}

// WithHTMLTable selects which <table> of an HTML source is read (default: 0).
func WithHTMLTable(index int) Option {
	return func(o *Options) { o.htmlTable = index }
}

// WithConcurrency bounds the number of files NormalizeFiles processes at once
// (default: GOMAXPROCS).
func WithConcurrency(n int) Option {
	return func(o *Options) { o.concurrency = n }
}
