package xlnest

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/javajack/xlnest/logging"
)

// FileResult is the table normalized from one file.
type FileResult struct {
	Path  string         `json:"path" yaml:"path"`
	Table FlattenedTable `json:"table" yaml:"table"`
}

// NormalizeFiles normalizes several files concurrently and returns the results in
// the order of paths. The first error cancels the remaining work and is returned.
func NormalizeFiles(ctx context.Context, paths []string, opts ...Option) ([]FileResult, error) {
	return NewNormalizer(opts...).NormalizeFiles(ctx, paths)
}

// NormalizeFiles is the Normalizer form of the package-level NormalizeFiles.
func (n *Normalizer) NormalizeFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	limit := n.opts.concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := n.NormalizeFile(path)
			if err != nil {
				return err
			}
			results[i] = FileResult{Path: path, Table: t}
			logging.Logger().Debug("file normalized", slog.String("path", path), slog.Int("rows", len(t.Cells)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
