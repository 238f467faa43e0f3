package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/xlnest/logging"
)

func TestLogger_DefaultDiscards(t *testing.T) {
	logging.SetLogger(nil)
	l := logging.Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger_Replaces(t *testing.T) {
	h := logging.NewCaptureHandler(slog.LevelInfo)
	logging.SetLogger(slog.New(h))
	defer logging.SetLogger(nil)

	logging.Logger().Info("origin located", slog.String("cell", "B3"))
	logging.Logger().Debug("dropped")

	assert.Equal(t, []string{"INFO origin located cell=B3"}, h.Lines())
}

func TestCaptureHandler_DerivedHandlersShareBuffer(t *testing.T) {
	h := logging.NewCaptureHandler(nil)
	l := slog.New(h).With(slog.String("file", "a.tsv")).WithGroup("grid")

	l.Debug("parsed", slog.Int("rows", 3))

	require.True(t, h.Contains("file=a.tsv"))
	assert.True(t, h.Contains("grid.rows=3"))

	h.Reset()
	assert.Empty(t, h.Lines())
	assert.Equal(t, "", h.String())
}

func TestNewTextLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewTextLogger(&buf, slog.LevelWarn)
	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
