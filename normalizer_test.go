package xlnest

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/xlnest/logging"
)

func TestNormalize_BlankFirstRow(t *testing.T) {
	_, err := Normalize("\t\t\nKey1\ta\tb")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestNormalize_EmptyText(t *testing.T) {
	_, err := Normalize("")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestNormalize_NoDataColumns(t *testing.T) {
	table, err := Normalize("\tX\nk\t1", WithOrigin(2, 1))
	require.NoError(t, err)

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rowGroups":[],"columnGroups":[],"cells":[]}`, string(data))
}

func TestNormalize_ExplicitOrigin(t *testing.T) {
	// The corner cell holds a caption, which the scan would reject.
	text := "Report\tEN\tEN\n\tTitle\tBody\nk1\ta\tb"
	_, err := Normalize(text)
	require.ErrorIs(t, err, ErrMalformedInput)

	table, err := Normalize(text, WithOrigin(1, 2))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, table.Cells)
	assert.Equal(t, []GroupSummary{{Title: "k1"}}, table.RowGroups)
}

func TestNormalize_ExplicitOriginInvalid(t *testing.T) {
	_, err := Normalize("\tX\nk\t1", WithOrigin(0, 1))
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestNormalize_TrailingNewline(t *testing.T) {
	text := "\tX\nk\t1\n"

	table, err := Normalize(text)
	require.NoError(t, err)
	assert.Len(t, table.Cells, 2, "blank last line is a data row by default")

	table, err = Normalize(text, WithTrimTrailingBlankRows(true))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}}, table.Cells)
}

func TestNormalize_UnicodeNormalization(t *testing.T) {
	text := "\t\u00e9\te\u0301\nk\t1\t2"

	table, err := Normalize(text)
	require.NoError(t, err)
	assert.Len(t, table.ColumnGroups, 2)

	table, err = Normalize(text, WithUnicodeNormalization(true))
	require.NoError(t, err)
	assert.Equal(t, []GroupSummary{{Title: "\u00e9"}}, table.ColumnGroups)
	assert.Equal(t, [][]string{{"2"}}, table.Cells)
}

func TestNormalize_Select(t *testing.T) {
	text := "\t\tX\tY\nG1\tk1\t1\t2\n\tk2\t3\t4\nG2\tk3\t5\t6"

	table, err := Normalize(text, WithSelect(`key != "k2"`))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"5", "6"}}, table.Cells)

	table, err = Normalize(text, WithSelect(`groups[0] == "G2"`))
	require.NoError(t, err)
	assert.Equal(t, []GroupSummary{{Title: "G2", Groups: []GroupSummary{{Title: "k3"}}}}, table.RowGroups)

	table, err = Normalize(text, WithSelect(`values[1] == "4" || row == 0`))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, table.Cells)
}

func TestNormalize_SelectNothing(t *testing.T) {
	table, err := Normalize("\tX\nk\t1", WithSelect("false"))
	require.NoError(t, err)
	assert.Empty(t, table.Cells)
	assert.Empty(t, table.RowGroups)
}

func TestNormalize_SelectCompileError(t *testing.T) {
	_, err := Normalize("\tX\nk\t1", WithSelect("key +"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedInput)
	assert.Contains(t, err.Error(), "compile select")

	_, err = Normalize("\tX\nk\t1", WithSelect(`"not a bool"`))
	assert.Error(t, err)
}

func TestNormalize_DebugLogging(t *testing.T) {
	h := logging.NewCaptureHandler(slog.LevelDebug)
	logging.SetLogger(slog.New(h))
	defer logging.SetLogger(nil)

	_, err := Normalize("\tX\nk\t1\nk\t2")
	require.NoError(t, err)

	assert.True(t, h.Contains("origin located cell=B2 width=1 height=2"), h.String())
	assert.True(t, h.Contains("key overwritten cell=B3 key=k"), h.String())
	assert.True(t, h.Contains("table flattened rows=1 columns=1"), h.String())
}

func TestNormalizer_Reusable(t *testing.T) {
	n := NewNormalizer(WithTrimTrailingBlankRows(true))
	a, err := n.Normalize(languagesTSV + "\n")
	require.NoError(t, err)
	b, err := n.Normalize(languagesTSV)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNormalizer_NormalizeReader(t *testing.T) {
	table, err := NewNormalizer().NormalizeReader(strings.NewReader(languagesTSV), SourceTSV)
	require.NoError(t, err)
	assert.Len(t, table.Cells, 1)

	_, err = NewNormalizer().NormalizeReader(strings.NewReader(languagesTSV), SourceFormat("csv"))
	assert.Error(t, err)
}

func TestNormalizeFile_TSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.tsv")
	require.NoError(t, os.WriteFile(path, []byte(languagesTSV), 0o644))

	table, err := NormalizeFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"hello", "world", "bonjour", "monde"}}, table.Cells)
}

func TestNormalizeFile_WrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tsv")
	require.NoError(t, os.WriteFile(path, []byte("x\ty\nz\t1"), 0o644))

	_, err := NormalizeFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.Contains(t, err.Error(), path)

	_, err = NormalizeFile(filepath.Join(t.TempDir(), "missing.tsv"))
	assert.Error(t, err)
}

func TestPrepare_FillsHeaders(t *testing.T) {
	filled, o, err := NewNormalizer().Prepare(Parse("\tEN\t\n\tTitle\tBody\nk\ta\tb"))
	require.NoError(t, err)
	assert.Equal(t, Origin{X: 1, Y: 2, Width: 2, Height: 1}, o)
	assert.Equal(t, []string{"", "EN", "EN"}, filled[0])
}

func TestParseSourceFormat(t *testing.T) {
	for in, want := range map[string]SourceFormat{
		"":     SourceTSV,
		"TSV":  SourceTSV,
		"xlsx": SourceXLSX,
		"htm":  SourceHTML,
	} {
		got, err := ParseSourceFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSourceFormat("csv")
	assert.Error(t, err)
}

func TestSourceFormatForPath(t *testing.T) {
	assert.Equal(t, SourceXLSX, SourceFormatForPath("a/b/Copy.XLSX"))
	assert.Equal(t, SourceHTML, SourceFormatForPath("page.html"))
	assert.Equal(t, SourceTSV, SourceFormatForPath("export.txt"))
	assert.Equal(t, SourceTSV, SourceFormatForPath("noext"))
}
