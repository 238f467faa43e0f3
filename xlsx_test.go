package xlnest

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// createLanguagesWorkbook builds the languages table with real merged header cells.
// Layout:
//
//	     B1:C1 "EN"   D1:E1 "FR"
//	     Title Body   Title Body
//	Key1 hello world  bonjour monde
func createLanguagesWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	require.NoError(t, f.SetCellValue(sheet, "B1", "EN"))
	require.NoError(t, f.SetCellValue(sheet, "D1", "FR"))
	require.NoError(t, f.MergeCell(sheet, "B1", "C1"))
	require.NoError(t, f.MergeCell(sheet, "D1", "E1"))
	require.NoError(t, f.SetSheetRow(sheet, "B2", &[]any{"Title", "Body", "Title", "Body"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Key1", "hello", "world", "bonjour", "monde"}))

	path := filepath.Join(t.TempDir(), "languages.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSXFile_MergedHeaders(t *testing.T) {
	path := createLanguagesWorkbook(t)

	g, err := ReadXLSXFile(path, "")
	require.NoError(t, err)
	require.Len(t, g, 3)
	for _, row := range g {
		assert.Len(t, row, 5, "rows are padded to the widest row")
	}
	assert.Equal(t, []string{"", "EN", "", "FR", ""}, g[0])
}

func TestNormalizeFile_XLSX(t *testing.T) {
	path := createLanguagesWorkbook(t)

	table, err := NormalizeFile(path)
	require.NoError(t, err)
	want, err := Normalize(languagesTSV)
	require.NoError(t, err)
	assert.Equal(t, want, table)
}

func TestReadXLSX_MergedSlotsAreBlanked(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "EN"))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", "stale"))
	require.NoError(t, f.MergeCell("Sheet1", "B1", "C1"))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"k", "1", "2"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	g, err := ReadXLSX(&buf, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "EN", ""}, g[0])
}

func TestReadXLSX_SheetNotFound(t *testing.T) {
	path := createLanguagesWorkbook(t)
	_, err := ReadXLSXFile(path, "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Nope" not found`)
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader([]byte("plain text")), "")
	assert.Error(t, err)
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	text := "\t\tEN\t\tFR\n" +
		"\t\tTitle\tBody\tTitle\n" +
		"Home\tintro\tWelcome\tHi\tBienvenue\n" +
		"\toutro\tBye\tSee you\tAu revoir\n" +
		"About\tintro\tUs\tWho\tNous"
	table, err := Normalize(text)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(table, &buf, "Copy"))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Copy"}, f.GetSheetList())
	merges, err := f.GetMergeCells("Copy")
	require.NoError(t, err)
	var ranges []string
	for _, m := range merges {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.Contains(t, ranges, "C1:D1")
	assert.Contains(t, ranges, "A3:A4")

	back, err := NewNormalizer(WithSheet("Copy")).NormalizeReader(bytes.NewReader(buf.Bytes()), SourceXLSX)
	require.NoError(t, err)
	assert.Equal(t, table, back)
}
