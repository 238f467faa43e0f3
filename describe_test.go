package xlnest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_Languages(t *testing.T) {
	output, err := Describe(languagesTSV)
	require.NoError(t, err)

	assert.Contains(t, output, "Origin: B3 (4x1)")
	assert.Contains(t, output, "Key column: A")
	assert.Contains(t, output, "Rows (1):\n  Key1\n")
	assert.Contains(t, output, "Columns (4):\n  EN\n    Title\n    Body\n  FR\n    Title\n    Body\n")
}

func TestDescribe_RowGroups(t *testing.T) {
	output, err := Describe("\t\tX\nG1\tk1\t1\n\tk2\t2\nG2\tk3\t3")
	require.NoError(t, err)

	assert.Contains(t, output, "Key column: B")
	assert.Contains(t, output, "Rows (3):\n  G1\n    k1\n    k2\n  G2\n    k3\n")
}

func TestDescribe_BlankTitle(t *testing.T) {
	output, err := Describe("\tX\nk\t1\n\t2")
	require.NoError(t, err)
	assert.Contains(t, output, "  (blank)\n")
}

func TestDescribe_NoData(t *testing.T) {
	output, err := NewNormalizer(WithOrigin(2, 1)).Describe(Parse("\tX\nk\t1"))
	require.NoError(t, err)
	assert.Contains(t, output, "(no data)")
}

func TestDescribe_Malformed(t *testing.T) {
	_, err := Describe("corner\tX\nk\t1")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestOutline_Empty(t *testing.T) {
	assert.Equal(t, "Rows (0):\nColumns (0):\n", Outline(EmptyTable()))
}

func TestDescribeTable_MatchesDescribe(t *testing.T) {
	n := NewNormalizer()
	tree, o, err := n.BuildTree(Parse(languagesTSV))
	require.NoError(t, err)

	want, err := n.Describe(Parse(languagesTSV))
	require.NoError(t, err)
	assert.Equal(t, want, DescribeTable(o, Flatten(tree)))
}
