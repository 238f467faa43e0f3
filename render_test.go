package xlnest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTSV_Languages(t *testing.T) {
	table, err := Normalize(languagesTSV)
	require.NoError(t, err)

	want := "\tEN\t\tFR\t\n" +
		"\tTitle\tBody\tTitle\tBody\n" +
		"Key1\thello\tworld\tbonjour\tmonde"
	assert.Equal(t, want, FormatTSV(table))
}

func TestFormatTSV_RoundTrip(t *testing.T) {
	inputs := []string{
		languagesTSV,
		"\t\tEN\t\n\t\tTitle\tBody\nHome\tintro\tWelcome\tHi\n\toutro\tBye\tSee you\nAbout\tintro\tUs\tWho",
		"\t\t\tX\tY\nA\ta1\tk1\t1\t2\n\t\tk2\t3\t4\n\ta2\tk3\t5\t6\nB\tb1\tk4\t7\t8",
	}
	for _, in := range inputs {
		table, err := Normalize(in)
		require.NoError(t, err)

		again, err := Normalize(FormatTSV(table))
		require.NoError(t, err)
		assert.Equal(t, table, again, in)
	}
}

func TestHeaderRuns(t *testing.T) {
	paths := [][]string{{"A", "x"}, {"A", "y"}, {"B", "x"}, {"A", "z"}}
	assert.Equal(t, []headerRun{
		{title: "A", start: 0, end: 1},
		{title: "B", start: 2, end: 2},
		{title: "A", start: 3, end: 3},
	}, headerRuns(paths, 0))
	assert.Len(t, headerRuns(paths, 1), 4)
	assert.Empty(t, headerRuns(paths, 2))
}
