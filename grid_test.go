package xlnest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_SplitsRowsAndCells(t *testing.T) {
	g := Parse("a\tb\nc\td\te")
	assert.Equal(t, Grid{{"a", "b"}, {"c", "d", "e"}}, g)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Width())
}

func TestParse_TrimsCarriageReturnAndSpaces(t *testing.T) {
	g := Parse(" a \t b\r\nc\r")
	assert.Equal(t, Grid{{"a", "b"}, {"c"}}, g)
}

func TestParse_EmptyText(t *testing.T) {
	g := Parse("")
	assert.Equal(t, Grid{{""}}, g)
}

func TestGrid_AtOutOfRange(t *testing.T) {
	g := Grid{{"a"}, {"b", "c"}}
	assert.Equal(t, "c", g.At(1, 1))
	assert.Equal(t, "", g.At(0, 1))
	assert.Equal(t, "", g.At(5, 0))
	assert.Equal(t, "", g.At(-1, 0))
}

func TestGrid_Column(t *testing.T) {
	g := Grid{{"a", "1"}, {"b"}, {"c", "3"}}
	assert.Equal(t, []string{"1", "", "3"}, g.Column(1))
}

func TestGrid_ClonePadsAndCopies(t *testing.T) {
	g := Grid{{"a"}, {"b", "c", "d"}}
	cp := g.Clone(2)
	assert.Equal(t, Grid{{"a", ""}, {"b", "c", "d"}}, cp)

	cp[0][0] = "z"
	assert.Equal(t, "a", g[0][0])
}

func TestTrimTrailingBlankRows(t *testing.T) {
	g := Parse("\tX\nk\t1\n\n\t\n")
	assert.Equal(t, Grid{{"", "X"}, {"k", "1"}}, trimTrailingBlankRows(g))
}

func TestMapCells_LeavesInputAlone(t *testing.T) {
	g := Grid{{"a", "b"}}
	out := mapCells(g, func(s string) string { return s + s })
	assert.Equal(t, Grid{{"aa", "bb"}}, out)
	assert.Equal(t, Grid{{"a", "b"}}, g)
}
