package xlnest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorCache_ReusesProgram(t *testing.T) {
	var c selectorCache
	a, err := c.get(`key != "k2"`)
	require.NoError(t, err)
	b, err := c.get(`key != "k2"`)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = c.get("key ==")
	require.Error(t, err)
	_, cached := c.programs.Load("key ==")
	assert.False(t, cached)
}

func TestSelectorCache_ScopedToNormalizer(t *testing.T) {
	text := "\tX\nk0\t1\nk1\t2"
	first := NewNormalizer(WithSelect("row != 0"))

	for i := 0; i < 100; i++ {
		n := NewNormalizer(WithSelect(fmt.Sprintf("row != %d", i)))
		_, err := n.Normalize(text)
		require.NoError(t, err)
	}

	_, err := first.Normalize(text)
	require.NoError(t, err)
	_, err = first.Normalize(text)
	require.NoError(t, err)

	count := 0
	first.selectors.programs.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}
