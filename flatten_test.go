package xlnest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const languagesTSV = "\tEN\tEN\tFR\tFR\n" +
	"\tTitle\tBody\tTitle\tBody\n" +
	"Key1\thello\tworld\tbonjour\tmonde"

func TestNormalize_LanguagesExample(t *testing.T) {
	table, err := Normalize(languagesTSV)
	require.NoError(t, err)

	assert.Equal(t, []GroupSummary{{Title: "Key1"}}, table.RowGroups)
	assert.Equal(t, []GroupSummary{
		{Title: "EN", Groups: []GroupSummary{{Title: "Title"}, {Title: "Body"}}},
		{Title: "FR", Groups: []GroupSummary{{Title: "Title"}, {Title: "Body"}}},
	}, table.ColumnGroups)
	assert.Equal(t, [][]string{{"hello", "world", "bonjour", "monde"}}, table.Cells)
}

func TestNormalize_MergedHeadersMatchRepeated(t *testing.T) {
	merged := "\tEN\t\tFR\t\n\tTitle\tBody\tTitle\tBody\nKey1\thello\tworld\tbonjour\tmonde"
	a, err := Normalize(merged)
	require.NoError(t, err)
	b, err := Normalize(languagesTSV)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestNormalize_JSONShape(t *testing.T) {
	table, err := Normalize(languagesTSV)
	require.NoError(t, err)
	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"rowGroups": [{"title": "Key1"}],
		"columnGroups": [
			{"title": "EN", "groups": [{"title": "Title"}, {"title": "Body"}]},
			{"title": "FR", "groups": [{"title": "Title"}, {"title": "Body"}]}
		],
		"cells": [["hello", "world", "bonjour", "monde"]]
	}`, string(data))
}

func TestNormalize_RowGroups(t *testing.T) {
	text := "\t\tEN\t\n" +
		"\t\tTitle\tBody\n" +
		"Home\tintro\tWelcome\tHi there\n" +
		"\toutro\tBye\tSee you\n" +
		"About\tintro\tUs\tWho we are"
	table, err := Normalize(text)
	require.NoError(t, err)

	assert.Equal(t, []GroupSummary{
		{Title: "Home", Groups: []GroupSummary{{Title: "intro"}, {Title: "outro"}}},
		{Title: "About", Groups: []GroupSummary{{Title: "intro"}}},
	}, table.RowGroups)
	assert.Equal(t, []GroupSummary{
		{Title: "EN", Groups: []GroupSummary{{Title: "Title"}, {Title: "Body"}}},
	}, table.ColumnGroups)
	assert.Equal(t, [][]string{
		{"Welcome", "Hi there"},
		{"Bye", "See you"},
		{"Us", "Who we are"},
	}, table.Cells)
}

func TestNormalize_ShapeInvariant(t *testing.T) {
	text := "\t\tA\t\tB\n" +
		"\t\tx\ty\tz\n" +
		"G1\tk1\t1\t2\t3\n" +
		"\tk2\t4\t5\t6\n" +
		"G2\tk3\t7\t8\t9"
	table, err := Normalize(text)
	require.NoError(t, err)

	require.Len(t, table.Cells, 3)
	leaves := countLeaves(table.ColumnGroups)
	assert.Equal(t, 3, leaves)
	for _, row := range table.Cells {
		assert.Len(t, row, leaves)
	}
	assert.Len(t, LeafPaths(table.RowGroups), len(table.Cells))
}

func TestNormalize_DuplicateKeyLastWriteWins(t *testing.T) {
	table, err := Normalize("\tX\tY\nk\t1\t2\nk\t3\t4")
	require.NoError(t, err)
	assert.Equal(t, []GroupSummary{{Title: "k"}}, table.RowGroups)
	assert.Equal(t, [][]string{{"3", "4"}}, table.Cells)
}

func TestNormalize_MissingKeyInOtherColumn(t *testing.T) {
	// keys are scoped to their row group
	table, err := Normalize("\t\tX\nG1\ta\t1\nG2\tb\t2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, table.Cells)
}

func TestFlatten_Idempotent(t *testing.T) {
	g := Parse(languagesTSV)
	o, err := LocateOrigin(g)
	require.NoError(t, err)
	tree, err := BuildTree(FillMerged(g, o), o)
	require.NoError(t, err)

	first, err := json.Marshal(Flatten(tree))
	require.NoError(t, err)
	second, err := json.Marshal(Flatten(tree))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFlatten_EmptyTree(t *testing.T) {
	table := Flatten(NewTree())
	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rowGroups":[],"columnGroups":[],"cells":[]}`, string(data))

	assert.Equal(t, EmptyTable(), Flatten(nil))
}

func TestDepthAndLeafPaths(t *testing.T) {
	groups := []GroupSummary{
		{Title: "A", Groups: []GroupSummary{{Title: "x"}, {Title: "y"}}},
		{Title: "B", Groups: []GroupSummary{{Title: "z"}}},
	}
	assert.Equal(t, 2, Depth(groups))
	assert.Equal(t, 0, Depth(nil))
	assert.Equal(t, [][]string{{"A", "x"}, {"A", "y"}, {"B", "z"}}, LeafPaths(groups))
}
