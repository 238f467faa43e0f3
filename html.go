package xlnest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// maxSpan caps rowspan/colspan so a hostile attribute cannot allocate a huge grid.
const maxSpan = 1000

// ReadHTMLTable reads the index-th <table> of an HTML document (document order,
// 0-based) into a Grid. A cell spanning several rows or columns keeps its text in
// the top-left slot and leaves the others blank, matching a merged-cell export.
func ReadHTMLTable(r io.Reader, index int) (Grid, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var tables []*html.Node
	collectElements(doc, "table", &tables)
	if index < 0 || index >= len(tables) {
		return nil, fmt.Errorf("HTML table %d not found (document has %d)", index, len(tables))
	}

	var rows []*html.Node
	for c := tables[index].FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					rows = append(rows, tr)
				}
			}
		case "tr":
			rows = append(rows, c)
		}
	}

	return placeCells(rows), nil
}

// placeCells lays out rows honoring rowspan and colspan.
func placeCells(rows []*html.Node) Grid {
	var g Grid
	var taken [][]bool
	ensure := func(r, width int) {
		for len(g) <= r {
			g = append(g, nil)
			taken = append(taken, nil)
		}
		for len(g[r]) < width {
			g[r] = append(g[r], "")
			taken[r] = append(taken[r], false)
		}
	}

	for r, tr := range rows {
		ensure(r, 0)
		col := 0
		for td := tr.FirstChild; td != nil; td = td.NextSibling {
			if td.Type != html.ElementNode || (td.Data != "td" && td.Data != "th") {
				continue
			}
			for col < len(taken[r]) && taken[r][col] {
				col++
			}
			rowSpan := spanAttr(td, "rowspan")
			colSpan := spanAttr(td, "colspan")
			for dr := 0; dr < rowSpan; dr++ {
				ensure(r+dr, col+colSpan)
				for dc := 0; dc < colSpan; dc++ {
					taken[r+dr][col+dc] = true
				}
			}
			g[r][col] = cleanCell(textContent(td))
			col += colSpan
		}
	}

	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	for i := range g {
		for len(g[i]) < width {
			g[i] = append(g[i], "")
		}
	}
	return g
}

func spanAttr(n *html.Node, key string) int {
	for _, a := range n.Attr {
		if a.Key != key {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(a.Val))
		if err != nil || v < 1 {
			return 1
		}
		if v > maxSpan {
			return maxSpan
		}
		return v
	}
	return 1
}

func collectElements(n *html.Node, tag string, out *[]*html.Node) {
	if n.Type == html.ElementNode && n.Data == tag {
		*out = append(*out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectElements(c, tag, out)
	}
}

// textContent returns the text below n with runs of whitespace collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
