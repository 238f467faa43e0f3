package cmd

import (
	"strconv"
	"strings"

	"github.com/javajack/xlnest"
	"github.com/javajack/xlnest/internal/output"
)

// tableView is a FlattenedTable with text and table renderings.
type tableView struct {
	xlnest.FlattenedTable `yaml:",inline"`
}

func (v tableView) Text() string {
	return xlnest.Outline(v.FlattenedTable)
}

// Table heads each column with its leaf path and each row with the row's leaf path.
func (v tableView) Table() output.Table {
	headers := []string{""}
	for _, p := range xlnest.LeafPaths(v.ColumnGroups) {
		headers = append(headers, strings.Join(p, " / "))
	}

	rowPaths := xlnest.LeafPaths(v.RowGroups)
	rows := make([][]string, 0, len(v.Cells))
	for i, cells := range v.Cells {
		label := ""
		if i < len(rowPaths) {
			label = strings.Join(rowPaths[i], " / ")
		}
		rows = append(rows, append([]string{label}, cells...))
	}
	return output.Table{Headers: headers, Rows: rows}
}

// fileView is one file of a multi-file normalize.
type fileView struct {
	Path  string    `json:"path" yaml:"path"`
	Table tableView `json:"table" yaml:"table"`
}

func (v fileView) Text() string {
	return "== " + v.Path + " ==\n" + v.Table.Text()
}

// describeView is the structured form of `xlnest describe`.
type describeView struct {
	Origin       string                `json:"origin" yaml:"origin"`
	Width        int                   `json:"width" yaml:"width"`
	Height       int                   `json:"height" yaml:"height"`
	RowGroups    []xlnest.GroupSummary `json:"rowGroups" yaml:"rowGroups"`
	ColumnGroups []xlnest.GroupSummary `json:"columnGroups" yaml:"columnGroups"`
	outline      string
}

func (v describeView) Text() string { return v.outline }

func (v describeView) Table() output.Table {
	return output.Table{
		Headers: []string{"origin", "width", "height", "rows", "columns"},
		Rows: [][]string{{
			v.Origin,
			strconv.Itoa(v.Width),
			strconv.Itoa(v.Height),
			strconv.Itoa(len(xlnest.LeafPaths(v.RowGroups))),
			strconv.Itoa(len(xlnest.LeafPaths(v.ColumnGroups))),
		}},
	}
}

type issueView struct {
	Severity string `json:"severity" yaml:"severity"`
	Cell     string `json:"cell" yaml:"cell"`
	Message  string `json:"message" yaml:"message"`
	text     string
}

// issueList is the output of `xlnest validate`.
type issueList []issueView

func newIssueList(issues []xlnest.ValidationIssue) issueList {
	out := make(issueList, 0, len(issues))
	for _, iss := range issues {
		sev := "warning"
		if iss.Severity == xlnest.SeverityInfo {
			sev = "info"
		}
		out = append(out, issueView{Severity: sev, Cell: iss.Cell.String(), Message: iss.Message, text: iss.String()})
	}
	return out
}

func (l issueList) Text() string {
	if len(l) == 0 {
		return "No issues found.\n"
	}
	var b strings.Builder
	for _, iss := range l {
		b.WriteString(iss.text)
		b.WriteByte('\n')
	}
	return b.String()
}

func (l issueList) Table() output.Table {
	t := output.Table{Headers: []string{"severity", "cell", "message"}}
	for _, iss := range l {
		t.Rows = append(t.Rows, []string{iss.Severity, iss.Cell, iss.Message})
	}
	return t
}
