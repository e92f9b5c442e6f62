package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

const (
	DefaultPlaceholder = "--"
	DefaultFloatFormat = "%0.2f"
)

// Table is a wide table of rejection rates ready to be serialized.
type Table struct {
	Leading []LeadingColumn
	Columns []string
	Rows    []string
	Cells   [][]Cell

	Placeholder string
	FloatFormat string
}

// Header returns the names of the leading and value columns.
func (t *Table) Header() []string {
	header := make([]string, 0, len(t.Leading)+len(t.Columns))
	for _, lc := range t.Leading {
		header = append(header, lc.Name)
	}
	return append(header, t.Columns...)
}

func (t *Table) format(c Cell) string {
	if !c.Valid {
		return t.Placeholder
	}
	return fmt.Sprintf(t.FloatFormat, c.Value)
}

// Strings returns the formatted rows including the leading columns.
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i := range t.Rows {
		row := make([]string, 0, len(t.Leading)+len(t.Columns))
		for _, lc := range t.Leading {
			row = append(row, lc.Values[i])
		}
		for _, c := range t.Cells[i] {
			row = append(row, t.format(c))
		}
		out[i] = row
	}
	return out
}

type LaTeXOptions struct {
	// CommentHeader prepends a LaTeX comment line naming the columns.
	CommentHeader bool
}

// LaTeX renders the body rows of a tabular environment, one "a & b \\" line per row,
// to be included between the rules of a hand written table.
func (t *Table) LaTeX(opts LaTeXOptions) string {
	var lines []string
	if opts.CommentHeader {
		lines = append(lines, "% "+strings.Join(t.Header(), " | "))
	}

	for _, row := range t.Strings() {
		lines = append(lines, strings.Join(row, " & ")+` \\`)
	}
	return strings.Join(lines, "\n")
}

// Print renders the table to the console.
func (t *Table) Print(w io.Writer, title string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(*style.NewDefaultTableStyle())
	if title != "" {
		tw.SetTitle(title)
	}

	header := table.Row{}
	for _, h := range t.Header() {
		header = append(header, h)
	}
	tw.AppendHeader(header)

	for _, row := range t.Strings() {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v
		}
		tw.AppendRow(r)
	}
	tw.Render()
}
