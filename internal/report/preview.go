// Package report renders console summaries and the skipped-row report.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lepinkainen/keepers/internal/aggregate"
	"github.com/lepinkainen/keepers/internal/csvutil"
	"github.com/lepinkainen/keepers/internal/fees"
)

// PreviewRows is how many rows a preview shows.
const PreviewRows = 5

// Preview writes the first n rows of t. When columns is non-empty only
// those columns are shown; unknown names are ignored.
func Preview(w io.Writer, title string, t csvutil.Table, n int, columns ...string) {
	cols := make([]int, 0, len(t.Header))
	if len(columns) == 0 {
		for i := range t.Header {
			cols = append(cols, i)
		}
	} else {
		for _, name := range columns {
			if pos := t.Column(name); pos >= 0 {
				cols = append(cols, pos)
			}
		}
	}

	tw := newWriter(w, title)
	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = t.Header[c]
	}
	tw.AppendHeader(header)

	for _, row := range head(t.Rows, n) {
		tw.AppendRow(pick(row, cols))
	}
	if len(t.Rows) > n {
		tw.AppendFooter(table.Row{fmt.Sprintf("%d more rows", len(t.Rows)-n)})
	}
	tw.Render()
}

// PreviewTail writes the last n rows of t, numbered from the end of the table.
func PreviewTail(w io.Writer, title string, t csvutil.Table, n int) {
	start := max(len(t.Rows)-n, 0)

	tw := newWriter(w, title)
	header := table.Row{"#"}
	for _, h := range t.Header {
		header = append(header, h)
	}
	tw.AppendHeader(header)
	for i, row := range t.Rows[start:] {
		r := table.Row{start + i + 1}
		for _, v := range row {
			r = append(r, v)
		}
		tw.AppendRow(r)
	}
	tw.Render()
}

// Aggregation writes the dataset summary printed after aggregating.
func Aggregation(w io.Writer, s aggregate.Summary) {
	tw := newWriter(w, "Aggregated dataset")
	tw.AppendRows([]table.Row{
		{"rows", s.Rows},
		{"unique players", s.Players},
		{"players with multiple seasons", s.MultiSeason},
	})
	if s.Example != "" {
		tw.AppendRow(table.Row{"example", fmt.Sprintf("%s %v", s.Example, s.ExampleSeasons)})
	}
	tw.Render()
}

// Enrichment writes the fee coverage printed after enriching.
func Enrichment(w io.Writer, s fees.EnrichStats) {
	tw := newWriter(w, "Recent fees")
	tw.AppendRows([]table.Row{
		{"rows", s.Rows},
		{"players", s.Players},
		{"players with a fee", s.WithFee},
		{"players without a fee", s.WithoutFee},
	})
	tw.Render()
}

func newWriter(w io.Writer, title string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	if title != "" {
		tw.SetTitle("%s", title)
	}
	return tw
}

func head(rows [][]string, n int) [][]string {
	if n < len(rows) {
		return rows[:n]
	}
	return rows
}

func pick(row []string, cols []int) table.Row {
	r := make(table.Row, len(cols))
	for i, c := range cols {
		if c < len(row) {
			r[i] = row[c]
		}
	}
	return r
}
