// Package extract turns an HTML table into flat string records.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrTableNotFound is returned when the spec's table selector matches nothing.
var ErrTableNotFound = errors.New("table not found")

// Skip records a row that looked like data but could not be turned into a record.
type Skip struct {
	Row    int    `yaml:"row"`
	Reason string `yaml:"reason"`
}

// Result is the outcome of extracting one page.
type Result struct {
	Header  []string
	Records [][]string
	Skipped []Skip
	// Rows is the number of rows the Rows selector matched, the basis for
	// the pagination end-of-data check.
	Rows int
	// Dropped counts rows rejected by the position filter.
	Dropped int
}

// Append adds the records and counters of other to r. The header of r wins.
func (r *Result) Append(other Result) {
	if r.Header == nil {
		r.Header = other.Header
	}
	offset := r.Rows
	r.Records = append(r.Records, other.Records...)
	for _, s := range other.Skipped {
		r.Skipped = append(r.Skipped, Skip{Row: s.Row + offset, Reason: s.Reason})
	}
	r.Rows += other.Rows
	r.Dropped += other.Dropped
}

// Extract parses html and returns one record per accepted row in page order.
// Malformed rows never fail the call; they are listed in Result.Skipped.
func Extract(html string, spec TableSpec) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find(spec.Table).First()
	if table.Length() == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrTableNotFound, spec.Table)
	}

	if spec.HeaderFromTable {
		return extractWithHeader(table, spec)
	}
	return extractFields(table, spec), nil
}

func extractFields(table *goquery.Selection, spec TableSpec) Result {
	res := Result{Header: spec.Header()}

	minCells := spec.MinCells
	if need := spec.maxCell() + 1; need > minCells {
		minCells = need
	}

	table.Find(spec.Rows).Each(func(i int, row *goquery.Selection) {
		res.Rows++
		rowNum := i + 1

		cells := row.Find("td")
		if cells.Length() < minCells {
			res.skip(rowNum, fmt.Sprintf("row has %d cells, want at least %d", cells.Length(), minCells))
			return
		}

		if !isGoalkeeper(cells.Eq(spec.Position.Cell), spec.Position) {
			res.Dropped++
			return
		}

		record, err := readFields(cells, spec.Fields)
		if err != nil {
			res.skip(rowNum, err.Error())
			return
		}
		res.Records = append(res.Records, record)
	})

	return res
}

func readFields(cells *goquery.Selection, fields []FieldRule) (record []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			record, err = nil, fmt.Errorf("unexpected row structure: %v", r)
		}
	}()

	record = make([]string, len(fields))
	for i, f := range fields {
		value, ok := readCell(cells.Eq(f.Cell), f.Kind)
		if !ok && f.Required {
			return nil, fmt.Errorf("field %q: cell %d has no %s", f.Name, f.Cell, f.Kind.element())
		}
		record[i] = value
	}
	return record, nil
}

// readCell returns the value and whether the element the kind needs exists.
func readCell(cell *goquery.Selection, kind Kind) (string, bool) {
	switch kind {
	case LinkText:
		a := cell.Find("a").First()
		return cleanText(a.Text()), a.Length() > 0
	case LinkTitle:
		a := cell.Find("a").First()
		if a.Length() == 0 {
			return "", false
		}
		if title := strings.TrimSpace(a.AttrOr("title", "")); title != "" {
			return title, true
		}
		return cleanText(a.Text()), true
	case ImageTitle:
		img := cell.Find("img").First()
		return strings.TrimSpace(img.AttrOr("title", "")), img.Length() > 0
	case Amount:
		return ParseAmount(cleanText(cell.Text())), true
	default:
		return cleanText(cell.Text()), true
	}
}

func (k Kind) element() string {
	switch k {
	case LinkText, LinkTitle:
		return "link"
	case ImageTitle:
		return "image"
	default:
		return "text"
	}
}

func extractWithHeader(table *goquery.Selection, spec TableSpec) (Result, error) {
	header := cellTexts(table.Find("thead tr").Last().ChildrenFiltered("th, td"))
	if len(header) == 0 {
		return Result{}, fmt.Errorf("%w: %s has no header row", ErrTableNotFound, spec.Table)
	}

	posCell := spec.Position.Cell
	if spec.Position.Column != "" {
		posCell = indexOf(header, spec.Position.Column)
		if posCell < 0 {
			return Result{}, fmt.Errorf("position column %q not in table header", spec.Position.Column)
		}
	}

	lo, hi := spec.DropFirst, len(header)-spec.DropLast
	if lo < 0 || hi <= lo {
		return Result{}, fmt.Errorf("cannot drop %d+%d columns from a %d column header", spec.DropFirst, spec.DropLast, len(header))
	}
	res := Result{Header: header[lo:hi]}

	rows := spec.Rows
	if rows == "" {
		rows = "tbody > tr"
	}

	table.Find(rows).Each(func(i int, row *goquery.Selection) {
		if isRepeatedHeader(row, header) {
			return
		}
		res.Rows++
		rowNum := i + 1

		values := cellTexts(row.ChildrenFiltered("th, td"))
		if len(values) != len(header) {
			res.skip(rowNum, fmt.Sprintf("row has %d cells, header has %d", len(values), len(header)))
			return
		}

		if !strings.Contains(values[posCell], spec.Position.Contains) {
			res.Dropped++
			return
		}

		res.Records = append(res.Records, values[lo:hi])
	})

	return res, nil
}

// isRepeatedHeader recognises the header rows sports tables repeat every
// few dozen rows.
func isRepeatedHeader(row *goquery.Selection, header []string) bool {
	if row.HasClass("thead") || row.HasClass("over_header") || row.HasClass("spacer") {
		return true
	}
	first := cleanText(row.ChildrenFiltered("th, td").First().Text())
	return len(header) > 0 && first != "" && first == header[0]
}

func isGoalkeeper(cell *goquery.Selection, filter PositionFilter) bool {
	return strings.Contains(cleanText(cell.Text()), filter.Contains)
}

func cellTexts(cells *goquery.Selection) []string {
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		texts = append(texts, cleanText(c.Text()))
	})
	return texts
}

// cleanText trims the text and collapses inner runs of whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func indexOf(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}

func (r *Result) skip(row int, reason string) {
	slog.Warn("Skipping row", "row", row, "reason", reason)
	r.Skipped = append(r.Skipped, Skip{Row: row, Reason: reason})
}
