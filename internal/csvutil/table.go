package csvutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MissingColumnError is returned when a file lacks a column the caller joins
// or sorts on.
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("required column %q not found", e.Column)
	}
	return fmt.Sprintf("required column %q not found in %s", e.Column, e.File)
}

// Table is an in-memory CSV file: a header and rows of the same width.
// Columns are kept as opaque strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the position of the first column called name, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// RequireColumns returns the positions of the named columns.
func (t Table) RequireColumns(names ...string) ([]int, error) {
	positions := make([]int, len(names))
	for i, name := range names {
		pos := t.Column(name)
		if pos < 0 {
			return nil, &MissingColumnError{Column: name}
		}
		positions[i] = pos
	}
	return positions, nil
}

// SetColumn fills column name with value(row) for every row. The column is
// appended when it does not exist yet and overwritten when it does.
func (t *Table) SetColumn(name string, value func(row []string) string) {
	pos := t.Column(name)
	if pos < 0 {
		t.Header = append(t.Header, name)
		pos = len(t.Header) - 1
	}

	for i, row := range t.Rows {
		v := value(row)
		if pos < len(row) {
			row[pos] = v
			continue
		}
		for len(row) < pos {
			row = append(row, "")
		}
		t.Rows[i] = append(row, v)
	}
}

// InsertColumnAfter inserts column name holding value right after column
// after. When after does not exist the column is appended.
func (t *Table) InsertColumnAfter(after, name, value string) {
	pos := t.Column(after) + 1
	if pos == 0 {
		pos = len(t.Header)
	}

	t.Header = insertAt(t.Header, pos, name)
	for i, row := range t.Rows {
		t.Rows[i] = insertAt(row, pos, value)
	}
}

func insertAt(values []string, pos int, value string) []string {
	out := make([]string, 0, len(values)+1)
	out = append(out, values[:pos]...)
	out = append(out, value)
	return append(out, values[pos:]...)
}

// ReadTable loads a CSV file. Short rows are padded and long rows trimmed to
// the header width.
func ReadTable(filename string) (Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := decodeTable(f)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

func decodeTable(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return Table{}, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return Table{}, fmt.Errorf("failed to read header: %w", err)
	}

	t := Table{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("failed to read record: %w", err)
		}
		t.Rows = append(t.Rows, fitWidth(record, len(header)))
	}

	return t, nil
}

func fitWidth(record []string, width int) []string {
	if len(record) > width {
		return record[:width]
	}
	for len(record) < width {
		record = append(record, "")
	}
	return record
}

// Encode renders the table as CSV with a header row.
func (t Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteTable writes the whole table to filename, replacing any existing file.
func WriteTable(filename string, t Table) error {
	data, err := t.Encode()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}
