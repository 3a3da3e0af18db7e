package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ProcessorOptions configures CSV processing behavior.
type ProcessorOptions struct {
	// RequiredColumns must all be present in the header, otherwise
	// ProcessCSV fails with a MissingColumnError before parsing any row.
	RequiredColumns []string

	// SkipInvalid controls whether to skip invalid records or return an error.
	SkipInvalid bool
}

// Row gives name-based access to one CSV record.
type Row struct {
	index  map[string]int
	values []string
}

// NewRow builds a Row for values laid out as header.
func NewRow(header, values []string) Row {
	return Row{index: headerIndex(header), values: values}
}

// Get returns the value of column name, or "" when the column is absent
// or the record is short.
func (r Row) Get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// ProcessCSV reads a CSV file with a header row and parses each record into type T.
// The parser function converts a Row into the target type.
// Returns a slice of parsed items or an error.
func ProcessCSV[T any](filename string, parser func(Row) (T, error), opts ProcessorOptions) ([]T, error) {
	csvFile, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = csvFile.Close() }()

	// File existence check
	if fi, err := csvFile.Stat(); err != nil || fi.Size() == 0 {
		return nil, fmt.Errorf("CSV file %s is empty or cannot be read", filename)
	}

	reader := csv.NewReader(csvFile)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := headerIndex(header)
	for _, col := range opts.RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &MissingColumnError{File: filename, Column: col}
		}
	}

	var items []T

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Error reading record", "file", filename, "line", line, "error", err)
			continue
		}

		item, err := parser(Row{index: index, values: record})
		if err != nil {
			if opts.SkipInvalid {
				slog.Warn("Skipping invalid record", "file", filename, "line", line, "error", err)
				continue
			}
			return nil, fmt.Errorf("invalid record on line %d: %w", line, err)
		}

		items = append(items, item)
	}

	return items, nil
}

// headerIndex maps column names to their first position.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index
}
