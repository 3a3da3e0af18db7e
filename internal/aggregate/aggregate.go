// Package aggregate merges per-season stats tables into one dataset.
package aggregate

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/lepinkainen/keepers/internal/csvutil"
	"github.com/lepinkainen/keepers/internal/keepers"
	"github.com/lepinkainen/keepers/internal/season"
)

// SchemaMismatchError is returned when a stats table does not carry the
// columns of the first table.
type SchemaMismatchError struct {
	Source string
	Want   []string
	Got    []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: columns [%s] do not match [%s]",
		e.Source, strings.Join(e.Got, ","), strings.Join(e.Want, ","))
}

// Input is one stats table and where it came from, for error messages.
type Input struct {
	Source string
	Table  csvutil.Table
}

// Aggregate concatenates the inputs in order and stable-sorts the rows by
// player name, then by season recency under order. Every input row is kept.
func Aggregate(inputs []Input, order season.Order) (csvutil.Table, error) {
	if len(inputs) == 0 {
		return csvutil.Table{}, fmt.Errorf("no stats tables to aggregate")
	}

	out := csvutil.Table{Header: slices.Clone(inputs[0].Table.Header)}
	for _, in := range inputs {
		rows, err := alignRows(in, out.Header)
		if err != nil {
			return csvutil.Table{}, err
		}
		slog.Debug("Loaded stats table", "source", in.Source, "rows", len(rows))
		out.Rows = append(out.Rows, rows...)
	}

	if err := SortByPlayerAndSeason(&out, order); err != nil {
		return csvutil.Table{}, err
	}
	return out, nil
}

// SortByPlayerAndSeason stable-sorts t by (Player ascending, season rank
// ascending). Rows with equal keys keep their relative order.
func SortByPlayerAndSeason(t *csvutil.Table, order season.Order) error {
	cols, err := t.RequireColumns(keepers.ColPlayer, keepers.ColSeason)
	if err != nil {
		return err
	}
	playerCol, seasonCol := cols[0], cols[1]

	ranks := make([]int, len(t.Rows))
	for i, row := range t.Rows {
		rank, err := order.Rank(row[seasonCol])
		if err != nil {
			return fmt.Errorf("row %d (%s): %w", i+1, row[playerCol], err)
		}
		ranks[i] = rank
	}

	idx := make([]int, len(t.Rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := t.Rows[idx[a]], t.Rows[idx[b]]
		if ra[playerCol] != rb[playerCol] {
			return ra[playerCol] < rb[playerCol]
		}
		return ranks[idx[a]] < ranks[idx[b]]
	})

	sorted := make([][]string, len(idx))
	for i, j := range idx {
		sorted[i] = t.Rows[j]
	}
	t.Rows = sorted
	return nil
}

// alignRows returns the rows of in laid out as header. A table whose
// columns are the same set in another order is reordered; anything else
// is a SchemaMismatchError.
func alignRows(in Input, header []string) ([][]string, error) {
	got := in.Table.Header
	if slices.Equal(got, header) {
		return in.Table.Rows, nil
	}

	mismatch := &SchemaMismatchError{Source: in.Source, Want: header, Got: got}
	if len(got) != len(header) || hasDuplicates(header) {
		return nil, mismatch
	}

	perm := make([]int, len(header))
	for i, name := range header {
		pos := in.Table.Column(name)
		if pos < 0 {
			return nil, mismatch
		}
		perm[i] = pos
	}

	rows := make([][]string, len(in.Table.Rows))
	for r, row := range in.Table.Rows {
		aligned := make([]string, len(header))
		for i, pos := range perm {
			if pos < len(row) {
				aligned[i] = row[pos]
			}
		}
		rows[r] = aligned
	}
	return rows, nil
}

func hasDuplicates(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return true
		}
		seen[n] = struct{}{}
	}
	return false
}
