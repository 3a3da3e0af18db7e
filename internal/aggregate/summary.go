package aggregate

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/keepers/internal/csvutil"
	"github.com/lepinkainen/keepers/internal/keepers"
)

// Summary describes an aggregated dataset.
type Summary struct {
	Rows    int
	Players int
	// MultiSeason counts players with more than one row.
	MultiSeason int
	// Example is the first multi-season player and the seasons listed for them.
	Example        string
	ExampleSeasons []string
}

// Summarize counts rows and players of an aggregated table.
func Summarize(t csvutil.Table) (Summary, error) {
	cols, err := t.RequireColumns(keepers.ColPlayer, keepers.ColSeason)
	if err != nil {
		return Summary{}, err
	}
	playerCol, seasonCol := cols[0], cols[1]

	s := Summary{Rows: len(t.Rows)}
	seasons := make(map[string][]string)
	var order []string
	for _, row := range t.Rows {
		p := row[playerCol]
		if _, seen := seasons[p]; !seen {
			order = append(order, p)
		}
		seasons[p] = append(seasons[p], row[seasonCol])
	}

	s.Players = len(order)
	for _, p := range order {
		if len(seasons[p]) < 2 {
			continue
		}
		s.MultiSeason++
		if s.Example == "" {
			s.Example = p
			s.ExampleSeasons = seasons[p]
		}
	}
	return s, nil
}

// LoadInputs reads every stats file. A missing or unreadable file fails
// the whole load so no partial dataset is produced.
func LoadInputs(files []string) ([]Input, error) {
	inputs := make([]Input, 0, len(files))
	for _, file := range files {
		table, err := csvutil.ReadTable(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load stats file: %w", err)
		}
		slog.Info("Loaded stats file", "file", file, "rows", len(table.Rows))
		inputs = append(inputs, Input{Source: file, Table: table})
	}
	return inputs, nil
}
