// Package dataset builds the combined goalkeeper dataset and adds the most
// recent transfer fee to it.
package dataset

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/keepers/internal/aggregate"
	"github.com/lepinkainen/keepers/internal/cmdutil"
	"github.com/lepinkainen/keepers/internal/config"
	"github.com/lepinkainen/keepers/internal/keepers"
	"github.com/lepinkainen/keepers/internal/report"
)

// Aggregate concatenates the per-season stats files, groups each player's
// rows newest season first and writes the dataset. Any missing stats file
// fails the command before anything is written.
func Aggregate(env *cmdutil.Env) error {
	seasons, err := config.StatsSources()
	if err != nil {
		return err
	}
	order, err := config.StatsOrder()
	if err != nil {
		return err
	}

	files := make([]string, len(seasons))
	for i, src := range seasons {
		files[i] = config.DataPath(src.File)
	}

	inputs, err := aggregate.LoadInputs(files)
	if err != nil {
		return err
	}
	dataset, err := aggregate.Aggregate(inputs, order)
	if err != nil {
		return fmt.Errorf("failed to aggregate stats: %w", err)
	}
	summary, err := aggregate.Summarize(dataset)
	if err != nil {
		return err
	}

	path := config.DatasetPath()
	if err := cmdutil.SaveTable(path, dataset); err != nil {
		return err
	}
	slog.Info("Aggregated stats", "files", len(files), "rows", summary.Rows, "players", summary.Players)

	report.Aggregation(env.Out, summary)
	report.Preview(env.Out, "Dataset", dataset, report.PreviewRows,
		keepers.ColPlayer, keepers.ColSeason, "Squad", "Comp")

	return cmdutil.WriteTableToDatastore(dataset, cmdutil.TableName(path), "goalkeeper dataset")
}
