package dataset

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/keepers/internal/cmdutil"
	"github.com/lepinkainen/keepers/internal/config"
	"github.com/lepinkainen/keepers/internal/csvutil"
	"github.com/lepinkainen/keepers/internal/fees"
	"github.com/lepinkainen/keepers/internal/keepers"
	"github.com/lepinkainen/keepers/internal/report"
)

// Enrich adds the Recent Fee column to the dataset and rewrites it in
// place. All transfer files must exist.
func Enrich(env *cmdutil.Env) error {
	path := config.DatasetPath()
	dataset, err := csvutil.ReadTable(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	seasons, err := config.TransferSources()
	if err != nil {
		return err
	}
	order, err := config.TransferOrder()
	if err != nil {
		return err
	}

	files := make([]string, len(seasons))
	for i, src := range seasons {
		files[i] = config.DataPath(src.File)
	}
	sources, err := fees.LoadSources(files)
	if err != nil {
		return err
	}
	recent, err := fees.NewRecentFees(sources, order)
	if err != nil {
		return fmt.Errorf("failed to resolve recent fees: %w", err)
	}

	stats, err := fees.Enrich(&dataset, recent)
	if err != nil {
		return err
	}
	if err := recordNearMisses(env, dataset, recent); err != nil {
		return err
	}

	if err := cmdutil.SaveTable(path, dataset); err != nil {
		return err
	}
	slog.Info("Added recent fees", "players", stats.Players, "with_fee", stats.WithFee, "without_fee", stats.WithoutFee)

	report.Enrichment(env.Out, stats)
	report.Preview(env.Out, "Enriched dataset", dataset, report.PreviewRows,
		keepers.ColPlayer, keepers.ColSeason, keepers.ColRecentFee)

	return cmdutil.WriteTableToDatastore(dataset, cmdutil.TableName(path), "enriched goalkeeper dataset")
}

// recordNearMisses logs transfer names that matched no stats row but look
// like one that did. Matching itself stays exact.
func recordNearMisses(env *cmdutil.Env, dataset csvutil.Table, recent *fees.RecentFees) error {
	unmatched, err := fees.Unmatched(dataset, recent)
	if err != nil || len(unmatched) == 0 {
		return err
	}

	playerCol := dataset.Column(keepers.ColPlayer)
	seen := make(map[string]bool, len(dataset.Rows))
	names := make([]string, 0, len(dataset.Rows))
	for _, row := range dataset.Rows {
		if p := row[playerCol]; !seen[p] {
			seen[p] = true
			names = append(names, p)
		}
	}

	misses := fees.NearMisses(unmatched, names, fees.DefaultNearMissThreshold)
	for _, m := range misses {
		slog.Warn("Transfer name matches no stats row", "transfer", m.Transfer, "closest", m.Stats, "similarity", m.Similarity)
	}
	slog.Debug("Unmatched transfer players", "count", len(unmatched), "near_misses", len(misses))
	env.Skips.NearMisses = append(env.Skips.NearMisses, misses...)
	return nil
}
