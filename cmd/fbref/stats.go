// Package fbref scrapes the per-season advanced goalkeeping tables.
package fbref

import (
	"log/slog"

	"github.com/lepinkainen/keepers/internal/cmdutil"
	"github.com/lepinkainen/keepers/internal/config"
	"github.com/lepinkainen/keepers/internal/keepers"
	"github.com/lepinkainen/keepers/internal/report"
	"github.com/lepinkainen/keepers/internal/sources"
)

var scrapeStatsFunc = sources.ScrapeStats

// ScrapeStats downloads every configured season and writes one CSV per
// season. A season that cannot be fetched or parsed is logged and skipped.
func ScrapeStats(env *cmdutil.Env) error {
	seasons, err := config.StatsSources()
	if err != nil {
		return err
	}

	saved := 0
	for _, src := range seasons {
		if err := env.Ctx.Err(); err != nil {
			return err
		}

		slog.Info("Scraping goalkeeper stats", "season", src.Season, "url", src.URL)
		table, res, err := scrapeStatsFunc(env.Ctx, env.Fetcher(), src.URL, src.Season)
		if err != nil {
			cmdutil.LogScrapeError("stats "+src.Season, src.URL, err)
			continue
		}
		env.Skips.AddPage("fbref", src.URL, res)

		if len(table.Rows) == 0 {
			slog.Warn("No goalkeepers to save", "season", src.Season)
			continue
		}

		if err := cmdutil.SaveTable(config.DataPath(src.File), table); err != nil {
			return err
		}
		report.Preview(env.Out, "Stats "+src.Season, table, report.PreviewRows,
			keepers.ColPlayer, keepers.ColSeason, keepers.ColNationality, "Squad", "Comp")

		if err := cmdutil.WriteTableToDatastore(table, cmdutil.TableName(src.File), "stats "+src.Season); err != nil {
			return err
		}
		saved++
	}

	slog.Info("Stats scrape finished", "seasons", len(seasons), "saved", saved)
	return nil
}
