// Package transfermarkt scrapes goalkeeper transfer records and the market
// value leaderboard.
package transfermarkt

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/keepers/internal/cmdutil"
	"github.com/lepinkainen/keepers/internal/config"
	"github.com/lepinkainen/keepers/internal/fileutil"
	"github.com/lepinkainen/keepers/internal/keepers"
	"github.com/lepinkainen/keepers/internal/report"
	"github.com/lepinkainen/keepers/internal/sources"
)

const transfersTable = "goalkeeper_transfers"

var transfersSchema = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	player TEXT NOT NULL,
	age TEXT,
	season TEXT,
	nationality TEXT,
	team_left TEXT,
	team_joined TEXT,
	fee TEXT
)`, transfersTable)

var scrapeTransfersFunc = sources.ScrapeTransfers

// ScrapeTransfers downloads every configured season of transfer records
// and writes one CSV per season. Seasons without goalkeeper transfers are
// not written.
func ScrapeTransfers(env *cmdutil.Env) error {
	seasons, err := config.TransferSources()
	if err != nil {
		return err
	}

	var all []keepers.Transfer
	for _, src := range seasons {
		if err := env.Ctx.Err(); err != nil {
			return err
		}

		slog.Info("Scraping goalkeeper transfers", "season", src.Season, "url", src.URL)
		transfers, res, err := scrapeTransfersFunc(env.Ctx, env.Fetcher(), src.URL)
		if err != nil {
			cmdutil.LogScrapeError("transfers "+src.Season, src.URL, err)
			continue
		}
		env.Skips.AddPage("transfermarkt", src.URL, res)

		if len(transfers) == 0 {
			slog.Info("No transfers to save", "season", src.Season)
			continue
		}

		path := config.DataPath(src.File)
		table := keepers.TransferTable(transfers)
		if err := cmdutil.SaveTable(path, table); err != nil {
			return err
		}
		if config.JSONEnabled() {
			if err := fileutil.WriteJSONFile(transfers, fileutil.JSONPath(path)); err != nil {
				return err
			}
		}
		report.Preview(env.Out, "Transfers "+src.Season, table, report.PreviewRows,
			keepers.ColPlayer, keepers.ColSeason, keepers.ColTeamLeft, keepers.ColTeamJoined, keepers.ColFee)
		report.SummarizeFees(transfers).Render(env.Out, "Fees "+src.Season)

		all = append(all, transfers...)
	}

	if len(all) == 0 {
		return nil
	}
	return cmdutil.WriteToDatastore(all, transfersSchema, transfersTable, "goalkeeper transfers", func(t keepers.Transfer) map[string]any {
		return cmdutil.StructToMap(t, cmdutil.StructToMapOptions{})
	})
}
