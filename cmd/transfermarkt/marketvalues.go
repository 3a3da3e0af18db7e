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

const marketValuesTable = "goalkeeper_market_values"

var marketValuesSchema = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	rank TEXT,
	player TEXT NOT NULL,
	age TEXT,
	nationality TEXT,
	club TEXT,
	market_value TEXT
)`, marketValuesTable)

var scrapeMarketValuesFunc = sources.ScrapeMarketValues

// ScrapeMarketValues walks the market value leaderboard. limit overrides
// the configured number of keepers when positive.
func ScrapeMarketValues(env *cmdutil.Env, limit int) error {
	src, err := config.MarketValues()
	if err != nil {
		return err
	}
	if limit > 0 {
		src.Limit = limit
	}

	slog.Info("Scraping goalkeeper market values", "url", src.URL, "limit", src.Limit)
	values, res, err := scrapeMarketValuesFunc(env.Ctx, env.Fetcher(), src.URL, src.Limit)
	if err != nil {
		return err
	}
	env.Skips.AddPage("transfermarkt", src.URL, res)

	if len(values) == 0 {
		slog.Info("No market values to save")
		return nil
	}

	path := config.DataPath(src.File)
	table := keepers.MarketValueTable(values)
	if err := cmdutil.SaveTable(path, table); err != nil {
		return err
	}
	if config.JSONEnabled() {
		if err := fileutil.WriteJSONFile(values, fileutil.JSONPath(path)); err != nil {
			return err
		}
	}
	report.Preview(env.Out, "Market values", table, report.PreviewRows)
	if len(values) > report.PreviewRows {
		report.PreviewTail(env.Out, "Last few entries", table, report.PreviewRows)
	}

	return cmdutil.WriteToDatastore(values, marketValuesSchema, marketValuesTable, "goalkeeper market values", func(mv keepers.MarketValue) map[string]any {
		return cmdutil.StructToMap(mv, cmdutil.StructToMapOptions{})
	})
}
