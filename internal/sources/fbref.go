package sources

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/lepinkainen/keepers/internal/csvutil"
	"github.com/lepinkainen/keepers/internal/extract"
	"github.com/lepinkainen/keepers/internal/fetch"
	"github.com/lepinkainen/keepers/internal/keepers"
	"github.com/lepinkainen/keepers/internal/scrape"
)

// StatsSpec reads fbref's advanced goalkeeping table. The leading Rk
// column and the trailing Matches link column are dropped.
var StatsSpec = extract.TableSpec{
	Table:           "table#stats_keeper_adv",
	Rows:            "tbody > tr",
	Position:        extract.PositionFilter{Column: "Pos", Contains: "GK"},
	HeaderFromTable: true,
	DropFirst:       1,
	DropLast:        1,
}

// uncomment exposes tables fbref ships inside HTML comments.
func uncomment(html string) string {
	return strings.NewReplacer("<!--", "", "-->", "").Replace(html)
}

// ScrapeStats fetches one season's stats page and returns it as a table
// with the Season column inserted after Player.
func ScrapeStats(ctx context.Context, f fetch.Fetcher, pageURL, season string) (csvutil.Table, extract.Result, error) {
	res, err := scrape.Page(ctx, f, pageURL, StatsSpec, uncomment)
	if err != nil {
		return csvutil.Table{}, extract.Result{}, err
	}
	table, err := StatsTable(res, season)
	return table, res, err
}

// StatsTable converts an extracted stats page into the per-season CSV layout.
func StatsTable(res extract.Result, season string) (csvutil.Table, error) {
	table := csvutil.Table{Header: slices.Clone(res.Header)}
	for _, rec := range res.Records {
		table.Rows = append(table.Rows, slices.Clone(rec))
	}

	if _, err := table.RequireColumns(keepers.ColPlayer); err != nil {
		return csvutil.Table{}, err
	}
	if table.Column(keepers.ColSeason) >= 0 {
		return csvutil.Table{}, fmt.Errorf("stats table already has a %s column", keepers.ColSeason)
	}
	table.InsertColumnAfter(keepers.ColPlayer, keepers.ColSeason, season)
	return table, nil
}
