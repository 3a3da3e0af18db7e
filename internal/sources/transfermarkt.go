package sources

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/keepers/internal/extract"
	"github.com/lepinkainen/keepers/internal/fetch"
	"github.com/lepinkainen/keepers/internal/keepers"
	"github.com/lepinkainen/keepers/internal/scrape"
)

// TransferSpec reads the transfer records list. Cell indices count every
// td in the row, including those of the nested player and club tables.
var TransferSpec = extract.TableSpec{
	Table:    "table.items",
	Rows:     "tr.odd, tr.even",
	MinCells: 18,
	Position: extract.PositionFilter{Cell: 4, Contains: "Goalkeeper"},
	Fields: []extract.FieldRule{
		{Name: keepers.ColPlayer, Cell: 3, Kind: extract.LinkText, Required: true},
		{Name: keepers.ColAge, Cell: 5, Kind: extract.Text},
		{Name: keepers.ColSeason, Cell: 7, Kind: extract.Text},
		{Name: keepers.ColNationality, Cell: 8, Kind: extract.ImageTitle},
		{Name: keepers.ColTeamLeft, Cell: 11, Kind: extract.LinkText},
		{Name: keepers.ColTeamJoined, Cell: 15, Kind: extract.LinkText},
		{Name: keepers.ColFee, Cell: 17, Kind: extract.Amount},
	},
}

// MarketValueSpec reads one page of the market value leaderboard.
var MarketValueSpec = extract.TableSpec{
	Table:    "table.items",
	Rows:     "tr.odd, tr.even",
	MinCells: 9,
	Position: extract.PositionFilter{Cell: 4, Contains: "Goalkeeper"},
	Fields: []extract.FieldRule{
		{Name: keepers.ColRank, Cell: 0, Kind: extract.Text},
		{Name: keepers.ColPlayer, Cell: 3, Kind: extract.LinkText, Required: true},
		{Name: keepers.ColAge, Cell: 5, Kind: extract.Text},
		{Name: keepers.ColNationality, Cell: 6, Kind: extract.ImageTitle},
		{Name: keepers.ColClub, Cell: 7, Kind: extract.LinkTitle},
		{Name: keepers.ColMarketValue, Cell: 8, Kind: extract.Amount},
	},
}

// ScrapeTransfers fetches one season of transfer records.
func ScrapeTransfers(ctx context.Context, f fetch.Fetcher, pageURL string) ([]keepers.Transfer, extract.Result, error) {
	res, err := scrape.Page(ctx, f, pageURL, TransferSpec, nil)
	if err != nil {
		return nil, extract.Result{}, err
	}
	return Transfers(res), res, nil
}

// Transfers converts extracted transfer records.
func Transfers(res extract.Result) []keepers.Transfer {
	transfers := make([]keepers.Transfer, 0, len(res.Records))
	for _, rec := range res.Records {
		tr, err := keepers.TransferFromRecord(rec)
		if err != nil {
			slog.Warn("Dropping malformed transfer record", "error", err)
			continue
		}
		transfers = append(transfers, tr)
	}
	return transfers
}

// ScrapeMarketValues walks the leaderboard pages until limit keepers are collected.
func ScrapeMarketValues(ctx context.Context, f fetch.Fetcher, baseURL string, limit int) ([]keepers.MarketValue, extract.Result, error) {
	res, err := scrape.Paginate(ctx, f, baseURL, MarketValueSpec, scrape.PaginateOptions{Limit: limit})
	if err != nil {
		return nil, res, err
	}
	return MarketValues(res), res, nil
}

// MarketValues converts extracted leaderboard records.
func MarketValues(res extract.Result) []keepers.MarketValue {
	values := make([]keepers.MarketValue, 0, len(res.Records))
	for _, rec := range res.Records {
		mv, err := keepers.MarketValueFromRecord(rec)
		if err != nil {
			slog.Warn("Dropping malformed market value record", "error", err)
			continue
		}
		values = append(values, mv)
	}
	return values
}
