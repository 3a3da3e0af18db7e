// Package keepers defines the goalkeeper records shared by the scrapers,
// the aggregator and the fee resolver.
package keepers

import (
	"fmt"

	"github.com/lepinkainen/keepers/internal/csvutil"
)

// Column names used across the CSV files. Player is the join key.
const (
	ColPlayer      = "Player"
	ColSeason      = "Season"
	ColAge         = "Age"
	ColNationality = "Nationality"
	ColTeamLeft    = "Team Left"
	ColTeamJoined  = "Team Joined"
	ColFee         = "Fee"
	ColRank        = "Rank"
	ColClub        = "Club"
	ColMarketValue = "Market Value"
	ColRecentFee   = "Recent Fee"
)

// TransferHeader is the column order of goalkeeper_transfers_*.csv.
var TransferHeader = []string{ColPlayer, ColAge, ColSeason, ColNationality, ColTeamLeft, ColTeamJoined, ColFee}

// MarketValueHeader is the column order of goalkeeper_market_values.csv.
var MarketValueHeader = []string{ColRank, ColPlayer, ColAge, ColNationality, ColClub, ColMarketValue}

// Transfer is one goalkeeper transfer. Season uses the short "24/25" form
// and Fee is the scraped text, numeric millions when it parsed.
type Transfer struct {
	Player      string `json:"player"`
	Age         string `json:"age"`
	Season      string `json:"season"`
	Nationality string `json:"nationality"`
	TeamLeft    string `json:"team_left"`
	TeamJoined  string `json:"team_joined"`
	Fee         string `json:"fee"`
}

// Record returns the transfer in TransferHeader order.
func (t Transfer) Record() []string {
	return []string{t.Player, t.Age, t.Season, t.Nationality, t.TeamLeft, t.TeamJoined, t.Fee}
}

// TransferFromRecord builds a Transfer from a record in TransferHeader order.
func TransferFromRecord(record []string) (Transfer, error) {
	if len(record) != len(TransferHeader) {
		return Transfer{}, fmt.Errorf("transfer record has %d fields, want %d", len(record), len(TransferHeader))
	}
	return Transfer{
		Player:      record[0],
		Age:         record[1],
		Season:      record[2],
		Nationality: record[3],
		TeamLeft:    record[4],
		TeamJoined:  record[5],
		Fee:         record[6],
	}, nil
}

// ParseTransfer reads a transfer from a CSV row. Only Player, Season and
// Fee are required; the descriptive columns default to "".
func ParseTransfer(row csvutil.Row) (Transfer, error) {
	player := row.Get(ColPlayer)
	if player == "" {
		return Transfer{}, fmt.Errorf("empty %s", ColPlayer)
	}
	return Transfer{
		Player:      player,
		Age:         row.Get(ColAge),
		Season:      row.Get(ColSeason),
		Nationality: row.Get(ColNationality),
		TeamLeft:    row.Get(ColTeamLeft),
		TeamJoined:  row.Get(ColTeamJoined),
		Fee:         row.Get(ColFee),
	}, nil
}

// MarketValue is one entry of the market value leaderboard.
type MarketValue struct {
	Rank        string `json:"rank"`
	Player      string `json:"player"`
	Age         string `json:"age"`
	Nationality string `json:"nationality"`
	Club        string `json:"club"`
	MarketValue string `json:"market_value"`
}

// Record returns the market value in MarketValueHeader order.
func (m MarketValue) Record() []string {
	return []string{m.Rank, m.Player, m.Age, m.Nationality, m.Club, m.MarketValue}
}

// MarketValueFromRecord builds a MarketValue from a record in MarketValueHeader order.
func MarketValueFromRecord(record []string) (MarketValue, error) {
	if len(record) != len(MarketValueHeader) {
		return MarketValue{}, fmt.Errorf("market value record has %d fields, want %d", len(record), len(MarketValueHeader))
	}
	return MarketValue{
		Rank:        record[0],
		Player:      record[1],
		Age:         record[2],
		Nationality: record[3],
		Club:        record[4],
		MarketValue: record[5],
	}, nil
}

// TransferTable returns transfers as a table in TransferHeader order.
func TransferTable(transfers []Transfer) csvutil.Table {
	t := csvutil.Table{Header: append([]string(nil), TransferHeader...)}
	for _, tr := range transfers {
		t.Rows = append(t.Rows, tr.Record())
	}
	return t
}

// MarketValueTable returns market values as a table in MarketValueHeader order.
func MarketValueTable(values []MarketValue) csvutil.Table {
	t := csvutil.Table{Header: append([]string(nil), MarketValueHeader...)}
	for _, mv := range values {
		t.Rows = append(t.Rows, mv.Record())
	}
	return t
}
