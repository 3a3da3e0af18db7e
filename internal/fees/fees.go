// Package fees resolves each goalkeeper's most recent transfer fee and
// attaches it to the stats dataset.
package fees

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/lepinkainen/keepers/internal/csvutil"
	"github.com/lepinkainen/keepers/internal/keepers"
	"github.com/lepinkainen/keepers/internal/season"
)

// Resolver maps a player name to the fee of their most recent transfer.
// Names match exactly.
type Resolver interface {
	Resolve(player string) (fee string, ok bool)
}

// Source is the transfers of one season file, in file order.
type Source struct {
	Name      string
	Transfers []keepers.Transfer
}

// RecentFees is a Resolver built from transfer records.
type RecentFees struct {
	fees map[string]string
}

type rankedTransfer struct {
	keepers.Transfer
	rank int
}

// NewRecentFees concatenates sources in the given order, ranks every
// transfer's season under order and keeps, per player, the fee of the
// best-ranked transfer. Transfers with equal rank resolve to the one that
// came first in the concatenation.
func NewRecentFees(sources []Source, order season.Order) (*RecentFees, error) {
	var all []rankedTransfer
	for _, src := range sources {
		for _, tr := range src.Transfers {
			rank, err := order.Rank(tr.Season)
			if err != nil {
				return nil, fmt.Errorf("%s: transfer of %s: %w", src.Name, tr.Player, err)
			}
			all = append(all, rankedTransfer{Transfer: tr, rank: rank})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Player != all[j].Player {
			return all[i].Player < all[j].Player
		}
		return all[i].rank < all[j].rank
	})

	fees := make(map[string]string)
	for _, tr := range all {
		if _, seen := fees[tr.Player]; !seen {
			fees[tr.Player] = tr.Fee
		}
	}

	slog.Debug("Resolved recent fees", "transfers", len(all), "players", len(fees))
	return &RecentFees{fees: fees}, nil
}

// Resolve returns the most recent fee of player.
func (r *RecentFees) Resolve(player string) (string, bool) {
	fee, ok := r.fees[player]
	return fee, ok
}

// Len is the number of players with at least one transfer.
func (r *RecentFees) Len() int {
	return len(r.fees)
}

// Players returns the resolved player names, sorted.
func (r *RecentFees) Players() []string {
	players := make([]string, 0, len(r.fees))
	for p := range r.fees {
		players = append(players, p)
	}
	slices.Sort(players)
	return players
}

// LoadSources reads transfer files in order. Every file must exist and
// carry Player, Season and Fee columns.
func LoadSources(files []string) ([]Source, error) {
	sources := make([]Source, 0, len(files))
	for _, file := range files {
		transfers, err := csvutil.ProcessCSV(file, keepers.ParseTransfer, csvutil.ProcessorOptions{
			RequiredColumns: []string{keepers.ColPlayer, keepers.ColSeason, keepers.ColFee},
			SkipInvalid:     true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load transfer file: %w", err)
		}
		slog.Info("Loaded transfer file", "file", file, "transfers", len(transfers))
		sources = append(sources, Source{Name: file, Transfers: transfers})
	}
	return sources, nil
}

// EnrichStats counts the outcome of an enrichment by distinct player.
type EnrichStats struct {
	Rows       int
	Players    int
	WithFee    int
	WithoutFee int
}

// Enrich sets the Recent Fee column of every row to the resolved fee of
// its player, "" when there is none. An existing Recent Fee column is
// overwritten in place.
func Enrich(t *csvutil.Table, r Resolver) (EnrichStats, error) {
	cols, err := t.RequireColumns(keepers.ColPlayer)
	if err != nil {
		return EnrichStats{}, err
	}
	playerCol := cols[0]

	stats := EnrichStats{Rows: len(t.Rows)}
	seen := make(map[string]bool)
	t.SetColumn(keepers.ColRecentFee, func(row []string) string {
		player := row[playerCol]
		fee, ok := r.Resolve(player)
		if !seen[player] {
			seen[player] = true
			stats.Players++
			if ok {
				stats.WithFee++
			} else {
				stats.WithoutFee++
			}
		}
		return fee
	})
	return stats, nil
}

// Unmatched returns the resolved players that do not appear in t.
func Unmatched(t csvutil.Table, fees *RecentFees) ([]string, error) {
	cols, err := t.RequireColumns(keepers.ColPlayer)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		present[row[cols[0]]] = true
	}

	var unmatched []string
	for _, p := range fees.Players() {
		if !present[p] {
			unmatched = append(unmatched, p)
		}
	}
	return unmatched, nil
}
