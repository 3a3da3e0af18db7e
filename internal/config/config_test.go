package config

import (
	"strings"
	"testing"
	"time"

	"github.com/lepinkainen/keepers/internal/season"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	InitConfig()
	t.Cleanup(viper.Reset)
}

func TestDefaults(t *testing.T) {
	resetViper(t)

	stats, err := StatsSources()
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "2024-2025", stats[0].Season)
	assert.Equal(t, "keepers_stats_2024_2025.csv", stats[0].File)

	transfers, err := TransferSources()
	require.NoError(t, err)
	require.Len(t, transfers, 3)
	assert.Contains(t, transfers[0].URL, "saison_id=2025")
	assert.Equal(t, "goalkeeper_transfers_2023_2024.csv", transfers[2].File)

	mv, err := MarketValues()
	require.NoError(t, err)
	assert.Equal(t, 100, mv.Limit)

	fetch := Fetch()
	assert.Equal(t, 10*time.Second, fetch.Timeout)
	assert.Equal(t, time.Second, fetch.Delay)
	assert.False(t, fetch.Browser)
	assert.False(t, CacheEnabled())
	assert.Equal(t, "goalkeeper_dataset.csv", DatasetPath())
}

func TestSeasonOrders(t *testing.T) {
	resetViper(t)

	stats, err := StatsOrder()
	require.NoError(t, err)
	rank, err := stats.Rank("2022-2023")
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	transfers, err := TransferOrder()
	require.NoError(t, err)
	rank, err = transfers.Rank("25/26")
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	// the formats are not interchangeable
	_, err = transfers.Rank("2024-2025")
	var unknown *season.UnknownSeasonError
	require.ErrorAs(t, err, &unknown)
}

func TestSeasonOrders_FromConfigFile(t *testing.T) {
	resetViper(t)

	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(`
seasons:
  version: 2
  unknown: last
  transfers: ["26/27", "25/26"]
`)))

	order, err := TransferOrder()
	require.NoError(t, err)
	assert.Equal(t, 2, order.Version)
	assert.Equal(t, season.PolicyLast, order.Unknown)

	rank, err := order.Rank("19/20")
	require.NoError(t, err)
	assert.Equal(t, 3, rank)
}

func TestSeasonOrders_InvalidPolicy(t *testing.T) {
	resetViper(t)
	viper.Set("seasons.unknown", "ignore")

	_, err := StatsOrder()
	require.Error(t, err)
}

func TestSources_FromConfigFile(t *testing.T) {
	resetViper(t)

	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(`
data:
  dir: out
sources:
  stats:
    - season: 2021-2022
      url: https://example.com/stats
      file: stats_2021.csv
  marketvalues:
    url: https://example.com/mv
    file: mv.csv
    limit: 50
`)))

	stats, err := StatsSources()
	require.NoError(t, err)
	assert.Equal(t, []SeasonSource{{Season: "2021-2022", URL: "https://example.com/stats", File: "stats_2021.csv"}}, stats)

	mv, err := MarketValues()
	require.NoError(t, err)
	assert.Equal(t, 50, mv.Limit)

	assert.Equal(t, "out/x.csv", DataPath("x.csv"))
}

func TestSources_MissingURL(t *testing.T) {
	resetViper(t)

	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(`
sources:
  transfers:
    - season: 2025-2026
      file: t.csv
`)))

	_, err := TransferSources()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url and file are required")
}

func TestOutputToggles(t *testing.T) {
	resetViper(t)

	assert.False(t, JSONEnabled())
	assert.False(t, CacheEnabled())
	assert.Equal(t, "keepers", viper.GetString("datasette.database"))

	viper.Set("data.json", true)
	assert.True(t, JSONEnabled())
}
