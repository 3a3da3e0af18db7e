// Package config holds the viper defaults and typed accessors for keepers.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/lepinkainen/keepers/internal/season"
	"github.com/spf13/viper"
)

// SeasonSource is one season's page and the CSV it is written to.
type SeasonSource struct {
	Season string `mapstructure:"season" yaml:"season"`
	URL    string `mapstructure:"url" yaml:"url"`
	File   string `mapstructure:"file" yaml:"file"`
}

// MarketValueSource is the paginated market value leaderboard.
type MarketValueSource struct {
	URL   string `mapstructure:"url" yaml:"url"`
	File  string `mapstructure:"file" yaml:"file"`
	Limit int    `mapstructure:"limit" yaml:"limit"`
}

// FetchSettings controls how pages are downloaded.
type FetchSettings struct {
	Browser    bool
	Headless   bool
	Cloudflare bool
	UserAgent  string
	Timeout    time.Duration
	Delay      time.Duration
}

const transfersURL = "https://www.transfermarkt.us/transfers/transferrekorde/statistik/top/plus/1/galerie/0?saison_id=%d&land_id=&ausrichtung=&spielerposition_id=1&altersklasse=&jahrgang=0&leihe=&w_s="

// DefaultStatsSources are the fbref advanced goalkeeping pages, newest first.
var DefaultStatsSources = []SeasonSource{
	{
		Season: "2024-2025",
		URL:    "https://fbref.com/en/comps/Big5/keepersadv/players/Big-5-European-Leagues-Stats",
		File:   "keepers_stats_2024_2025.csv",
	},
	{
		Season: "2023-2024",
		URL:    "https://fbref.com/en/comps/Big5/2023-2024/keepersadv/players/2023-2024-Big-5-European-Leagues-Stats",
		File:   "keepers_stats_2023_2024.csv",
	},
	{
		Season: "2022-2023",
		URL:    "https://fbref.com/en/comps/Big5/2022-2023/keepersadv/players/2022-2023-Big-5-European-Leagues-Stats",
		File:   "keepers_stats_2022_2023.csv",
	},
}

// DefaultTransferSources are the transfer record pages, newest first.
// The order here is the concatenation order used when resolving fees.
var DefaultTransferSources = []SeasonSource{
	{Season: "2025-2026", URL: fmt.Sprintf(transfersURL, 2025), File: "goalkeeper_transfers_2025_2026.csv"},
	{Season: "2024-2025", URL: fmt.Sprintf(transfersURL, 2024), File: "goalkeeper_transfers_2024_2025.csv"},
	{Season: "2023-2024", URL: fmt.Sprintf(transfersURL, 2023), File: "goalkeeper_transfers_2023_2024.csv"},
}

// DefaultMarketValues is the goalkeeper market value leaderboard.
var DefaultMarketValues = MarketValueSource{
	URL:   "https://www.transfermarkt.us/spieler-statistik/wertvollstespieler/marktwertetop/mw/spielerposition_id/1",
	File:  "goalkeeper_market_values.csv",
	Limit: 100,
}

var (
	// DefaultStatsSeasons is the recency order of fbref season labels.
	DefaultStatsSeasons = []string{"2024-2025", "2023-2024", "2022-2023"}
	// DefaultTransferSeasons is the recency order of Transfermarkt season labels.
	DefaultTransferSeasons = []string{"25/26", "24/25", "23/24"}
)

// DatasetFile is the aggregated, later enriched, stats table.
const DatasetFile = "goalkeeper_dataset.csv"

// InitConfig registers the default values of every key.
func InitConfig() {
	viper.SetDefault("data.dir", ".")
	viper.SetDefault("data.dataset", DatasetFile)
	viper.SetDefault("data.skipreport", "")
	viper.SetDefault("data.json", false)

	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.dbfile", "./keepers.db")
	viper.SetDefault("datasette.mode", "local")
	viper.SetDefault("datasette.database", "keepers")
	viper.SetDefault("datasette.remote_url", "")
	viper.SetDefault("datasette.api_token", "")

	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "24h")

	viper.SetDefault("fetch.browser", false)
	viper.SetDefault("fetch.headless", true)
	viper.SetDefault("fetch.cloudflare", false)
	viper.SetDefault("fetch.useragent", "")
	viper.SetDefault("fetch.timeout", "10s")
	viper.SetDefault("fetch.delay", "1s")

	viper.SetDefault("seasons.version", 1)
	viper.SetDefault("seasons.unknown", string(season.PolicyFail))
	viper.SetDefault("seasons.stats", DefaultStatsSeasons)
	viper.SetDefault("seasons.transfers", DefaultTransferSeasons)

	viper.SetDefault("sources.stats", DefaultStatsSources)
	viper.SetDefault("sources.transfers", DefaultTransferSources)
	viper.SetDefault("sources.marketvalues", DefaultMarketValues)
}

// DataDir is the directory all CSV files are read from and written to.
func DataDir() string {
	if dir := viper.GetString("data.dir"); dir != "" {
		return dir
	}
	return "."
}

// DataPath joins name onto DataDir.
func DataPath(name string) string {
	return filepath.Join(DataDir(), name)
}

// DatasetPath is the location of the aggregated dataset.
func DatasetPath() string {
	name := viper.GetString("data.dataset")
	if name == "" {
		name = DatasetFile
	}
	return DataPath(name)
}

// StatsSources returns the configured fbref pages.
func StatsSources() ([]SeasonSource, error) {
	return seasonSources("sources.stats", DefaultStatsSources)
}

// TransferSources returns the configured transfer record pages in
// concatenation order.
func TransferSources() ([]SeasonSource, error) {
	return seasonSources("sources.transfers", DefaultTransferSources)
}

func seasonSources(key string, fallback []SeasonSource) ([]SeasonSource, error) {
	switch v := viper.Get(key).(type) {
	case nil:
		return fallback, nil
	case []SeasonSource:
		return v, nil
	}
	var sources []SeasonSource
	if err := viper.UnmarshalKey(key, &sources); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	for i, s := range sources {
		if s.URL == "" || s.File == "" {
			return nil, fmt.Errorf("invalid %s[%d]: url and file are required", key, i)
		}
	}
	return sources, nil
}

// MarketValues returns the market value leaderboard settings.
func MarketValues() (MarketValueSource, error) {
	src := DefaultMarketValues
	switch v := viper.Get("sources.marketvalues").(type) {
	case nil:
	case MarketValueSource:
		src = v
	default:
		if err := viper.UnmarshalKey("sources.marketvalues", &src); err != nil {
			return MarketValueSource{}, fmt.Errorf("invalid sources.marketvalues: %w", err)
		}
	}
	if src.URL == "" || src.File == "" {
		return MarketValueSource{}, fmt.Errorf("invalid sources.marketvalues: url and file are required")
	}
	return src, nil
}

// StatsOrder builds the season order used to sort aggregated stats.
func StatsOrder() (season.Order, error) {
	return seasonOrder("stats", "seasons.stats")
}

// TransferOrder builds the season order used to pick the most recent fee.
func TransferOrder() (season.Order, error) {
	return seasonOrder("transfers", "seasons.transfers")
}

func seasonOrder(name, key string) (season.Order, error) {
	policy, err := season.ParsePolicy(viper.GetString("seasons.unknown"))
	if err != nil {
		return season.Order{}, err
	}
	return season.NewOrder(name, viper.GetInt("seasons.version"), viper.GetStringSlice(key), policy)
}

// Fetch returns the download settings.
func Fetch() FetchSettings {
	return FetchSettings{
		Browser:    viper.GetBool("fetch.browser"),
		Headless:   viper.GetBool("fetch.headless"),
		Cloudflare: viper.GetBool("fetch.cloudflare"),
		UserAgent:  viper.GetString("fetch.useragent"),
		Timeout:    viper.GetDuration("fetch.timeout"),
		Delay:      viper.GetDuration("fetch.delay"),
	}
}

// CacheEnabled reports whether fetched pages go through the page cache.
func CacheEnabled() bool {
	return viper.GetBool("cache.enabled")
}

// SkipReportPath is where skipped rows are written as YAML, "" when disabled.
func SkipReportPath() string {
	return viper.GetString("data.skipreport")
}

// JSONEnabled reports whether scraped records are also written as JSON.
func JSONEnabled() bool {
	return viper.GetBool("data.json")
}
