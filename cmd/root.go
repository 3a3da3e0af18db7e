package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/lepinkainen/humanlog"
	"github.com/lepinkainen/keepers/cmd/dataset"
	"github.com/lepinkainen/keepers/cmd/fbref"
	"github.com/lepinkainen/keepers/cmd/transfermarkt"
	"github.com/lepinkainen/keepers/internal/cache"
	"github.com/lepinkainen/keepers/internal/cmdutil"
	"github.com/lepinkainen/keepers/internal/config"
	"github.com/spf13/viper"
)

var (
	scrapeStats        = fbref.ScrapeStats
	scrapeTransfers    = transfermarkt.ScrapeTransfers
	scrapeMarketValues = transfermarkt.ScrapeMarketValues
	aggregateStats     = dataset.Aggregate
	enrichDataset      = dataset.Enrich
)

// CLI represents the complete command structure for the keepers application
type CLI struct {
	// Global flags
	DataDir    string `help:"Directory the CSV files are read from and written to"`
	SkipReport string `help:"Write skipped rows and name near-misses to this YAML file"`
	JSON       bool   `help:"Also write scraped transfers and market values as JSON"`
	Browser    bool   `help:"Fetch pages with headless Chrome instead of plain HTTP"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`

	// Datasette flags
	Datasette   bool   `help:"Also write every table to the Datasette database"`
	DatasetteDB string `help:"Path to SQLite database file"`

	// Cache flags
	UseCache    bool   `name:"cache" help:"Cache fetched pages in SQLite"`
	CacheDBFile string `help:"Path to cache SQLite database file"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 72h)"`

	Scrape    ScrapeCmd    `cmd:"" help:"Scrape goalkeeper data"`
	Aggregate AggregateCmd `cmd:"" help:"Combine the per-season stats files into the dataset"`
	Enrich    EnrichCmd    `cmd:"" help:"Add the most recent transfer fee to the dataset"`
	Run       RunCmd       `cmd:"" help:"Scrape everything, aggregate and enrich"`
	Cache     CacheCmd     `cmd:"" help:"Manage the page cache"`
	Seasons   SeasonsCmd   `cmd:"" help:"Print the active season orders"`
}

// ScrapeCmd represents the scrape command and its subcommands
type ScrapeCmd struct {
	Stats        StatsCmd        `cmd:"" help:"Scrape advanced goalkeeping stats from fbref"`
	Transfers    TransfersCmd    `cmd:"" help:"Scrape goalkeeper transfer records from Transfermarkt"`
	MarketValues MarketValuesCmd `cmd:"" help:"Scrape the goalkeeper market value leaderboard from Transfermarkt"`
}

// StatsCmd represents the scrape stats command
type StatsCmd struct{}

// TransfersCmd represents the scrape transfers command
type TransfersCmd struct{}

// MarketValuesCmd represents the scrape market-values command
type MarketValuesCmd struct {
	Limit int `help:"Number of goalkeepers to collect (defaults to sources.marketvalues.limit)"`
}

// AggregateCmd represents the aggregate command
type AggregateCmd struct{}

// EnrichCmd represents the enrich command
type EnrichCmd struct{}

// RunCmd represents the full pipeline
type RunCmd struct {
	Limit int `help:"Number of goalkeepers to collect from the market value leaderboard"`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached pages for a source"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(false)
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("keepers"),
		kong.Description("Scrape goalkeeper stats and transfer fees into one dataset."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)
	if cli.Verbose {
		initLogging(true)
	}

	runID := uuid.NewString()
	slog.SetDefault(slog.Default().With("run", runID))

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	env := cmdutil.NewEnv(sigCtx, runID, os.Stdout)

	err := ctx.Run(env)
	if finishErr := env.Finish(); finishErr != nil {
		slog.Error("Failed to write skip report", "error", finishErr)
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func initConfig() {
	config.InitConfig()

	// Enable environment variable support, KEEPERS_DATA_DIR -> data.dir
	viper.SetEnvPrefix("keepers")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("datasette.api_token", "DATASETTE_API_TOKEN"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}
}

// updateGlobalConfig applies flags on top of config.yaml. Only flags that
// were given override the file.
func updateGlobalConfig(cli *CLI) {
	if cli.DataDir != "" {
		viper.Set("data.dir", cli.DataDir)
	}
	if cli.SkipReport != "" {
		viper.Set("data.skipreport", cli.SkipReport)
	}
	if cli.JSON {
		viper.Set("data.json", true)
	}
	if cli.Browser {
		viper.Set("fetch.browser", true)
	}

	if cli.Datasette {
		viper.Set("datasette.enabled", true)
	}
	if cli.DatasetteDB != "" {
		viper.Set("datasette.dbfile", cli.DatasetteDB)
	}

	if cli.UseCache {
		viper.Set("cache.enabled", true)
	}
	if cli.CacheDBFile != "" {
		viper.Set("cache.dbfile", cli.CacheDBFile)
	}
	if cli.CacheTTL != "" {
		viper.Set("cache.ttl", cli.CacheTTL)
	}
}

// Run methods for each command

func (s *StatsCmd) Run(env *cmdutil.Env) error {
	return scrapeStats(env)
}

func (t *TransfersCmd) Run(env *cmdutil.Env) error {
	return scrapeTransfers(env)
}

func (m *MarketValuesCmd) Run(env *cmdutil.Env) error {
	return scrapeMarketValues(env, m.Limit)
}

func (a *AggregateCmd) Run(env *cmdutil.Env) error {
	return aggregateStats(env)
}

func (e *EnrichCmd) Run(env *cmdutil.Env) error {
	return enrichDataset(env)
}

func (r *RunCmd) Run(env *cmdutil.Env) error {
	steps := []struct {
		name string
		run  func(*cmdutil.Env) error
	}{
		{"stats", scrapeStats},
		{"transfers", scrapeTransfers},
		{"market values", func(env *cmdutil.Env) error { return scrapeMarketValues(env, r.Limit) }},
		{"aggregate", aggregateStats},
		{"enrich", enrichDataset},
	}
	for _, step := range steps {
		slog.Info("Running step", "step", step.name)
		if err := step.run(env); err != nil {
			return err
		}
	}
	return nil
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else if env := os.Getenv("KEEPERS_LOG_LEVEL"); env != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(env)); err == nil {
			level = parsed
		}
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
