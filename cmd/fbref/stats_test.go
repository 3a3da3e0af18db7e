package fbref

import (
	"bytes"
	"context"
	"testing"

	"github.com/lepinkainen/keepers/internal/cmdutil"
	"github.com/lepinkainen/keepers/internal/config"
	"github.com/lepinkainen/keepers/internal/csvutil"
	"github.com/lepinkainen/keepers/internal/errors"
	"github.com/lepinkainen/keepers/internal/extract"
	"github.com/lepinkainen/keepers/internal/fetch"
	"github.com/lepinkainen/keepers/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noFetch struct{}

func (noFetch) Fetch(context.Context, string) (string, error) { return "", nil }

func stubScrape(t *testing.T, fn func(url, season string) (csvutil.Table, extract.Result, error)) {
	t.Helper()
	orig := scrapeStatsFunc
	scrapeStatsFunc = func(_ context.Context, _ fetch.Fetcher, url, season string) (csvutil.Table, extract.Result, error) {
		return fn(url, season)
	}
	t.Cleanup(func() { scrapeStatsFunc = orig })
}

func newEnv(out *bytes.Buffer) *cmdutil.Env {
	return cmdutil.NewEnv(context.Background(), "test", out).WithFetcher(noFetch{})
}

func TestScrapeStats_WritesOneFilePerSeason(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.ResetConfig(t)
	testutil.SetupDataDir(t, env)

	stubScrape(t, func(url, season string) (csvutil.Table, extract.Result, error) {
		return csvutil.Table{
			Header: []string{"Player", "Season", "Squad"},
			Rows:   [][]string{{"Keeper " + season, season, "Club"}},
		}, extract.Result{Rows: 1}, nil
	})

	var out bytes.Buffer
	run := newEnv(&out)
	require.NoError(t, ScrapeStats(run))

	for _, src := range config.DefaultStatsSources {
		env.RequireFileExists(src.File)
		env.AssertFileContains(src.File, "Keeper "+src.Season+","+src.Season+",Club")
	}
	assert.Contains(t, out.String(), "Stats 2024-2025")
	assert.Len(t, run.Skips.Pages, 3)
}

func TestScrapeStats_FailedSeasonIsSkipped(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.ResetConfig(t)
	testutil.SetupDataDir(t, env)

	stubScrape(t, func(url, season string) (csvutil.Table, extract.Result, error) {
		if season == "2023-2024" {
			return csvutil.Table{}, extract.Result{}, errors.NewFetchStatusError(url, 403)
		}
		if season == "2022-2023" {
			return csvutil.Table{Header: []string{"Player", "Season"}}, extract.Result{}, nil
		}
		return csvutil.Table{Header: []string{"Player", "Season"}, Rows: [][]string{{"A", season}}}, extract.Result{Rows: 1}, nil
	})

	require.NoError(t, ScrapeStats(newEnv(&bytes.Buffer{})))

	env.RequireFileExists("keepers_stats_2024_2025.csv")
	env.RequireFileNotExists("keepers_stats_2023_2024.csv")
	env.RequireFileNotExists("keepers_stats_2022_2023.csv")
}

func TestScrapeStats_StopsOnCancel(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.ResetConfig(t)
	testutil.SetupDataDir(t, env)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	stubScrape(t, func(url, season string) (csvutil.Table, extract.Result, error) {
		calls++
		cancel()
		return csvutil.Table{}, extract.Result{}, context.Canceled
	})

	run := cmdutil.NewEnv(ctx, "test", &bytes.Buffer{}).WithFetcher(noFetch{})
	err := ScrapeStats(run)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestScrapeStats_WritesDatastore(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.ResetConfig(t)
	testutil.SetupDataDir(t, env)
	testutil.SetupDatasetteDB(t, env)

	stubScrape(t, func(url, season string) (csvutil.Table, extract.Result, error) {
		return csvutil.Table{Header: []string{"Player", "Season"}, Rows: [][]string{{"A", season}}}, extract.Result{Rows: 1}, nil
	})

	require.NoError(t, ScrapeStats(newEnv(&bytes.Buffer{})))
	env.RequireFileExists("test.db")
}
