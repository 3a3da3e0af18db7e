package cmdutil

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/lepinkainen/keepers/internal/config"
	"github.com/lepinkainen/keepers/internal/fetch"
	"github.com/lepinkainen/keepers/internal/report"
)

var newFetcherFunc = NewFetcher

// Env carries the state shared by the commands of one run.
type Env struct {
	Ctx   context.Context
	RunID string
	// Out receives previews and summaries.
	Out   io.Writer
	Skips *report.SkipReport

	fetcher fetch.Fetcher
}

// NewEnv creates the environment for one command run.
func NewEnv(ctx context.Context, runID string, out io.Writer) *Env {
	if out == nil {
		out = os.Stdout
	}
	return &Env{
		Ctx:   ctx,
		RunID: runID,
		Out:   out,
		Skips: &report.SkipReport{Run: runID},
	}
}

// WithFetcher replaces the configured fetcher.
func (e *Env) WithFetcher(f fetch.Fetcher) *Env {
	e.fetcher = f
	return e
}

// Fetcher returns the page fetcher, building it from config on first use.
func (e *Env) Fetcher() fetch.Fetcher {
	if e.fetcher == nil {
		e.fetcher = newFetcherFunc()
	}
	return e.fetcher
}

// Finish writes the skip report when one is configured and anything was
// recorded.
func (e *Env) Finish() error {
	path := config.SkipReportPath()
	if path == "" || (len(e.Skips.Pages) == 0 && len(e.Skips.NearMisses) == 0) {
		return nil
	}
	if err := e.Skips.Write(path); err != nil {
		return err
	}
	slog.Info("Wrote skip report", "file", path, "pages", len(e.Skips.Pages), "skipped_rows", e.Skips.SkippedRows())
	return nil
}
