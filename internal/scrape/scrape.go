// Package scrape combines fetching and table extraction into page and
// multi-page scrapes.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/keepers/internal/extract"
	"github.com/lepinkainen/keepers/internal/fetch"
)

// DefaultPageSize is the number of rows on a full leaderboard page. A
// shorter page is the last one.
const DefaultPageSize = 25

// Preprocess rewrites fetched HTML before extraction.
type Preprocess func(html string) string

// Page fetches pageURL and extracts spec's table from it.
func Page(ctx context.Context, f fetch.Fetcher, pageURL string, spec extract.TableSpec, pre Preprocess) (extract.Result, error) {
	html, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return extract.Result{}, err
	}
	if pre != nil {
		html = pre(html)
	}

	res, err := extract.Extract(html, spec)
	if err != nil {
		return extract.Result{}, fmt.Errorf("%s: %w", pageURL, err)
	}

	slog.Info("Extracted page",
		"url", pageURL,
		"rows", res.Rows,
		"records", len(res.Records),
		"dropped", res.Dropped,
		"skipped", len(res.Skipped),
	)
	return res, nil
}

// PaginateOptions bounds a multi-page scrape.
type PaginateOptions struct {
	// Limit is the maximum number of records returned.
	Limit int
	// PageSize is the row count of a full page, DefaultPageSize when zero.
	PageSize int
}

// Paginate walks baseURL, baseURL&page=2, ... collecting records until the
// limit is reached or a page fails, has no table, has no rows or is short.
// Page failures end the walk and are not returned; only a cancelled
// context is an error.
func Paginate(ctx context.Context, f fetch.Fetcher, baseURL string, spec extract.TableSpec, opts PaginateOptions) (extract.Result, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all extract.Result
	for page := 1; opts.Limit <= 0 || len(all.Records) < opts.Limit; page++ {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		pageURL := PageURL(baseURL, page)
		slog.Info("Scraping page", "page", page, "url", pageURL)

		res, err := Page(ctx, f, pageURL, spec, nil)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			slog.Warn("Stopping pagination", "page", page, "error", err)
			break
		}
		if res.Rows == 0 {
			slog.Info("No more rows found", "page", page)
			break
		}

		all.Append(res)

		if res.Rows < pageSize {
			slog.Info("Reached end of data", "page", page, "rows", res.Rows)
			break
		}
	}

	if all.Header == nil {
		all.Header = spec.Header()
	}
	if opts.Limit > 0 && len(all.Records) > opts.Limit {
		all.Records = all.Records[:opts.Limit]
	}
	return all, nil
}

// PageURL returns the URL of page n; page 1 is baseURL itself.
func PageURL(baseURL string, n int) string {
	if n <= 1 {
		return baseURL
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", baseURL, sep, n)
}
