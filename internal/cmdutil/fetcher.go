package cmdutil

import (
	"log/slog"

	"github.com/lepinkainen/keepers/internal/config"
	"github.com/lepinkainen/keepers/internal/fetch"
)

// NewFetcher builds the page fetcher described by the fetch.* and cache.*
// settings: chromedp when fetch.browser is set, resty otherwise, behind the
// SQLite page cache when caching is enabled.
func NewFetcher() fetch.Fetcher {
	settings := config.Fetch()
	opts := fetch.Options{
		UserAgent:  settings.UserAgent,
		Timeout:    settings.Timeout,
		Delay:      settings.Delay,
		Cloudflare: settings.Cloudflare,
		Headless:   settings.Headless,
	}

	var f fetch.Fetcher
	if settings.Browser {
		f = fetch.NewBrowserFetcher(opts)
	} else {
		f = fetch.NewHTTPFetcher(opts)
	}

	if config.CacheEnabled() {
		slog.Debug("Page cache enabled")
		return fetch.NewCachedFetcher(f)
	}
	return f
}
