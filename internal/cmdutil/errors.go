package cmdutil

import (
	stdErrors "errors"
	"log/slog"

	"github.com/lepinkainen/keepers/internal/errors"
)

// LogScrapeError logs why a page produced no data. Scrape failures never
// abort a command; the caller moves on to the next page or season.
func LogScrapeError(what, url string, err error) {
	var rateErr *errors.RateLimitError
	switch {
	case stdErrors.As(err, &rateErr):
		slog.Error("Rate limited", "what", what, "url", url, "retry_after", rateErr.RetryAfter)
	case errors.IsFetchError(err):
		slog.Error("Failed to fetch page", "what", what, "url", url, "error", err)
	default:
		slog.Error("Failed to extract page", "what", what, "url", url, "error", err)
	}
}
