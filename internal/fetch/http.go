package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/lepinkainen/keepers/internal/errors"
	"github.com/lepinkainen/keepers/internal/ratelimit"
)

// HTTPFetcher downloads pages with a plain HTTP GET.
type HTTPFetcher struct {
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewHTTPFetcher creates a fetcher making one attempt per page.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	opts = opts.withDefaults()

	client := resty.New()
	if opts.Cloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(0)

	return &HTTPFetcher{
		client:  client,
		limiter: ratelimit.New("http", opts.Delay),
	}
}

// Fetch returns the body of pageURL. Non-2xx answers are errors; 429 is
// reported as a RateLimitError.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	slog.Debug("Fetching page", "url", pageURL)
	resp, err := f.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", errors.NewFetchError(pageURL, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusTooManyRequests:
		return "", errors.NewRateLimitErrorWithRetry(
			"rate limited by "+Host(pageURL),
			retryAfter(resp.Header().Get("Retry-After")),
		)
	case code >= http.StatusBadRequest:
		return "", errors.NewFetchStatusError(pageURL, code)
	}

	return resp.String(), nil
}

func retryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
