package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chromedp/chromedp"
	"github.com/lepinkainen/keepers/internal/errors"
	"github.com/lepinkainen/keepers/internal/ratelimit"
)

var (
	chromedpExecAllocator = chromedp.NewExecAllocator
	chromedpContext       = chromedp.NewContext
	chromedpRunner        = chromedp.Run
)

// BrowserFetcher renders pages in a headless Chrome. Slower than HTTPFetcher
// but gets through the JavaScript challenges fbref serves to scripts.
type BrowserFetcher struct {
	opts    Options
	limiter *ratelimit.Limiter
}

// NewBrowserFetcher creates a fetcher that starts a browser per page.
func NewBrowserFetcher(opts Options) *BrowserFetcher {
	opts = opts.withDefaults()
	return &BrowserFetcher{
		opts:    opts,
		limiter: ratelimit.New("browser", opts.Delay),
	}
}

// Fetch navigates to pageURL and returns the rendered document.
func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	allocCtx, cancelAllocator := chromedpExecAllocator(ctx, buildExecAllocatorOptions(f.opts)...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := chromedpContext(allocCtx)
	defer cancelBrowser()

	slog.Debug("Rendering page", "url", pageURL, "headless", f.opts.Headless)

	var html string
	err := chromedpRunner(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", errors.NewFetchError(pageURL, fmt.Errorf("browser: %w", err))
	}
	return html, nil
}

func buildExecAllocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.UserAgent(opts.UserAgent),
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-default-apps", true),
	}
}
