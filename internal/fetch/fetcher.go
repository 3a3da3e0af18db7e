// Package fetch retrieves raw HTML pages from the scraped sites.
package fetch

import (
	"context"
	"net/url"
	"time"
)

// DefaultUserAgent mimics a desktop Chrome; both sites refuse Go's default agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"

// DefaultTimeout bounds a single page request.
const DefaultTimeout = 10 * time.Second

// Fetcher returns the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Options configures the concrete fetchers.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// Delay is the minimum spacing between two requests.
	Delay time.Duration
	// Cloudflare wraps the HTTP transport with browser-like TLS and headers.
	Cloudflare bool
	// Headless only applies to the browser fetcher.
	Headless bool
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
		Delay:     time.Second,
		Headless:  true,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.UserAgent == "" {
		o.UserAgent = def.UserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = def.Timeout
	}
	return o
}

// Host returns the host part of pageURL, or "" when it does not parse.
func Host(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
