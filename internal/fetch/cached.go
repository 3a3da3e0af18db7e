package fetch

import (
	"context"

	"github.com/lepinkainen/keepers/internal/cache"
)

// CachedFetcher serves pages from the SQLite page cache, falling back to next.
type CachedFetcher struct {
	next Fetcher
}

// NewCachedFetcher wraps next with the global page cache.
func NewCachedFetcher(next Fetcher) *CachedFetcher {
	return &CachedFetcher{next: next}
}

func (f *CachedFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	html, _, err := cache.GetOrFetchWithPolicy(cache.PageCacheTable, Host(pageURL), pageURL,
		func() (string, error) {
			return f.next.Fetch(ctx, pageURL)
		},
		func(html string) bool { return html != "" },
	)
	return html, err
}
