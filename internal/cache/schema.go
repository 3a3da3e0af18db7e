package cache

// PageCacheTable holds raw HTML keyed by URL.
const PageCacheTable = "page_cache"

// PageCacheSchema defines the schema for fetched pages.
// cache_key is the page URL, source is the site it came from.
const PageCacheSchema = `
CREATE TABLE IF NOT EXISTS page_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	source TEXT NOT NULL DEFAULT '',
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_page_cached_at ON page_cache(cached_at);
CREATE INDEX IF NOT EXISTS idx_page_source ON page_cache(source);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	PageCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	PageCacheTable: true,
}

// Sources maps a cache source name to the host fragment stored in page_cache.source.
var Sources = map[string]string{
	"fbref":         "fbref.com",
	"transfermarkt": "transfermarkt",
}
