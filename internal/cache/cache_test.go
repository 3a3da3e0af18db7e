package cache

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lepinkainen/keepers/internal/testutil"
	"github.com/spf13/viper"
)

func setupTestCache(t *testing.T) *CacheDB {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	env := testutil.NewTestEnv(t)
	dbPath := filepath.Join(env.RootDir(), "test_cache.db")

	cache, err := NewCacheDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create cache database: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	if err := cache.CreateTable(PageCacheSchema); err != nil {
		t.Fatalf("Failed to create page table: %v", err)
	}

	viper.Set("cache.ttl", "1h")

	return cache
}

func withGlobalCache(t *testing.T, cache *CacheDB) {
	t.Helper()

	oldCache := globalCache
	globalCache = cache
	globalCacheOnce = sync.Once{}
	globalCacheOnce.Do(func() {})

	t.Cleanup(func() {
		globalCache = oldCache
		globalCacheOnce = sync.Once{}
	})
}

func setCachedAt(t *testing.T, cache *CacheDB, key string, at time.Time) {
	t.Helper()

	if _, err := cache.db.Exec("UPDATE page_cache SET cached_at = ? WHERE cache_key = ?", at.UTC().Format(time.DateTime), key); err != nil {
		t.Fatalf("Failed to update cached_at: %v", err)
	}
}

func cacheExists(t *testing.T, cache *CacheDB, key string) bool {
	t.Helper()

	var n int
	if err := cache.db.QueryRow("SELECT COUNT(*) FROM page_cache WHERE cache_key = ?", key).Scan(&n); err != nil {
		t.Fatalf("Failed to query cache: %v", err)
	}
	return n > 0
}

const pageURL = "https://fbref.com/en/comps/Big5/keepersadv/players/Big-5-European-Leagues-Stats"

func TestGetOrFetch_CacheHit(t *testing.T) {
	cache := setupTestCache(t)

	if err := cache.Set(PageCacheTable, "fbref.com", pageURL, `"<html>cached</html>"`); err != nil {
		t.Fatalf("Failed to pre-populate cache: %v", err)
	}
	withGlobalCache(t, cache)

	fetchCalled := false
	result, fromCache, err := GetOrFetch(PageCacheTable, "fbref.com", pageURL, func() (string, error) {
		fetchCalled = true
		return "", nil
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !fromCache {
		t.Error("Expected fromCache to be true")
	}
	if fetchCalled {
		t.Error("Expected fetch function not to be called")
	}
	if result != "<html>cached</html>" {
		t.Errorf("Unexpected cached page %q", result)
	}
}

func TestGetOrFetch_CacheMissStoresPage(t *testing.T) {
	cache := setupTestCache(t)
	withGlobalCache(t, cache)

	result, fromCache, err := GetOrFetch(PageCacheTable, "fbref.com", pageURL, func() (string, error) {
		return "<html>fresh</html>", nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fromCache {
		t.Error("Expected fromCache to be false")
	}
	if result != "<html>fresh</html>" {
		t.Errorf("Unexpected page %q", result)
	}
	if !cacheExists(t, cache, pageURL) {
		t.Error("Expected page to be stored")
	}
}

func TestGetOrFetch_RespectsTTLExpiration(t *testing.T) {
	cache := setupTestCache(t)
	withGlobalCache(t, cache)

	if err := cache.Set(PageCacheTable, "fbref.com", pageURL, `"old"`); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}
	setCachedAt(t, cache, pageURL, time.Now().Add(-2*time.Hour))

	calls := 0
	result, fromCache, err := GetOrFetch(PageCacheTable, "fbref.com", pageURL, func() (string, error) {
		calls++
		return "new", nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fromCache || calls != 1 || result != "new" {
		t.Errorf("Expected refetch of expired entry, got result=%q fromCache=%v calls=%d", result, fromCache, calls)
	}
}

func TestGetOrFetch_FetchError(t *testing.T) {
	cache := setupTestCache(t)
	withGlobalCache(t, cache)

	fetchErr := errors.New("connection refused")
	_, _, err := GetOrFetch(PageCacheTable, "fbref.com", pageURL, func() (string, error) {
		return "", fetchErr
	})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("Expected wrapped fetch error, got %v", err)
	}
	if cacheExists(t, cache, pageURL) {
		t.Error("Failed fetch must not be cached")
	}
}

func TestGetOrFetchWithPolicy_SkipsEmptyPages(t *testing.T) {
	cache := setupTestCache(t)
	withGlobalCache(t, cache)

	nonEmpty := func(s string) bool { return s != "" }
	_, _, err := GetOrFetchWithPolicy(PageCacheTable, "fbref.com", pageURL, func() (string, error) {
		return "", nil
	}, nonEmpty)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cacheExists(t, cache, pageURL) {
		t.Error("Empty page should not be cached")
	}
}

func TestCacheDB_InvalidateSource(t *testing.T) {
	cache := setupTestCache(t)

	entries := map[string]string{
		pageURL: "fbref.com",
		"https://www.transfermarkt.us/transfers?page=1": "www.transfermarkt.us",
		"https://www.transfermarkt.us/transfers?page=2": "www.transfermarkt.us",
	}
	for key, source := range entries {
		if err := cache.Set(PageCacheTable, source, key, `"x"`); err != nil {
			t.Fatalf("Failed to set cache: %v", err)
		}
	}

	deleted, err := cache.InvalidateSource("transfermarkt")
	if err != nil {
		t.Fatalf("InvalidateSource failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 rows deleted, got %d", deleted)
	}
	if !cacheExists(t, cache, pageURL) {
		t.Error("fbref page should survive transfermarkt invalidation")
	}

	deleted, err = cache.InvalidateSource("all")
	if err != nil {
		t.Fatalf("InvalidateSource(all) failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 row deleted, got %d", deleted)
	}
}

func TestCacheDB_InvalidateSource_Unknown(t *testing.T) {
	cache := setupTestCache(t)

	if _, err := cache.InvalidateSource("tmdb"); err == nil {
		t.Error("Expected error for unknown source")
	}
}

func TestCacheDB_InvalidTableName(t *testing.T) {
	cache := setupTestCache(t)

	if err := cache.Set("users; DROP TABLE page_cache", "", "k", "v"); err == nil {
		t.Error("Expected error for invalid table name")
	}
	if _, _, err := cache.Get("omdb_cache", "k", time.Hour); err == nil {
		t.Error("Expected error for table outside the whitelist")
	}
}

func TestCacheDB_ClearExpired(t *testing.T) {
	cache := setupTestCache(t)

	for _, key := range []string{"old", "new"} {
		if err := cache.Set(PageCacheTable, "fbref.com", key, `"x"`); err != nil {
			t.Fatalf("Failed to set cache: %v", err)
		}
	}
	setCachedAt(t, cache, "old", time.Now().Add(-48*time.Hour))

	removed, err := cache.ClearExpired(PageCacheTable, 24*time.Hour)
	if err != nil {
		t.Fatalf("ClearExpired failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 expired entry removed, got %d", removed)
	}
	if cacheExists(t, cache, "old") {
		t.Error("Expected expired entry to be removed")
	}
	if !cacheExists(t, cache, "new") {
		t.Error("Expected fresh entry to remain")
	}
}

func TestInvalidateCacheCmd_RejectsUnknownSource(t *testing.T) {
	cmd := InvalidateCacheCmd{Source: "steam"}
	err := cmd.Run()
	if err == nil {
		t.Fatal("Expected error for unknown source")
	}
}

func TestInvalidateCacheCmd_Expired(t *testing.T) {
	cache := setupTestCache(t)
	withGlobalCache(t, cache)
	viper.Set("cache.ttl", "24h")

	for _, key := range []string{"stale", "fresh"} {
		if err := cache.Set(PageCacheTable, "transfermarkt.com", key, `"x"`); err != nil {
			t.Fatalf("Failed to set cache: %v", err)
		}
	}
	setCachedAt(t, cache, "stale", time.Now().Add(-72*time.Hour))

	cmd := InvalidateCacheCmd{Source: "expired"}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if cacheExists(t, cache, "stale") {
		t.Error("Expected stale page to be removed")
	}
	if !cacheExists(t, cache, "fresh") {
		t.Error("Expected fresh page to remain")
	}
}
