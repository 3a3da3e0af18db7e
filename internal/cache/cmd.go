package cache

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// InvalidateCacheCmd represents the cache invalidate subcommand
type InvalidateCacheCmd struct {
	Source string `arg:"" help:"Cache source to invalidate: fbref, transfermarkt, all, expired" required:""`
}

func (i *InvalidateCacheCmd) Run() error {
	cacheDB := viper.GetString("cache.dbfile")

	slog.Info("Invalidating cache", "source", i.Source, "database", cacheDB)

	if _, ok := Sources[i.Source]; !ok && i.Source != "all" && i.Source != "expired" {
		valid := make([]string, 0, len(Sources)+2)
		for name := range Sources {
			valid = append(valid, name)
		}
		slices.Sort(valid)
		valid = append(valid, "all", "expired")
		return fmt.Errorf("invalid cache source '%s'; valid sources are: %s", i.Source, strings.Join(valid, ", "))
	}

	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	if i.Source == "expired" {
		ttl := configuredTTL()
		rowsDeleted, err := cacheInstance.ClearExpired(PageCacheTable, ttl)
		if err != nil {
			return err
		}
		slog.Info("Expired pages removed", "ttl", ttl, "rows_deleted", rowsDeleted, "database", cacheInstance.Path())
		return nil
	}

	rowsDeleted, err := cacheInstance.InvalidateSource(i.Source)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	slog.Info("Cache invalidated", "source", i.Source, "rows_deleted", rowsDeleted, "database", cacheInstance.Path())
	return nil
}
