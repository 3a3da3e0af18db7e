package cmdutil

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/keepers/internal/config"
	"github.com/lepinkainen/keepers/internal/csvutil"
	"github.com/lepinkainen/keepers/internal/datastore"
)

// SaveTable writes t to path, replacing any previous file.
func SaveTable(path string, t csvutil.Table) error {
	if err := csvutil.WriteTable(path, t); err != nil {
		return err
	}
	slog.Info("Saved", "file", path, "rows", len(t.Rows))
	return nil
}

// DataPaths resolves file names against the data directory.
func DataPaths(names ...string) []string {
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = config.DataPath(n)
	}
	return paths
}

// TableName derives a datastore table name from a CSV file name:
// "keepers_stats_2024_2025.csv" becomes keepers_stats_2024_2025.
func TableName(file string) string {
	return datastore.ColumnName(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
}
