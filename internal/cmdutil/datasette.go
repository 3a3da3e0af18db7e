package cmdutil

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/keepers/internal/csvutil"
	"github.com/lepinkainen/keepers/internal/datastore"
	"github.com/spf13/viper"
)

var newStore = func() (datastore.Store, string, error) {
	switch mode := viper.GetString("datasette.mode"); mode {
	case "", "local":
		path := viper.GetString("datasette.dbfile")
		return datastore.NewSQLiteStore(path), path, nil
	case "remote":
		url := viper.GetString("datasette.remote_url")
		if url == "" {
			return nil, "", fmt.Errorf("datasette.remote_url is required in remote mode")
		}
		return datastore.NewDatasetteClient(url, viper.GetString("datasette.api_token")), url, nil
	default:
		return nil, "", fmt.Errorf("unknown datasette mode %q", mode)
	}
}

// WriteToDatastore replaces the contents of table with records when Datasette
// output is enabled. It is a no-op otherwise.
func WriteToDatastore[T any](records []T, schema, table, description string, toMap func(T) map[string]any) error {
	if !viper.GetBool("datasette.enabled") {
		return nil
	}

	store, target, err := newStore()
	if err != nil {
		return err
	}
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	database := viper.GetString("datasette.database")
	if err := store.Truncate(database, table); err != nil {
		return err
	}
	if err := store.CreateTable(schema); err != nil {
		return err
	}

	rows := make([]map[string]any, len(records))
	for i, r := range records {
		rows[i] = toMap(r)
	}
	if err := store.BatchInsert(database, table, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", description, err)
	}

	slog.Info("Wrote to datastore", "what", description, "table", table, "rows", len(rows), "target", target)
	return nil
}

// WriteTableToDatastore stores a CSV table with one TEXT column per header
// field, named by datastore.ColumnNames.
func WriteTableToDatastore(t csvutil.Table, table, description string) error {
	columns := datastore.ColumnNames(t.Header)
	return WriteToDatastore(t.Rows, datastore.TextTableSchema(table, columns), table, description, func(row []string) map[string]any {
		m := make(map[string]any, len(columns))
		for i, c := range columns {
			if i < len(row) {
				m[c] = row[i]
			} else {
				m[c] = ""
			}
		}
		return m
	})
}
