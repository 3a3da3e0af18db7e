package datastore

// Store defines the interface for writing scraped tables to a Datasette-compatible database
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// Truncate removes every row from the table so a run replaces the previous contents
	Truncate(database string, table string) error

	// BatchInsert inserts multiple records into the specified table
	BatchInsert(database string, table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
