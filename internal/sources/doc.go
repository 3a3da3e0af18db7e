// Package sources knows the layout of the scraped pages: which table holds
// the data on fbref and Transfermarkt and how its cells map to columns.
package sources
