package datastore

import (
	"fmt"
	"strings"
	"unicode"
)

// QuoteIdent quotes a SQLite identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ColumnName turns a CSV header into a snake_case column name.
// "Team Left" becomes team_left, "PSxG+/-" becomes psxg_plus_minus.
func ColumnName(header string) string {
	header = strings.NewReplacer("+/-", " plus minus ", "%", " pct ", "#", " num ").Replace(header)

	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(header) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if b.Len() > 0 && !underscore {
			b.WriteByte('_')
			underscore = true
		}
	}
	name := strings.TrimRight(b.String(), "_")
	if name == "" {
		return "col"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "c_" + name
	}
	return name
}

// ColumnNames maps a header to unique column names. Repeated names get a
// numeric suffix in order of appearance.
func ColumnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := ColumnName(h)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		names[i] = name
	}
	return names
}

// TextTableSchema builds a CREATE TABLE statement with one TEXT column per name.
func TextTableSchema(table string, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = QuoteIdent(c) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", QuoteIdent(table), strings.Join(defs, ",\n\t"))
}
