package extract

// Kind selects how a field value is read from its cell.
type Kind int

const (
	// Text is the trimmed text of the cell.
	Text Kind = iota
	// LinkText is the trimmed text of the first anchor in the cell.
	LinkText
	// LinkTitle is the title attribute of the first anchor, falling back to its text.
	LinkTitle
	// ImageTitle is the title attribute of the first image (flags, club crests).
	ImageTitle
	// Amount extracts the number from a "€12.50m" style value. Text that
	// does not match passes through unchanged.
	Amount
)

// FieldRule maps one cell of a row to a named output field.
type FieldRule struct {
	Name string
	Cell int
	Kind Kind
	// Required rows are skipped when the anchor or image the Kind needs is missing.
	Required bool
}

// PositionFilter keeps rows whose position cell contains Contains.
// Column is used in header mode, Cell otherwise.
type PositionFilter struct {
	Cell     int
	Column   string
	Contains string
}

// TableSpec describes which table to read and how to turn its rows into records.
//
// In field mode (Fields set) cells are all td elements under the row,
// nested ones included, so indices match the page as a browser flattens it.
// In header mode (HeaderFromTable) cells are the row's direct th/td
// children and field names come from the last thead row.
type TableSpec struct {
	// Table is a CSS selector; the first match is used.
	Table string
	// Rows is a CSS selector evaluated inside the table.
	Rows string
	// MinCells rows with fewer cells are skipped.
	MinCells int
	Position PositionFilter
	Fields   []FieldRule

	HeaderFromTable bool
	// DropFirst and DropLast trim columns in header mode.
	DropFirst int
	DropLast  int
}

// Header returns the output column names of a field-mode spec.
func (s TableSpec) Header() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s TableSpec) maxCell() int {
	highest := s.Position.Cell
	for _, f := range s.Fields {
		if f.Cell > highest {
			highest = f.Cell
		}
	}
	return highest
}
