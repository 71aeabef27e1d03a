package models

// TableKind identifies which of the interleaved record families a
// table was extracted from.
type TableKind string

const (
	KindProduct   TableKind = "Product"
	KindPlanogram TableKind = "Planogram"
	KindFixture   TableKind = "Fixture"
)

// Table is a rectangular, string-typed view over one record family.
// Every row has exactly len(Columns) cells; short source rows are
// padded during extraction.
type Table struct {
	Kind    TableKind
	Columns []string
	Rows    [][]string

	index map[string]int
}

func NewTable(kind TableKind, columns []string, rows [][]string) *Table {
	t := &Table{
		Kind:    kind,
		Columns: columns,
		Rows:    rows,
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, exists := t.index[name]; !exists {
			t.index[name] = i
		}
	}
	return t
}

func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// Cell returns the value at the given row for the named column, or ""
// when the column does not exist.
func (t *Table) Cell(row int, name string) string {
	idx, ok := t.index[name]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Column returns all values of the named column in row order, or nil
// when the column does not exist.
func (t *Table) Column(name string) []string {
	if t == nil {
		return nil
	}
	idx, ok := t.index[name]
	if !ok {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		if idx < len(r) {
			values[i] = r[idx]
		}
	}
	return values
}
