package psa

import "testing"

func fixtureRow(fields map[int]string) []string {
	row := make([]string, 166)
	for pos, v := range fields {
		row[pos] = v
	}
	return row
}

func TestFixtureSchemaTypeName(t *testing.T) {
	schema := DefaultFixtureSchema()
	tests := []struct {
		code string
		want string
	}{
		{"0", "Shelf"},
		{"4", "Rod"},
		{"6", "Bar"},
		{"7", "Pegboard"},
		{"10", "Obstruction"},
		{" 0 ", "Shelf"},
		{"99", "99"}, // unknown codes pass through
	}
	for _, tt := range tests {
		if got := schema.TypeName(tt.code); got != tt.want {
			t.Errorf("TypeName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestMapFixtureTable(t *testing.T) {
	rows := [][]string{
		fixtureRow(map[int]string{0: "0", 1: "DECK 1", 4: "48", 8: "24", 76: "10", 104: "note"}),
		fixtureRow(map[int]string{0: "4", 1: "ROD 1"}),
	}

	table := MapFixtureTable(rows, DefaultFixtureSchema())

	if len(table.Columns) != 16 {
		t.Fatalf("got %d columns, want 16", len(table.Columns))
	}
	if table.Columns[0] != "Table_Name" {
		t.Errorf("first column = %s, want Table_Name", table.Columns[0])
	}
	if got := table.Cell(0, "Table_Name"); got != "Fixture" {
		t.Errorf("Table_Name = %q, want Fixture", got)
	}
	if got := table.Cell(0, "Type"); got != "Shelf" {
		t.Errorf("Type = %q, want Shelf", got)
	}
	if got := table.Cell(1, "Type"); got != "Rod" {
		t.Errorf("Type = %q, want Rod", got)
	}
	if got := table.Cell(0, "Width"); got != "48" {
		t.Errorf("Width = %q, want 48", got)
	}
	if got := table.Cell(0, "Proof_Notes"); got != "note" {
		t.Errorf("Proof_Notes = %q, want note", got)
	}
}
