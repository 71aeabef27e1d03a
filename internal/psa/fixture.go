package psa

import (
	"strings"

	"psa-proofing-web/internal/models"
)

// FixtureField binds a raw positional index to its output column
// name. Fixture rows are purely positional, so a single field-count
// deviation misaligns every projected column.
type FixtureField struct {
	Position int
	Name     string
}

// FixtureSchema describes the projection from a raw Fixture row onto
// named columns, plus the type-code translation table.
type FixtureSchema struct {
	// FieldCount is the exact number of data fields every row must
	// carry once the record token has been stripped.
	FieldCount int
	Projection []FixtureField
	TypeNames  map[string]string
}

// DefaultFixtureSchema returns the schema of the current catalog
// export layout.
func DefaultFixtureSchema() FixtureSchema {
	return FixtureSchema{
		FieldCount: 166,
		Projection: []FixtureField{
			{0, "Type"},
			{1, "Name"},
			{3, "X"},
			{4, "Width"},
			{5, "Y"},
			{7, "Z"},
			{8, "Depth"},
			{12, "Color"},
			{22, "Merch"},
			{26, "Left_Overhang"},
			{27, "Right_Overhang"},
			{30, "Back_Overhang"},
			{31, "Front_Overhang"},
			{76, "Notch"},
			{104, "Proof_Notes"},
		},
		TypeNames: map[string]string{
			"0":  "Shelf",
			"4":  "Rod",
			"6":  "Bar",
			"7":  "Pegboard",
			"10": "Obstruction",
		},
	}
}

// TypeName translates a numeric fixture type code to its display
// name. Unknown codes pass through unchanged.
func (s FixtureSchema) TypeName(code string) string {
	if name, ok := s.TypeNames[strings.TrimSpace(code)]; ok {
		return name
	}
	return code
}

// MapFixtureTable projects raw Fixture rows onto the schema's named
// columns, prefixed by a constant Table_Name marker column. Callers
// must have verified the field count first; rows shorter than a
// projected position yield empty cells rather than a panic.
func MapFixtureTable(rows [][]string, schema FixtureSchema) *models.Table {
	columns := make([]string, 0, len(schema.Projection)+1)
	columns = append(columns, "Table_Name")
	for _, p := range schema.Projection {
		columns = append(columns, p.Name)
	}

	mapped := make([][]string, len(rows))
	for i, row := range rows {
		out := make([]string, 0, len(columns))
		out = append(out, "Fixture")
		for _, p := range schema.Projection {
			value := ""
			if p.Position < len(row) {
				value = row[p.Position]
			}
			if p.Name == "Type" {
				value = schema.TypeName(value)
			}
			out = append(out, value)
		}
		mapped[i] = out
	}

	return models.NewTable(models.KindFixture, columns, mapped)
}
