package psa

import (
	"fmt"
	"strings"
	"testing"
)

func TestMapProductTable(t *testing.T) {
	wide := make([]string, 238)
	for i := range wide {
		wide[i] = fmt.Sprintf("v%d", i)
	}
	short := []string{"Product", "0001234567890", "item42"}

	table := MapProductTable([][]string{wide, short}, DefaultProductSchema())

	if len(table.Columns) != 46 {
		t.Fatalf("got %d columns, want 46", len(table.Columns))
	}
	for _, col := range table.Columns {
		if strings.HasPrefix(col, "Field_") {
			t.Errorf("unmapped column %s survived", col)
		}
	}

	cells := map[string]string{
		"Table_Name":            "v0",
		"UPC":                   "v1",
		"Item_Number":           "v2",
		"Width_Inches":          "v5",
		"Tray_Width":            "v46",
		"Tray_Height":           "v47",
		"Tray_Depth":            "v48",
		"Tray_Wide":             "v49",
		"Tray_High":             "v50",
		"Tray_Deep":             "v51",
		"Tray_Total_#":          "v52",
		"Order_Type":            "v118",
		"Has_Alt_UPC":           "v130",
		"Relay_ID":              "v206",
		"Front_Overhang_Inches": "v237",
	}
	for col, want := range cells {
		if got := table.Cell(0, col); got != want {
			t.Errorf("Cell(0, %s) = %q, want %q", col, got, want)
		}
	}

	// Short rows pad with empty cells
	if got := table.Cell(1, "UPC"); got != "0001234567890" {
		t.Errorf("Cell(1, UPC) = %q", got)
	}
	if got := table.Cell(1, "Relay_ID"); got != "" {
		t.Errorf("Cell(1, Relay_ID) = %q, want empty", got)
	}
}

func TestMapProductTableNarrowFile(t *testing.T) {
	// A file that never reaches position 237 simply lacks that column.
	rows := [][]string{{"Product", "0001234567890", "item", "desc"}}
	table := MapProductTable(rows, DefaultProductSchema())

	if table.HasColumn("Front_Overhang_Inches") {
		t.Error("Front_Overhang_Inches should not exist for a 4-field row")
	}
	if !table.HasColumn("Item_1_Description") {
		t.Error("Item_1_Description missing")
	}
}
