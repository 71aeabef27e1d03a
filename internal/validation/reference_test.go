package validation

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildReferenceWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func TestLoadReference(t *testing.T) {
	data := buildReferenceWorkbook(t, "handoff", [][]interface{}{
		{"Department", "Category", "Has_Alt_UPC"},
		{"007", "0028", "No"},
		{"22", "1104", "no"},
		{"", "0028", ""},
	})

	ref := LoadReference(data, "handoff")
	if ref.Err != nil {
		t.Fatalf("unexpected load error: %v", ref.Err)
	}
	if !ref.HasDepartmentColumn || !ref.HasCategoryColumn || !ref.HasAltUPCColumn {
		t.Fatalf("column flags = %v/%v/%v, want all true",
			ref.HasDepartmentColumn, ref.HasCategoryColumn, ref.HasAltUPCColumn)
	}

	for _, want := range []string{"7", "22"} {
		if _, ok := ref.Departments[want]; !ok {
			t.Errorf("Departments missing normalized code %q", want)
		}
	}
	if len(ref.Departments) != 2 {
		t.Errorf("len(Departments) = %d, want 2 (blanks skipped)", len(ref.Departments))
	}
	if _, ok := ref.Categories["28"]; !ok {
		t.Errorf("Categories missing normalized code %q", "28")
	}
	if len(ref.HasAltUPC) != 2 {
		t.Errorf("len(HasAltUPC) = %d, want 2", len(ref.HasAltUPC))
	}
}

func TestLoadReferenceMissingSheet(t *testing.T) {
	data := buildReferenceWorkbook(t, "handoff", [][]interface{}{{"Department"}})
	ref := LoadReference(data, "lookup")
	if ref.Err == nil {
		t.Fatal("expected an error for a missing sheet")
	}
}

func TestLoadReferenceNotAWorkbook(t *testing.T) {
	ref := LoadReference([]byte("not a workbook"), "handoff")
	if ref.Err == nil {
		t.Fatal("expected an error for junk input")
	}
}

func TestReferenceSet(t *testing.T) {
	ref := &Reference{
		HasDepartmentColumn: true,
		Departments:         map[string]struct{}{"22": {}},
	}

	set, warn := ref.referenceSet("Department")
	if warn != "" {
		t.Fatalf("unexpected warning: %q", warn)
	}
	if _, ok := set["22"]; !ok {
		t.Error("approved set missing department 22")
	}

	if _, warn := ref.referenceSet("Category"); warn == "" {
		t.Error("expected a warning for a column the workbook lacks")
	}
	var nilRef *Reference
	if _, warn := nilRef.referenceSet("Department"); warn == "" {
		t.Error("expected a warning for a nil reference")
	}
}
