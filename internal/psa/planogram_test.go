package psa

import (
	"testing"
	"time"
)

var mapperClock = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

func samplePlanogramRow() []string {
	return []string{
		"Planogram", "MODULAR ONE", "F2", "48", "60", "19", "F6",
		"  7.81 ", "1.25", "22", "0028",
		"Effective 1/12/2099",
		"GENERAL_TC label", "Product Listing.PST", "Shelf strip", "NR_P_C_SEG.PSY",
		"12345_678ABC.psa",
	}
}

func TestSmartMapPlanogram(t *testing.T) {
	got := SmartMapPlanogram(samplePlanogramRow(), mapperClock)

	want := map[int]string{
		0:  "Planogram",
		1:  "MODULAR ONE",
		3:  "48",
		7:  "7.81",
		8:  "1.25",
		9:  "22",
		10: "0028",
		11: "1/12/2099",
		12: "GENERAL_TC label",
		13: "Product Listing.PST",
		14: "Shelf strip",
		15: "NR_P_C_SEG.PSY",
		16: "12345_678ABC.psa",
		17: "4",
		18: "1",
		19: "12345",
		20: "_67",
		21: "678",
	}
	if len(got) != len(PlanogramColumns) {
		t.Fatalf("got %d fields, want %d", len(got), len(PlanogramColumns))
	}
	for idx, value := range want {
		if got[idx] != value {
			t.Errorf("%s (index %d) = %q, want %q", PlanogramColumns[idx], idx, got[idx], value)
		}
	}
}

func TestSmartMapPlanogramUnmatchedFieldsAreEmpty(t *testing.T) {
	row := []string{"Planogram", "MOD", "F2", "not a number", "60", "19", "F6", "nothing", "matches", "here"}
	got := SmartMapPlanogram(row, mapperClock)

	for idx := 7; idx < len(got); idx++ {
		if got[idx] != "" {
			t.Errorf("%s (index %d) = %q, want empty", PlanogramColumns[idx], idx, got[idx])
		}
	}
}

func TestFindEffectiveDate(t *testing.T) {
	tests := []struct {
		name string
		pool []string
		want string
	}{
		{
			name: "future monday four digit year",
			pool: []string{"Effective 1/12/2099"},
			want: "1/12/2099",
		},
		{
			name: "past monday rejected",
			pool: []string{"Effective 1/3/2022"}, // a Monday, but in the past
			want: "",
		},
		{
			name: "future non-monday rejected",
			pool: []string{"Effective 1/13/2099"}, // Tuesday
			want: "",
		},
		{
			name: "two digit year",
			pool: []string{"go live 1/11/27"}, // parsed as 2027-01-11, a Monday
			want: "1/11/27",
		},
		{
			name: "second candidate wins",
			pool: []string{"window 1/13/2099 to 1/19/2099"}, // the 19th is a Monday
			want: "1/19/2099",
		},
		{
			name: "no dates",
			pool: []string{"nothing here"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findEffectiveDate(tt.pool, mapperClock); got != tt.want {
				t.Errorf("findEffectiveDate(%v) = %q, want %q", tt.pool, got, tt.want)
			}
		})
	}
}

func TestFindDepartmentPair(t *testing.T) {
	tests := []struct {
		name     string
		pool     []string
		wantDept string
		wantCat  string
	}{
		{"dept then category", []string{"x", "22", "junk", "0028"}, "22", "0028"},
		{"dept without category", []string{"22", "12345"}, "22", ""},
		{"unknown department", []string{"99", "0028"}, "", ""},
		{"category before department ignored", []string{"0028", "22"}, "22", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dept, cat := findDepartmentPair(tt.pool)
			if dept != tt.wantDept || cat != tt.wantCat {
				t.Errorf("findDepartmentPair(%v) = (%q, %q), want (%q, %q)", tt.pool, dept, cat, tt.wantDept, tt.wantCat)
			}
		})
	}
}

func TestDivideAsString(t *testing.T) {
	tests := []struct {
		value   string
		divisor float64
		want    string
	}{
		{"48", 12, "4"},
		{" 30 ", 12, "2.5"},
		{"0", 12, ""},
		{"0.0", 12, ""},
		{"abc", 12, ""},
		{"", 12, ""},
	}

	for _, tt := range tests {
		if got := divideAsString(tt.value, tt.divisor); got != tt.want {
			t.Errorf("divideAsString(%q, %v) = %q, want %q", tt.value, tt.divisor, got, tt.want)
		}
	}
}

func TestFileNameDerivations(t *testing.T) {
	const fileName = "12345_678ABC.psa"

	if got := leadingDigits(fileName, 5); got != "12345" {
		t.Errorf("leadingDigits = %q, want 12345", got)
	}
	if got := footageCode(fileName); got != "_67" {
		t.Errorf("footageCode = %q, want _67", got)
	}
	if got := traitNumber(fileName); got != "678" {
		t.Errorf("traitNumber = %q, want 678", got)
	}

	if got := footageCode("short"); got != "" {
		t.Errorf("footageCode on short name = %q, want empty", got)
	}
	if got := traitNumber("nounderscore.psa"); got != "" {
		t.Errorf("traitNumber without underscore = %q, want empty", got)
	}
	if got := traitNumber("f_12-34A.psa"); got != "12" {
		t.Errorf("traitNumber should stop at the first non-digit, got %q, want 12", got)
	}
	if got := leadingDigits("ab1.psa", 5); got != "1" {
		t.Errorf("leadingDigits with a short digit run = %q, want 1", got)
	}
	if got := leadingDigits("letters.psa", 5); got != "" {
		t.Errorf("leadingDigits with no digits = %q, want empty", got)
	}
}

func TestSmartMapPlanogramZeroWidth(t *testing.T) {
	row := samplePlanogramRow()
	row[3] = "0"
	got := SmartMapPlanogram(row, mapperClock)

	if got[17] != "" {
		t.Errorf("Width_Feet for zero Width_Inches = %q, want empty", got[17])
	}
	if got[18] != "" {
		t.Errorf("Segments for zero Width_Inches = %q, want empty", got[18])
	}
}

func TestMapPlanogramTable(t *testing.T) {
	table := MapPlanogramTable([][]string{samplePlanogramRow()}, mapperClock)
	if table.RowCount() != 1 {
		t.Fatalf("got %d rows, want 1", table.RowCount())
	}
	if got := table.Cell(0, "Width_Feet"); got != "4" {
		t.Errorf("Width_Feet = %q, want 4", got)
	}
	if got := table.Cell(0, "Table_Name"); got != "Planogram" {
		t.Errorf("Table_Name = %q, want Planogram", got)
	}
}
