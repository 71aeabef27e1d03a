package validation

import (
	"strings"
	"testing"

	"psa-proofing-web/internal/models"
)

func planogramTable(columns []string, rows ...[]string) *models.Table {
	return models.NewTable(models.KindPlanogram, columns, rows)
}

func approvedSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[NormalizeCode(v)] = struct{}{}
	}
	return set
}

func TestReferenceMatchLeadingZeros(t *testing.T) {
	table := planogramTable([]string{"Department"}, []string{"12"}, []string{"007"})
	check := referenceMatchCheck("Department")

	t.Run("all match after normalization", func(t *testing.T) {
		ref := &Reference{HasDepartmentColumn: true, Departments: approvedSet("12", "7")}
		result := check.Run(table, ref)
		if result.Status != models.StatusPass {
			t.Errorf("status = %s, want PASS", result.Status)
		}
		if result.PassCount != 2 {
			t.Errorf("passes = %d, want 2", result.PassCount)
		}
	})

	t.Run("missing value listed", func(t *testing.T) {
		ref := &Reference{HasDepartmentColumn: true, Departments: approvedSet("12")}
		result := check.Run(table, ref)
		if result.Status != models.StatusFail {
			t.Fatalf("status = %s, want FAIL", result.Status)
		}
		if !strings.Contains(result.Message, "7") {
			t.Errorf("message does not list the missing value: %q", result.Message)
		}
		if result.ErrorCount != 1 || result.PassCount != 1 {
			t.Errorf("errors/passes = %d/%d, want 1/1", result.ErrorCount, result.PassCount)
		}
	})

	t.Run("missing reference column warns", func(t *testing.T) {
		result := check.Run(table, &Reference{})
		if result.Status != models.StatusWarning {
			t.Errorf("status = %s, want WARNING", result.Status)
		}
	})

	t.Run("tallies count distinct codes not rows", func(t *testing.T) {
		dupes := planogramTable([]string{"Department"},
			[]string{"7"}, []string{"007"}, []string{"12"}, []string{"12"})
		ref := &Reference{HasDepartmentColumn: true, Departments: approvedSet("12")}
		result := check.Run(dupes, ref)
		if result.ErrorCount != 1 || result.PassCount != 1 {
			t.Errorf("errors/passes = %d/%d, want 1/1 (distinct codes)", result.ErrorCount, result.PassCount)
		}
	})
}

func TestFootageEqualsWidthFeet(t *testing.T) {
	table := planogramTable([]string{"Footage", "Width_Feet"},
		[]string{"4", "4"},
		[]string{"4.005", "4"}, // inside tolerance
		[]string{"4", "8"},
		[]string{"", "4"},
	)
	result := checkFootageWidthFeet(table, nil)
	if result.Status != models.StatusFail {
		t.Fatalf("status = %s, want FAIL", result.Status)
	}
	if result.ErrorCount != 2 || result.PassCount != 2 {
		t.Errorf("errors/passes = %d/%d, want 2/2", result.ErrorCount, result.PassCount)
	}
}

func TestPrintFieldsPopulated(t *testing.T) {
	table := planogramTable(printColumns,
		[]string{"a", "b", "c", "d"},
		[]string{"a", "", "c", ""},
	)
	result := checkPrintFields(table, nil)
	if result.Status != models.StatusFail {
		t.Fatalf("status = %s, want FAIL", result.Status)
	}
	if result.ErrorCount != 1 || result.PassCount != 1 {
		t.Errorf("errors/passes = %d/%d, want 1/1", result.ErrorCount, result.PassCount)
	}
	if !strings.Contains(result.Details, "Print_2") || !strings.Contains(result.Details, "Print_4") {
		t.Errorf("details should name the blank print fields: %q", result.Details)
	}
}

func TestModularDescriptionAlphanumeric(t *testing.T) {
	table := planogramTable([]string{"Modular_Description"},
		[]string{"MOD 22 REV 1"},
		[]string{"MOD-22"},
		[]string{""}, // blanks are the Not Null check's concern
	)
	result := checkModularDescription(table, nil)
	if result.Status != models.StatusFail {
		t.Fatalf("status = %s, want FAIL", result.Status)
	}
	if result.ErrorCount != 1 || result.PassCount != 2 {
		t.Errorf("errors/passes = %d/%d, want 1/2", result.ErrorCount, result.PassCount)
	}
}

func TestModularDescriptionBlanksOnlyPass(t *testing.T) {
	table := planogramTable([]string{"Modular_Description"},
		[]string{"MOD 22"},
		[]string{" "},
	)
	result := checkModularDescription(table, nil)
	if result.Status != models.StatusPass {
		t.Errorf("status = %s, want PASS", result.Status)
	}
}

func TestNotNullCheck(t *testing.T) {
	table := planogramTable([]string{"Drawing_ID"}, []string{"12345"}, []string{" "})
	result := notNullCheck("Drawing_ID").Run(table, nil)
	if result.Status != models.StatusFail {
		t.Fatalf("status = %s, want FAIL", result.Status)
	}
	if result.ErrorCount != 1 || result.PassCount != 1 {
		t.Errorf("errors/passes = %d/%d, want 1/1", result.ErrorCount, result.PassCount)
	}
}

func TestPlanogramRegistryOrderAndSkipping(t *testing.T) {
	checks := PlanogramChecks()
	if len(checks) != 11 {
		t.Fatalf("registry has %d checks, want 11", len(checks))
	}

	blank := make([]string, 1)
	table := planogramTable([]string{"Department"}, blank)

	without := RunChecks(checks, table, nil)
	if len(without) != 9 {
		t.Errorf("run without reference produced %d results, want 9", len(without))
	}
	with := RunChecks(checks, table, &Reference{})
	if len(with) != 11 {
		t.Errorf("run with reference produced %d results, want 11", len(with))
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"007", "7"},
		{"7", "7"},
		{"0", "0"},
		{"000", "0"},
		{"", "0"},
		{" 0042 ", "42"},
	}
	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
