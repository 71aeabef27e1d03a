package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"psa-proofing-web/internal/models"
)

// PlanogramChecks returns the ordered Planogram rule registry.
func PlanogramChecks() []Check {
	return []Check{
		{Name: "Print Fields Populated (ALL 4 Required)", Run: checkPrintFields},
		{Name: "Footage Equals Width_Feet", Run: checkFootageWidthFeet},
		notNullCheck("Drawing_ID"),
		notNullCheck("Effective_Date"),
		notNullCheck("Offset"),
		notNullCheck("Notch_Bar_Width"),
		notNullCheck("Department"),
		notNullCheck("Category"),
		{Name: "Modular_Description Alphanumeric Only", Run: checkModularDescription},
		referenceMatchCheck("Department"),
		referenceMatchCheck("Category"),
	}
}

var printColumns = []string{"Print_1", "Print_2", "Print_3", "Print_4"}

func checkPrintFields(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Print Fields Populated (ALL 4 Required)"
	if missing := missingColumns(t, printColumns...); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	var offenders sampler
	for i := 0; i < t.RowCount(); i++ {
		var empty []string
		for _, col := range printColumns {
			if isBlank(t.Cell(i, col)) {
				empty = append(empty, col)
			}
		}
		if len(empty) > 0 {
			offenders.addf("row %d: missing %s", i+1, strings.Join(empty, ", "))
		}
	}

	total := t.RowCount()
	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d planograms are missing one or more print fields", offenders.total, total),
			ErrorCount: offenders.total,
			PassCount:  total - offenders.total,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d planograms have all four print fields", total),
		PassCount: total,
	}
}

func checkFootageWidthFeet(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Footage Equals Width_Feet"
	if missing := missingColumns(t, "Footage", "Width_Feet"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	var offenders sampler
	for i := 0; i < t.RowCount(); i++ {
		footage, okF := parseFloat(t.Cell(i, "Footage"))
		widthFeet, okW := parseFloat(t.Cell(i, "Width_Feet"))
		switch {
		case !okF || !okW:
			offenders.addf("row %d: Footage '%s' or Width_Feet '%s' is not numeric",
				i+1, strings.TrimSpace(t.Cell(i, "Footage")), strings.TrimSpace(t.Cell(i, "Width_Feet")))
		case !floatsEqual(footage, widthFeet):
			offenders.addf("row %d: Footage %v does not equal Width_Feet %v", i+1, footage, widthFeet)
		}
	}

	total := t.RowCount()
	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d planograms have Footage out of step with Width_Feet", offenders.total, total),
			ErrorCount: offenders.total,
			PassCount:  total - offenders.total,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("Footage matches Width_Feet on all %d planograms", total),
		PassCount: total,
	}
}

var modularDescriptionPattern = regexp.MustCompile(`^[A-Za-z0-9\s]+$`)

func checkModularDescription(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Modular_Description Alphanumeric Only"
	if missing := missingColumns(t, "Modular_Description"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	var offenders sampler
	for i := 0; i < t.RowCount(); i++ {
		v := t.Cell(i, "Modular_Description")
		if isBlank(v) {
			continue
		}
		if !modularDescriptionPattern.MatchString(v) {
			offenders.addf("row %d: '%s'", i+1, v)
		}
	}

	total := t.RowCount()
	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d Modular_Description values contain non-alphanumeric characters", offenders.total, total),
			ErrorCount: offenders.total,
			PassCount:  total - offenders.total,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d Modular_Description values are alphanumeric", total),
		PassCount: total,
	}
}

// referenceMatchCheck verifies every value of a categorical column
// appears in the reference workbook's approved set. Values compare
// after leading-zero stripping so "007" matches "7", and the tallies
// count distinct codes rather than rows.
func referenceMatchCheck(column string) Check {
	name := fmt.Sprintf("%s Match Against Reference File", column)
	return Check{
		Name:           name,
		NeedsReference: true,
		Run: func(t *models.Table, ref *Reference) models.CheckResult {
			if missing := missingColumns(t, column); len(missing) > 0 {
				return missingColumnResult(name, missing)
			}

			approved, warn := ref.referenceSet(column)
			if warn != "" {
				return models.CheckResult{
					Name:    name,
					Status:  models.StatusWarning,
					Message: warn,
				}
			}

			matchedValues := make(map[string]struct{})
			missingValues := make(map[string]int)
			for i := 0; i < t.RowCount(); i++ {
				v := t.Cell(i, column)
				if isBlank(v) {
					continue
				}
				code := NormalizeCode(v)
				if _, ok := approved[code]; ok {
					matchedValues[code] = struct{}{}
				} else {
					missingValues[code]++
				}
			}

			if len(missingValues) > 0 {
				var values []string
				for v := range missingValues {
					values = append(values, v)
				}
				sort.Strings(values)
				var details []string
				for _, v := range values {
					details = append(details, fmt.Sprintf("%s %s: %d rows, not in reference", column, v, missingValues[v]))
				}
				return models.CheckResult{
					Name:       name,
					Status:     models.StatusFail,
					Message:    fmt.Sprintf("%s values not found in reference file: %s", column, strings.Join(values, ", ")),
					ErrorCount: len(missingValues),
					PassCount:  len(matchedValues),
					Details:    joinDetails(details),
				}
			}
			return models.CheckResult{
				Name:      name,
				Status:    models.StatusPass,
				Message:   fmt.Sprintf("All %s values appear in the reference file", column),
				PassCount: len(matchedValues),
			}
		},
	}
}
