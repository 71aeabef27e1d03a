package validation

import (
	"fmt"
	"strconv"
	"strings"

	"psa-proofing-web/internal/models"
)

// Check is one named validation rule over a normalized table. Checks
// never short-circuit each other; every registered check produces
// exactly one result per run. Checks marked NeedsReference are
// skipped entirely when no reference workbook was uploaded.
type Check struct {
	Name           string
	NeedsReference bool
	Run            func(t *models.Table, ref *Reference) models.CheckResult
}

// RunChecks executes a registry in order and collects every result.
func RunChecks(checks []Check, t *models.Table, ref *Reference) []models.CheckResult {
	results := make([]models.CheckResult, 0, len(checks))
	for _, c := range checks {
		if c.NeedsReference && ref == nil {
			continue
		}
		results = append(results, c.Run(t, ref))
	}
	return results
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

const floatTolerance = 0.01

func floatsEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < floatTolerance
}

// sampleLimit bounds how many offending rows a check enumerates in
// its details text.
const sampleLimit = 10

// sampler collects a bounded sample of detail lines while counting
// the full population.
type sampler struct {
	lines []string
	total int
}

func (s *sampler) addf(format string, args ...interface{}) {
	s.total++
	if len(s.lines) < sampleLimit {
		s.lines = append(s.lines, fmt.Sprintf(format, args...))
	}
}

func (s *sampler) render() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	if s.total > len(s.lines) {
		out = append(out, fmt.Sprintf("... and %d more", s.total-len(s.lines)))
	}
	return out
}

func joinDetails(lines []string) string {
	return strings.Join(lines, "\n")
}

// missingColumns reports which of the named columns the table lacks.
func missingColumns(t *models.Table, names ...string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func missingColumnResult(check string, missing []string) models.CheckResult {
	return models.CheckResult{
		Name:    check,
		Status:  models.StatusWarning,
		Message: fmt.Sprintf("Column(s) not found in data: %s", strings.Join(missing, ", ")),
	}
}

// rowLabel identifies a row in details text, preferring the UPC or
// Name column when the table carries one.
func rowLabel(t *models.Table, row int) string {
	if t.HasColumn("UPC") {
		if upc := strings.TrimSpace(t.Cell(row, "UPC")); upc != "" {
			return fmt.Sprintf("UPC %s", upc)
		}
	}
	if t.HasColumn("Name") {
		if name := strings.TrimSpace(t.Cell(row, "Name")); name != "" {
			return fmt.Sprintf("'%s'", name)
		}
	}
	return fmt.Sprintf("row %d", row+1)
}

// notNullCheck builds a presence check for one column.
func notNullCheck(column string) Check {
	name := fmt.Sprintf("%s Not Null", column)
	return Check{
		Name: name,
		Run: func(t *models.Table, _ *Reference) models.CheckResult {
			if missing := missingColumns(t, column); len(missing) > 0 {
				return missingColumnResult(name, missing)
			}

			var offenders sampler
			for i := 0; i < t.RowCount(); i++ {
				if isBlank(t.Cell(i, column)) {
					offenders.addf("%s: %s is blank", rowLabel(t, i), column)
				}
			}

			total := t.RowCount()
			if offenders.total > 0 {
				return models.CheckResult{
					Name:       name,
					Status:     models.StatusFail,
					Message:    fmt.Sprintf("%d of %d rows have no %s value", offenders.total, total, column),
					ErrorCount: offenders.total,
					PassCount:  total - offenders.total,
					Details:    joinDetails(offenders.render()),
				}
			}
			return models.CheckResult{
				Name:      name,
				Status:    models.StatusPass,
				Message:   fmt.Sprintf("All %d rows have a %s value", total, column),
				PassCount: total,
			}
		},
	}
}
