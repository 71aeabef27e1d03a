package psa

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"psa-proofing-web/internal/models"
)

// Planogram rows are positional only for the first seven fields; the
// business fields after that drift between export versions, so they
// are recovered by content matching over the remainder of the row.

// PlanogramColumns is the fixed output schema of the smart mapper.
var PlanogramColumns = []string{
	"Table_Name",
	"Modular_Description",
	"Field_2",
	"Width_Inches",
	"Height_Inches",
	"Depth_Inches",
	"Field_6",
	"Offset",
	"Notch_Bar_Width",
	"Department",
	"Category",
	"Effective_Date",
	"Print_1",
	"Print_2",
	"Print_3",
	"Print_4",
	"File_Name",
	"Width_Feet",
	"Segments",
	"Drawing_ID",
	"Footage",
	"Trait_Number",
}

var knownDepartments = map[string]bool{
	"14": true,
	"17": true,
	"20": true,
	"22": true,
	"71": true,
	"74": true,
}

var (
	categoryPattern = regexp.MustCompile(`^\d{4}$`)
	datePattern     = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
)

func findContaining(pool []string, substr string) string {
	for _, field := range pool {
		if strings.Contains(field, substr) {
			return strings.TrimSpace(field)
		}
	}
	return ""
}

func findContainingFold(pool []string, substr string, maxLen int) string {
	lowered := strings.ToLower(substr)
	for _, field := range pool {
		if maxLen > 0 && len(field) >= maxLen {
			continue
		}
		if strings.Contains(strings.ToLower(field), lowered) {
			return strings.TrimSpace(field)
		}
	}
	return ""
}

// findDepartmentPair locates the department code and the category
// that follows it. The category is the first pure four-digit field
// appearing after the department match.
func findDepartmentPair(pool []string) (string, string) {
	for i, field := range pool {
		trimmed := strings.TrimSpace(field)
		if !knownDepartments[trimmed] {
			continue
		}
		for _, later := range pool[i+1:] {
			candidate := strings.TrimSpace(later)
			if categoryPattern.MatchString(candidate) {
				return trimmed, candidate
			}
		}
		return trimmed, ""
	}
	return "", ""
}

// findEffectiveDate scans the pool for a date that lies strictly in
// the future and falls on a Monday, the day new modulars take effect.
// Four-digit years are tried before two-digit years.
func findEffectiveDate(pool []string, now time.Time) string {
	for _, field := range pool {
		for _, candidate := range datePattern.FindAllString(field, -1) {
			parsed, err := time.Parse("1/2/2006", candidate)
			if err != nil {
				parsed, err = time.Parse("1/2/06", candidate)
			}
			if err != nil {
				continue
			}
			if parsed.After(now) && parsed.Weekday() == time.Monday {
				return candidate
			}
		}
	}
	return ""
}

// divideAsString maps a zero or unparseable value to the empty
// string, like every other derived field.
func divideAsString(value string, divisor float64) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f == 0 {
		return ""
	}
	return strconv.FormatFloat(f/divisor, 'g', -1, 64)
}

// leadingDigits collects up to n digits from anywhere in s, keeping
// a shorter run when fewer exist.
func leadingDigits(s string, n int) string {
	var digits strings.Builder
	for i := 0; i < len(s) && digits.Len() < n; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits.WriteByte(s[i])
		}
	}
	return digits.String()
}

func footageCode(fileName string) string {
	if len(fileName) < 8 {
		return ""
	}
	return fileName[5:8]
}

// traitNumber reads the digit run immediately after the first
// underscore; any non-digit ends it.
func traitNumber(fileName string) string {
	idx := strings.IndexByte(fileName, '_')
	if idx < 0 {
		return ""
	}
	var digits strings.Builder
	for i := idx + 1; i < len(fileName); i++ {
		c := fileName[i]
		if c < '0' || c > '9' {
			break
		}
		digits.WriteByte(c)
	}
	return digits.String()
}

// SmartMapPlanogram maps one raw Planogram row onto PlanogramColumns.
// The first seven fields are positional; everything else is found by
// content in the remainder of the row. A business field whose pattern
// never matches maps to the empty string.
func SmartMapPlanogram(fields []string, now time.Time) []string {
	mapped := make([]string, len(PlanogramColumns))
	for i := 0; i < 7 && i < len(fields); i++ {
		mapped[i] = fields[i]
	}

	var remainder []string
	if len(fields) > 7 {
		remainder = fields[7:]
	}

	mapped[7] = findContaining(remainder, "7.81")
	mapped[8] = findContaining(remainder, "1.25")
	mapped[9], mapped[10] = findDepartmentPair(remainder)
	mapped[11] = findEffectiveDate(remainder, now)
	mapped[12] = findContainingFold(remainder, "general_tc", 0)
	mapped[13] = findContainingFold(remainder, "product listing.pst", 0)
	mapped[14] = findContainingFold(remainder, "shelf", 20)
	mapped[15] = findContainingFold(remainder, "nr_p_c_seg.psy", 0)
	mapped[16] = findContainingFold(remainder, ".psa", 0)

	mapped[17] = divideAsString(mapped[3], 12)
	if mapped[17] != "" {
		mapped[18] = divideAsString(mapped[17], 4)
	}
	mapped[19] = leadingDigits(mapped[16], 5)
	mapped[20] = footageCode(mapped[16])
	mapped[21] = traitNumber(mapped[16])

	return mapped
}

// MapPlanogramTable runs the smart mapper over every raw Planogram
// row. The clock parameter anchors the effective-date rule so runs
// are reproducible.
func MapPlanogramTable(rows [][]string, now time.Time) *models.Table {
	mapped := make([][]string, len(rows))
	for i, row := range rows {
		mapped[i] = SmartMapPlanogram(row, now)
	}
	return models.NewTable(models.KindPlanogram, PlanogramColumns, mapped)
}
