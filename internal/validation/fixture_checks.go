package validation

import (
	"fmt"
	"strings"

	"psa-proofing-web/internal/models"
)

// Dimensions is the expected footprint of one fixture type.
type Dimensions struct {
	Width float64
	Depth float64
}

// FixtureRules carries the business constants behind the fixture
// checks. They are catalog-version specific, so they travel as data
// rather than hard logic.
type FixtureRules struct {
	ExpectedFieldCount int
	TypeDimensions     map[string]Dimensions
	DeckPrefix         string
	DeckShelfY         float64
	DeckShelfZ         float64
	ShelfZ             float64
	DeckBackOverhang   float64
	ShelfBackOverhang  float64
}

// DefaultFixtureRules returns the constants for the current catalog
// version. Obstructions carry no dimension rule on purpose.
func DefaultFixtureRules() FixtureRules {
	return FixtureRules{
		ExpectedFieldCount: 166,
		TypeDimensions: map[string]Dimensions{
			"Shelf":    {Width: 48, Depth: 24},
			"Rod":      {Width: 0.5, Depth: 21},
			"Bar":      {Width: 48, Depth: 0.5},
			"Pegboard": {Width: 46, Depth: 0.25},
		},
		DeckPrefix:        "DECK",
		DeckShelfY:        5.75,
		DeckShelfZ:        0.25,
		ShelfZ:            1.25,
		DeckBackOverhang:  0,
		ShelfBackOverhang: 1.25,
	}
}

func (r FixtureRules) isDeck(name string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(name)), r.DeckPrefix)
}

// FieldCountCheck verifies the raw Fixture rows carry exactly the
// expected field count. It runs before mapping because a wrong count
// misaligns every projected column; a Fail here is terminal for the
// Fixture pipeline.
func (r FixtureRules) FieldCountCheck(rows [][]string) models.CheckResult {
	const name = "Field_Count"
	if len(rows) == 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    "Field_Count_Error: No fixture rows found",
			ErrorCount: 1,
			Details:    "PSA file contains no Fixture rows",
		}
	}

	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}

	if maxCols != r.ExpectedFieldCount {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("Field_Count_Error: Expected %d fields, found %d", r.ExpectedFieldCount, maxCols),
			ErrorCount: len(rows),
			Details:    fmt.Sprintf("Field count mismatch: Expected %d, Got %d", r.ExpectedFieldCount, maxCols),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("Field count validated: %d fields", r.ExpectedFieldCount),
		PassCount: len(rows),
		Details:   fmt.Sprintf("All %d rows have %d fields", len(rows), r.ExpectedFieldCount),
	}
}

// FixtureChecks returns the ordered Fixture rule registry over the
// mapped table. The field-count gate runs separately on the raw rows.
func FixtureChecks(rules FixtureRules) []Check {
	return []Check{
		{Name: "Unique_Name", Run: checkUniqueNames},
		{Name: "Type_Dimensions", Run: rules.checkTypeDimensions},
		{Name: "Y_Not_Equal_Notch", Run: checkYNotEqualNotch},
		{Name: "Deck_Shelf_Y", Run: rules.checkDeckShelfY},
		{Name: "Shelf_Z", Run: rules.checkShelfZ},
		{Name: "Shelf_Overhangs", Run: checkShelfOverhangs},
		{Name: "Shelf_Back_Overhang", Run: rules.checkShelfBackOverhang},
	}
}

// checkUniqueNames requires every fixture name to be non-blank and
// unique. Every occurrence of a duplicated name counts as an error.
func checkUniqueNames(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Unique_Name"
	if missing := missingColumns(t, "Name"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	total := t.RowCount()
	counts := make(map[string]int)
	for i := 0; i < total; i++ {
		if v := strings.TrimSpace(t.Cell(i, "Name")); v != "" {
			counts[v]++
		}
	}

	var offenders sampler
	emptyCount, dupCount := 0, 0
	for i := 0; i < total; i++ {
		v := strings.TrimSpace(t.Cell(i, "Name"))
		if v == "" {
			emptyCount++
			offenders.addf("Row %d: Name='<EMPTY>' - Empty/blank name", i+2)
		}
	}
	for i := 0; i < total; i++ {
		v := strings.TrimSpace(t.Cell(i, "Name"))
		if v != "" && counts[v] > 1 {
			dupCount++
			offenders.addf("Row %d: Name='%s' - Duplicate name (appears %d times)", i+2, v, counts[v])
		}
	}

	if offenders.total == 0 {
		return models.CheckResult{
			Name:      name,
			Status:    models.StatusPass,
			Message:   fmt.Sprintf("All %d fixtures have unique, non-empty names", total),
			PassCount: total,
			Details:   fmt.Sprintf("Validated %d fixture names, all unique and populated", total),
		}
	}

	details := []string{fmt.Sprintf("Total fixtures with name issues: %d/%d", offenders.total, total)}
	if emptyCount > 0 {
		details = append(details, fmt.Sprintf("Empty/blank names: %d", emptyCount))
	}
	if dupCount > 0 {
		details = append(details, fmt.Sprintf("Duplicate names: %d", dupCount))
	}
	details = append(details, offenders.render()...)

	return models.CheckResult{
		Name:       name,
		Status:     models.StatusFail,
		Message:    fmt.Sprintf("%d of %d fixtures have empty or duplicate names", offenders.total, total),
		ErrorCount: offenders.total,
		PassCount:  total - offenders.total,
		Details:    joinDetails(details),
	}
}

func (r FixtureRules) checkTypeDimensions(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Type_Dimensions"
	if missing := missingColumns(t, "Type", "Width", "Depth"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	total := t.RowCount()
	var offenders sampler
	for i := 0; i < total; i++ {
		fixtureType := strings.TrimSpace(t.Cell(i, "Type"))
		width := t.Cell(i, "Width")
		depth := t.Cell(i, "Depth")

		if isBlank(width) || isBlank(depth) {
			offenders.addf("Row %d (%s): %s - Width/Depth is null or blank", i+2, fixtureType, rowLabel(t, i))
			continue
		}

		expected, ok := r.TypeDimensions[fixtureType]
		if !ok {
			continue
		}

		w, okW := parseFloat(width)
		d, okD := parseFloat(depth)
		if !okW || !okD {
			offenders.addf("Row %d (%s): %s - Width/Depth is not a number", i+2, fixtureType, rowLabel(t, i))
			continue
		}
		if !floatsEqual(w, expected.Width) || !floatsEqual(d, expected.Depth) {
			offenders.addf("Row %d (%s): %s - Expected Width=%v, Depth=%v but got Width=%v, Depth=%v",
				i+2, fixtureType, rowLabel(t, i), expected.Width, expected.Depth, w, d)
		}
	}

	if offenders.total > 0 {
		details := []string{fmt.Sprintf("Total fixtures with dimension errors: %d/%d", offenders.total, total)}
		details = append(details, offenders.render()...)
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d fixtures have incorrect dimensions for their Type", offenders.total, total),
			ErrorCount: offenders.total,
			PassCount:  total - offenders.total,
			Details:    joinDetails(details),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d fixtures have correct dimensions for their Type", total),
		PassCount: total,
		Details:   "Validated dimensions for Shelf, Rod, Bar, and Pegboard types",
	}
}

func checkYNotEqualNotch(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Y_Not_Equal_Notch"
	if missing := missingColumns(t, "Y", "Notch"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	total := t.RowCount()
	var offenders sampler
	for i := 0; i < total; i++ {
		y := strings.TrimSpace(t.Cell(i, "Y"))
		notch := strings.TrimSpace(t.Cell(i, "Notch"))
		if y != "" && y == notch {
			offenders.addf("Row %d (%s): %s - Y (%s) equals Notch (%s)",
				i+2, strings.TrimSpace(t.Cell(i, "Type")), rowLabel(t, i), y, notch)
		}
	}

	if offenders.total > 0 {
		details := []string{fmt.Sprintf("Total fixtures where Y = Notch: %d/%d", offenders.total, total)}
		details = append(details, offenders.render()...)
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d fixtures have Y = Notch (not allowed)", offenders.total, total),
			ErrorCount: offenders.total,
			PassCount:  total - offenders.total,
			Details:    joinDetails(details),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d fixtures have Y != Notch", total),
		PassCount: total,
	}
}

// shelfValueCheck verifies one numeric column equals an expected
// constant over a filtered subset of rows. It backs the DECK/shelf
// positional checks, which all share the same shape.
func shelfValueCheck(t *models.Table, name, column string, include func(row int) bool, expected func(row int) float64, label func(row int) string) models.CheckResult {
	total := t.RowCount()
	var offenders sampler
	checked := 0
	for i := 0; i < total; i++ {
		if !include(i) {
			continue
		}
		checked++
		want := expected(i)
		v, ok := parseFloat(t.Cell(i, column))
		switch {
		case isBlank(t.Cell(i, column)):
			offenders.addf("Row %d: %s - %s is null or blank (expected %v)", i+2, label(i), column, want)
		case !ok:
			offenders.addf("Row %d: %s - cannot convert %s to number (expected %v)", i+2, label(i), column, want)
		case !floatsEqual(v, want):
			offenders.addf("Row %d: %s - %s = %v (expected %v)", i+2, label(i), column, v, want)
		}
	}

	if checked == 0 {
		return models.CheckResult{
			Name:      name,
			Status:    models.StatusPass,
			Message:   "No matching fixtures found (validation skipped)",
			PassCount: total,
		}
	}
	if offenders.total > 0 {
		details := []string{fmt.Sprintf("Total fixtures with incorrect %s: %d/%d", column, offenders.total, checked)}
		details = append(details, offenders.render()...)
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d fixtures have an incorrect %s value", offenders.total, checked, column),
			ErrorCount: offenders.total,
			PassCount:  checked - offenders.total,
			Details:    joinDetails(details),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d fixtures have the expected %s value", checked, column),
		PassCount: checked,
	}
}

func isShelf(t *models.Table, row int) bool {
	return strings.TrimSpace(t.Cell(row, "Type")) == "Shelf"
}

func (r FixtureRules) checkDeckShelfY(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Deck_Shelf_Y"
	if missing := missingColumns(t, "Type", "Name", "Y"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}
	return shelfValueCheck(t, name, "Y",
		func(i int) bool { return isShelf(t, i) && r.isDeck(t.Cell(i, "Name")) },
		func(int) float64 { return r.DeckShelfY },
		func(i int) string { return strings.TrimSpace(t.Cell(i, "Name")) },
	)
}

func (r FixtureRules) checkShelfZ(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Shelf_Z"
	if missing := missingColumns(t, "Type", "Name", "Z"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}
	return shelfValueCheck(t, name, "Z",
		func(i int) bool { return isShelf(t, i) },
		func(i int) float64 {
			if r.isDeck(t.Cell(i, "Name")) {
				return r.DeckShelfZ
			}
			return r.ShelfZ
		},
		func(i int) string {
			if r.isDeck(t.Cell(i, "Name")) {
				return fmt.Sprintf("DECK Shelf %s", strings.TrimSpace(t.Cell(i, "Name")))
			}
			return fmt.Sprintf("Non-DECK Shelf %s", strings.TrimSpace(t.Cell(i, "Name")))
		},
	)
}

var shelfOverhangColumns = []string{"Left_Overhang", "Right_Overhang", "Front_Overhang"}

// checkShelfOverhangs requires every shelf's left, right and front
// overhang to be exactly zero.
func checkShelfOverhangs(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Shelf_Overhangs"
	required := append([]string{"Type"}, shelfOverhangColumns...)
	if missing := missingColumns(t, required...); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	total := t.RowCount()
	var offenders sampler
	shelves := 0
	for i := 0; i < total; i++ {
		if !isShelf(t, i) {
			continue
		}
		shelves++

		var problems []string
		for _, col := range shelfOverhangColumns {
			raw := t.Cell(i, col)
			v, ok := parseFloat(raw)
			switch {
			case isBlank(raw):
				problems = append(problems, fmt.Sprintf("%s is null/blank", col))
			case !ok:
				problems = append(problems, fmt.Sprintf("%s is not a number", col))
			case !floatsEqual(v, 0):
				problems = append(problems, fmt.Sprintf("%s=%v", col, v))
			}
		}
		if len(problems) > 0 {
			offenders.addf("Row %d: %s - %s", i+2, strings.TrimSpace(t.Cell(i, "Name")), strings.Join(problems, ", "))
		}
	}

	if shelves == 0 {
		return models.CheckResult{
			Name:      name,
			Status:    models.StatusPass,
			Message:   "No Shelves found (validation skipped)",
			PassCount: total,
		}
	}
	if offenders.total > 0 {
		details := []string{fmt.Sprintf("Total Shelves with non-zero overhangs: %d/%d", offenders.total, shelves)}
		details = append(details, offenders.render()...)
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d Shelves have non-zero Left/Right/Front Overhangs", offenders.total, shelves),
			ErrorCount: offenders.total,
			PassCount:  shelves - offenders.total,
			Details:    joinDetails(details),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d Shelves have Left/Right/Front Overhangs = 0", shelves),
		PassCount: shelves,
	}
}

func (r FixtureRules) checkShelfBackOverhang(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Shelf_Back_Overhang"
	if missing := missingColumns(t, "Type", "Name", "Back_Overhang"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}
	return shelfValueCheck(t, name, "Back_Overhang",
		func(i int) bool { return isShelf(t, i) },
		func(i int) float64 {
			if r.isDeck(t.Cell(i, "Name")) {
				return r.DeckBackOverhang
			}
			return r.ShelfBackOverhang
		},
		func(i int) string {
			if r.isDeck(t.Cell(i, "Name")) {
				return fmt.Sprintf("DECK Shelf %s", strings.TrimSpace(t.Cell(i, "Name")))
			}
			return fmt.Sprintf("Non-DECK Shelf %s", strings.TrimSpace(t.Cell(i, "Name")))
		},
	)
}
