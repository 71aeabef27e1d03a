package validation

import (
	"fmt"
	"strings"

	"psa-proofing-web/internal/models"
)

// ProductChecks returns the ordered Product rule registry.
func ProductChecks() []Check {
	return []Check{
		{Name: "Relay_ID Uniformity", Run: checkRelayIDUniformity},
		{Name: "UPC Length (13 digits)", Run: checkUPCLength},
		{Name: "Order_Type Invalid Values", Run: checkOrderType},
		{Name: "Peg_Hole_X vs Width", Run: checkPegHoleXWidth},
		{Name: "Peg_Hole_2X Position", Run: checkPegHole2XPosition},
		dimensionCheck("Height_Inches"),
		dimensionCheck("Width_Inches"),
		dimensionCheck("Depth_Inches"),
		mustEqualOneCheck("Squeeze_High Must Equal 1", "Squeeze_High"),
		mustEqualOneCheck("Expand_Wide Must Equal 1", "Expand_Width"),
		mustEqualOneCheck("Expand_High Must Equal 1", "Expand_High"),
		mustEqualOneCheck("Squeeze_Deep Must Equal 1", "Squeeze_Deep"),
		mustEqualOneCheck("Squeeze_Wide Must Equal 1", "Squeeze_Width"),
		mustEqualOneCheck("Expand_Deep Must Equal 1", "Expand_Deep"),
		{Name: "Front_Overhang_Inches Less Than 1", Run: checkFrontOverhang},
		{Name: "Peg_ID Required When Peg Holes Exist", Run: checkPegIDRequired},
		{Name: "Has_Alt_UPC Must Be Null", Run: checkHasAltUPCNull},
		{Name: "Has_Alt_UPC Match Against Reference File", NeedsReference: true, Run: checkHasAltUPCReference},
	}
}

// checkRelayIDUniformity verifies every product carries the same
// Relay_ID. Mixed relay files indicate merged exports.
func checkRelayIDUniformity(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Relay_ID Uniformity"
	if missing := missingColumns(t, "Relay_ID"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	counts := make(map[string]int)
	var order []string
	for i := 0; i < t.RowCount(); i++ {
		v := strings.TrimSpace(t.Cell(i, "Relay_ID"))
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	if len(order) == 0 {
		return models.CheckResult{
			Name:    name,
			Status:  models.StatusWarning,
			Message: "No Relay_ID values found",
		}
	}
	if len(order) == 1 {
		return models.CheckResult{
			Name:      name,
			Status:    models.StatusPass,
			Message:   fmt.Sprintf("All %d products share Relay_ID %s", t.RowCount(), order[0]),
			PassCount: t.RowCount(),
		}
	}

	expected := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[expected] {
			expected = v
		}
	}

	var offenders sampler
	for i := 0; i < t.RowCount(); i++ {
		v := strings.TrimSpace(t.Cell(i, "Relay_ID"))
		if v == expected {
			continue
		}
		display := v
		if display == "" {
			display = "(blank)"
		}
		offenders.addf("%s: Relay_ID %s (expected %s)", rowLabel(t, i), display, expected)
	}

	details := []string{fmt.Sprintf("Found %d distinct Relay_ID values, majority is %s (%d rows)", len(order), expected, counts[expected])}
	details = append(details, offenders.render()...)

	return models.CheckResult{
		Name:       name,
		Status:     models.StatusFail,
		Message:    fmt.Sprintf("%d of %d products deviate from the majority Relay_ID %s", offenders.total, t.RowCount(), expected),
		ErrorCount: offenders.total,
		PassCount:  t.RowCount() - offenders.total,
		Details:    joinDetails(details),
	}
}

func checkUPCLength(t *models.Table, _ *Reference) models.CheckResult {
	const name = "UPC Length (13 digits)"
	if missing := missingColumns(t, "UPC"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	var offenders sampler
	for i := 0; i < t.RowCount(); i++ {
		v := strings.TrimSpace(t.Cell(i, "UPC"))
		switch {
		case v == "":
			offenders.addf("row %d: UPC is blank", i+1)
		case len(v) != 13:
			offenders.addf("row %d: UPC '%s' has %d characters", i+1, v, len(v))
		}
	}

	total := t.RowCount()
	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d UPC values are not 13 characters", offenders.total, total),
			ErrorCount: offenders.total,
			PassCount:  total - offenders.total,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d UPC values are 13 characters", total),
		PassCount: total,
	}
}

// Order types 03, 07 and 43 mark items that must never appear on a
// live modular.
var invalidOrderTypes = map[string]bool{
	"03": true,
	"07": true,
	"43": true,
	"3":  true,
	"7":  true,
}

func checkOrderType(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Order_Type Invalid Values"
	if missing := missingColumns(t, "Order_Type"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	var offenders sampler
	badCounts := make(map[string]int)
	for i := 0; i < t.RowCount(); i++ {
		v := strings.TrimSpace(t.Cell(i, "Order_Type"))
		if !invalidOrderTypes[v] {
			continue
		}
		badCounts[v]++
		offenders.addf("%s: Order_Type %s", rowLabel(t, i), v)
	}

	total := t.RowCount()
	if offenders.total > 0 {
		var dist []string
		for v, n := range badCounts {
			dist = append(dist, fmt.Sprintf("Order_Type %s: %d rows", v, n))
		}
		details := append(dist, offenders.render()...)
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d products have an invalid Order_Type", offenders.total, total),
			ErrorCount: offenders.total,
			PassCount:  total - offenders.total,
			Details:    joinDetails(details),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("No invalid Order_Type values across %d products", total),
		PassCount: total,
	}
}

// checkPegHoleXWidth verifies the first peg hole sits inside the item
// width. Items without peg data are excluded from the denominator.
func checkPegHoleXWidth(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Peg_Hole_X vs Width"
	if missing := missingColumns(t, "Peg_Hole_X", "Width_Inches"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	var offenders sampler
	checked, skipped := 0, 0
	for i := 0; i < t.RowCount(); i++ {
		px, okX := parseFloat(t.Cell(i, "Peg_Hole_X"))
		w, okW := parseFloat(t.Cell(i, "Width_Inches"))
		if !okX || px == 0 || !okW || w == 0 {
			skipped++
			continue
		}
		checked++
		if px >= w {
			offenders.addf("%s: Peg_Hole_X %v >= Width_Inches %v", rowLabel(t, i), px, w)
		}
	}

	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d pegged products have Peg_Hole_X at or beyond the item width (%d skipped)", offenders.total, checked, skipped),
			ErrorCount: offenders.total,
			PassCount:  checked - offenders.total,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d pegged products have Peg_Hole_X inside the item width (%d skipped)", checked, skipped),
		PassCount: checked,
	}
}

// checkPegHole2XPosition verifies the second peg hole lies strictly
// between the first hole count field and the item width. Items with
// no second hole are excluded.
func checkPegHole2XPosition(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Peg_Hole_2X Position"
	if missing := missingColumns(t, "Peg_Holes", "Peg_Hole_2X", "Width_Inches"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	var offenders sampler
	checked, skipped := 0, 0
	for i := 0; i < t.RowCount(); i++ {
		p2x, ok2 := parseFloat(t.Cell(i, "Peg_Hole_2X"))
		if !ok2 || p2x <= 0 {
			skipped++
			continue
		}
		checked++
		holes, okH := parseFloat(t.Cell(i, "Peg_Holes"))
		w, okW := parseFloat(t.Cell(i, "Width_Inches"))
		if !okH || !okW || holes >= p2x || p2x >= w {
			offenders.addf("%s: Peg_Hole_2X %v not between Peg_Holes %s and Width_Inches %s",
				rowLabel(t, i), p2x, strings.TrimSpace(t.Cell(i, "Peg_Holes")), strings.TrimSpace(t.Cell(i, "Width_Inches")))
		}
	}

	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d products with a second peg hole have it positioned out of range (%d skipped)", offenders.total, checked, skipped),
			ErrorCount: offenders.total,
			PassCount:  checked - offenders.total,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d second peg holes are positioned correctly (%d skipped)", checked, skipped),
		PassCount: checked,
	}
}

// dimensionCheck flags dimensions that are null/zero, a bare 1, or
// part of an all-2 placeholder triple. Those are the values the
// upstream editor writes when a real measurement was never entered.
func dimensionCheck(column string) Check {
	name := fmt.Sprintf("%s Invalid Values", column)
	return Check{
		Name: name,
		Run: func(t *models.Table, _ *Reference) models.CheckResult {
			if missing := missingColumns(t, column); len(missing) > 0 {
				return missingColumnResult(name, missing)
			}
			haveAllThree := t.HasColumn("Height_Inches") && t.HasColumn("Width_Inches") && t.HasColumn("Depth_Inches")

			var offenders sampler
			nullOrZero, equalsOne, allTwo := 0, 0, 0
			for i := 0; i < t.RowCount(); i++ {
				v, ok := parseFloat(t.Cell(i, column))
				switch {
				case !ok || v == 0:
					nullOrZero++
					offenders.addf("%s: %s is null or zero", rowLabel(t, i), column)
				case v == 1:
					equalsOne++
					offenders.addf("%s: %s is 1", rowLabel(t, i), column)
				default:
					if !haveAllThree || v != 2 {
						continue
					}
					h, okH := parseFloat(t.Cell(i, "Height_Inches"))
					w, okW := parseFloat(t.Cell(i, "Width_Inches"))
					d, okD := parseFloat(t.Cell(i, "Depth_Inches"))
					if okH && okW && okD && h == 2 && w == 2 && d == 2 {
						allTwo++
						offenders.addf("%s: all dimensions are 2", rowLabel(t, i))
					}
				}
			}

			total := t.RowCount()
			errors := nullOrZero + equalsOne + allTwo
			if errors > 0 {
				details := []string{fmt.Sprintf("null/zero: %d, equal to 1: %d, 2x2x2 placeholder: %d", nullOrZero, equalsOne, allTwo)}
				details = append(details, offenders.render()...)
				return models.CheckResult{
					Name:       name,
					Status:     models.StatusFail,
					Message:    fmt.Sprintf("%d of %d products have an invalid %s", errors, total, column),
					ErrorCount: errors,
					PassCount:  total - errors,
					Details:    joinDetails(details),
				}
			}
			return models.CheckResult{
				Name:      name,
				Status:    models.StatusPass,
				Message:   fmt.Sprintf("All %d %s values look valid", total, column),
				PassCount: total,
			}
		},
	}
}

// mustEqualOneCheck verifies a squeeze/expand factor is exactly 1,
// tallying null, zero and other deviations separately so the failure
// message can explain which.
func mustEqualOneCheck(name, column string) Check {
	return Check{
		Name: name,
		Run: func(t *models.Table, _ *Reference) models.CheckResult {
			if missing := missingColumns(t, column); len(missing) > 0 {
				return missingColumnResult(name, missing)
			}

			var offenders sampler
			nulls, zeros, others := 0, 0, 0
			for i := 0; i < t.RowCount(); i++ {
				v, ok := parseFloat(t.Cell(i, column))
				switch {
				case !ok:
					nulls++
					offenders.addf("%s: %s is null", rowLabel(t, i), column)
				case v == 0:
					zeros++
					offenders.addf("%s: %s is 0", rowLabel(t, i), column)
				case v != 1:
					others++
					offenders.addf("%s: %s is %v", rowLabel(t, i), column, v)
				}
			}

			total := t.RowCount()
			errors := nulls + zeros + others
			if errors > 0 {
				details := []string{fmt.Sprintf("null: %d, zero: %d, other: %d", nulls, zeros, others)}
				details = append(details, offenders.render()...)
				return models.CheckResult{
					Name:       name,
					Status:     models.StatusFail,
					Message:    fmt.Sprintf("%d of %d products have %s not equal to 1", errors, total, column),
					ErrorCount: errors,
					PassCount:  total - errors,
					Details:    joinDetails(details),
				}
			}
			return models.CheckResult{
				Name:      name,
				Status:    models.StatusPass,
				Message:   fmt.Sprintf("All %d %s values equal 1", total, column),
				PassCount: total,
			}
		},
	}
}

func checkFrontOverhang(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Front_Overhang_Inches Less Than 1"
	if missing := missingColumns(t, "Front_Overhang_Inches"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	var offenders sampler
	for i := 0; i < t.RowCount(); i++ {
		v, ok := parseFloat(t.Cell(i, "Front_Overhang_Inches"))
		switch {
		case !ok:
			offenders.addf("%s: Front_Overhang_Inches is null", rowLabel(t, i))
		case v >= 1:
			offenders.addf("%s: Front_Overhang_Inches is %v", rowLabel(t, i), v)
		}
	}

	total := t.RowCount()
	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d products have Front_Overhang_Inches of 1 or more (or missing)", offenders.total, total),
			ErrorCount: offenders.total,
			PassCount:  total - offenders.total,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d Front_Overhang_Inches values are below 1", total),
		PassCount: total,
	}
}

func checkPegIDRequired(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Peg_ID Required When Peg Holes Exist"
	required := []string{"Peg_Hole_X", "Peg_Hole_Y", "Peg_Hole_2X", "Peg_Hole_2Y", "Peg_ID"}
	if missing := missingColumns(t, required...); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	hasPegHole := func(row int) bool {
		for _, col := range []string{"Peg_Hole_X", "Peg_Hole_Y", "Peg_Hole_2X", "Peg_Hole_2Y"} {
			if v, ok := parseFloat(t.Cell(row, col)); ok && v > 0 {
				return true
			}
		}
		return false
	}

	var offenders sampler
	checked := 0
	for i := 0; i < t.RowCount(); i++ {
		if !hasPegHole(i) {
			continue
		}
		checked++
		if isBlank(t.Cell(i, "Peg_ID")) {
			offenders.addf("%s: peg holes present but Peg_ID is blank", rowLabel(t, i))
		}
	}

	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d pegged products are missing a Peg_ID", offenders.total, checked),
			ErrorCount: offenders.total,
			PassCount:  checked - offenders.total,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("All %d pegged products carry a Peg_ID", checked),
		PassCount: checked,
	}
}

func checkHasAltUPCNull(t *models.Table, _ *Reference) models.CheckResult {
	const name = "Has_Alt_UPC Must Be Null"
	if missing := missingColumns(t, "Has_Alt_UPC"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	var offenders sampler
	for i := 0; i < t.RowCount(); i++ {
		if v := strings.TrimSpace(t.Cell(i, "Has_Alt_UPC")); v != "" {
			offenders.addf("%s: Has_Alt_UPC is '%s'", rowLabel(t, i), v)
		}
	}

	total := t.RowCount()
	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d of %d products carry a Has_Alt_UPC value", offenders.total, total),
			ErrorCount: offenders.total,
			PassCount:  total - offenders.total,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("No Has_Alt_UPC values across %d products", total),
		PassCount: total,
	}
}

// checkHasAltUPCReference reconciles populated Has_Alt_UPC values
// against the reference workbook: when products carry the flag, every
// reference row must answer "no" for it.
func checkHasAltUPCReference(t *models.Table, ref *Reference) models.CheckResult {
	const name = "Has_Alt_UPC Match Against Reference File"
	if missing := missingColumns(t, "Has_Alt_UPC"); len(missing) > 0 {
		return missingColumnResult(name, missing)
	}

	populated := 0
	for i := 0; i < t.RowCount(); i++ {
		if !isBlank(t.Cell(i, "Has_Alt_UPC")) {
			populated++
		}
	}
	if populated == 0 {
		return models.CheckResult{
			Name:      name,
			Status:    models.StatusPass,
			Message:   "No products carry Has_Alt_UPC; nothing to reconcile",
			PassCount: t.RowCount(),
		}
	}

	if ref.Err != nil {
		return models.CheckResult{
			Name:    name,
			Status:  models.StatusWarning,
			Message: fmt.Sprintf("Unable to read reference file: %v", ref.Err),
		}
	}
	if !ref.HasAltUPCColumn {
		return models.CheckResult{
			Name:    name,
			Status:  models.StatusWarning,
			Message: "Reference file has no Has_Alt_UPC column",
		}
	}

	var offenders sampler
	for _, v := range ref.HasAltUPC {
		if !strings.EqualFold(strings.TrimSpace(v), "no") {
			offenders.addf("reference value '%s' (expected 'no')", v)
		}
	}

	if offenders.total > 0 {
		return models.CheckResult{
			Name:       name,
			Status:     models.StatusFail,
			Message:    fmt.Sprintf("%d products carry Has_Alt_UPC but %d reference rows do not answer 'no'", populated, offenders.total),
			ErrorCount: populated,
			Details:    joinDetails(offenders.render()),
		}
	}
	return models.CheckResult{
		Name:      name,
		Status:    models.StatusPass,
		Message:   fmt.Sprintf("%d products carry Has_Alt_UPC and the reference file confirms 'no' alternates", populated),
		PassCount: populated,
	}
}
