package validation

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Reference holds the approved lookup sets parsed from the uploaded
// reference workbook. A load failure is carried in Err rather than
// returned, so reference-backed checks can degrade to a Warning that
// explains the cause instead of the whole run aborting.
type Reference struct {
	Err error

	Departments map[string]struct{}
	Categories  map[string]struct{}
	HasAltUPC   []string

	HasDepartmentColumn bool
	HasCategoryColumn   bool
	HasAltUPCColumn     bool
}

// NormalizeCode prepares a categorical code for set comparison by
// stripping leading zeros, so "007" and "7" compare equal. A value
// that is all zeros (or blank) normalizes to "0".
func NormalizeCode(v string) string {
	t := strings.TrimLeft(strings.TrimSpace(v), "0")
	if t == "" {
		return "0"
	}
	return t
}

// LoadReference parses the reference workbook's lookup sheet. The
// sheet's first row is treated as the header; recognized columns are
// Department, Category and Has_Alt_UPC.
func LoadReference(data []byte, sheet string) *Reference {
	ref := &Reference{
		Departments: make(map[string]struct{}),
		Categories:  make(map[string]struct{}),
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		ref.Err = fmt.Errorf("open reference workbook: %w", err)
		return ref
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		ref.Err = fmt.Errorf("read sheet %q: %w", sheet, err)
		return ref
	}
	if len(rows) == 0 {
		ref.Err = fmt.Errorf("sheet %q is empty", sheet)
		return ref
	}

	deptCol, catCol, altCol := -1, -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case "Department":
			deptCol = i
		case "Category":
			catCol = i
		case "Has_Alt_UPC":
			altCol = i
		}
	}
	ref.HasDepartmentColumn = deptCol >= 0
	ref.HasCategoryColumn = catCol >= 0
	ref.HasAltUPCColumn = altCol >= 0

	cell := func(row []string, col int) (string, bool) {
		if col < 0 || col >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[col])
		return v, v != ""
	}

	for _, row := range rows[1:] {
		if v, ok := cell(row, deptCol); ok {
			ref.Departments[NormalizeCode(v)] = struct{}{}
		}
		if v, ok := cell(row, catCol); ok {
			ref.Categories[NormalizeCode(v)] = struct{}{}
		}
		if v, ok := cell(row, altCol); ok {
			ref.HasAltUPC = append(ref.HasAltUPC, v)
		}
	}

	return ref
}

// referenceSet returns the approved set for a planogram categorical
// column, or a Warning-grade explanation when it cannot be used.
func (r *Reference) referenceSet(column string) (map[string]struct{}, string) {
	if r == nil {
		return nil, "No reference file uploaded"
	}
	if r.Err != nil {
		return nil, fmt.Sprintf("Unable to read reference file: %v", r.Err)
	}
	switch column {
	case "Department":
		if !r.HasDepartmentColumn {
			return nil, "Reference file has no Department column"
		}
		return r.Departments, ""
	case "Category":
		if !r.HasCategoryColumn {
			return nil, "Reference file has no Category column"
		}
		return r.Categories, ""
	}
	return nil, fmt.Sprintf("Reference file has no %s column", column)
}
