package psa

import (
	"fmt"
	"strings"

	"psa-proofing-web/internal/models"
)

// ProductSchema describes how raw Product positions become named
// columns. Positions listed in Known get their name directly; every
// other position starts out as Field_N and survives only if Renames
// gives it a business name. Columns still named Field_N after that
// are dropped.
type ProductSchema struct {
	Known   map[int]string
	Renames map[string]string
}

// DefaultProductSchema returns the schema of the current catalog
// export layout.
func DefaultProductSchema() ProductSchema {
	return ProductSchema{
		Known: map[int]string{
			1:   "UPC",
			5:   "Width_Inches",
			6:   "Height_Inches",
			7:   "Depth_Inches",
			8:   "Color",
			237: "Front_Overhang_Inches",
		},
		Renames: map[string]string{
			"Field_0":   "Table_Name",
			"Field_2":   "Item_Number",
			"Field_3":   "Item_1_Description",
			"Field_12":  "Manufacturer",
			"Field_17":  "Y_Nesting",
			"Field_18":  "Z_Nesting",
			"Field_19":  "Peg_Holes",
			"Field_20":  "Peg_Hole_X",
			"Field_21":  "Peg_Hole_Y",
			"Field_23":  "Peg_Hole_2X",
			"Field_24":  "Peg_Hole_2Y",
			"Field_30":  "Peg_ID",
			"Field_44":  "Shape_ID",
			"Field_45":  "Bitmap_ID_Override",
			"Field_46":  "Tray_Width",
			"Field_47":  "Tray_Height",
			"Field_48":  "Tray_Depth",
			"Field_49":  "Tray_Wide",
			"Field_50":  "Tray_High",
			"Field_51":  "Tray_Deep",
			"Field_52":  "Tray_Total_#",
			"Field_54":  "Case_Width",
			"Field_55":  "Case_Height",
			"Field_56":  "Case_Depth",
			"Field_60":  "Case_Pack",
			"Field_62":  "Display_Width",
			"Field_63":  "Display_Height",
			"Field_64":  "Display_Depth",
			"Field_70":  "Alternate_Width",
			"Field_71":  "Alternate_Height",
			"Field_72":  "Alternate_Depth",
			"Field_118": "Order_Type",
			"Field_130": "Has_Alt_UPC",
			"Field_206": "Relay_ID",
			"Field_224": "Squeeze_Width",
			"Field_225": "Squeeze_High",
			"Field_226": "Squeeze_Deep",
			"Field_227": "Expand_Width",
			"Field_228": "Expand_High",
			"Field_229": "Expand_Deep",
			"Field_237": "Front_Overhang_Inches",
		},
	}
}

func (s ProductSchema) headerFor(position int) string {
	name, ok := s.Known[position]
	if !ok {
		name = fmt.Sprintf("Field_%d", position)
	}
	if renamed, ok := s.Renames[name]; ok {
		return renamed
	}
	return name
}

// MapProductTable projects raw Product rows onto the schema's named
// columns. Rows are padded to the widest row seen, then every column
// is either renamed to its business name or dropped when no name
// exists for it.
func MapProductTable(rows [][]string, schema ProductSchema) *models.Table {
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}

	var columns []string
	var sources []int
	for pos := 0; pos < maxCols; pos++ {
		name := schema.headerFor(pos)
		if strings.HasPrefix(name, "Field_") {
			continue
		}
		columns = append(columns, name)
		sources = append(sources, pos)
	}

	mapped := make([][]string, len(rows))
	for i, row := range rows {
		out := make([]string, len(sources))
		for j, pos := range sources {
			if pos < len(row) {
				out[j] = row[pos]
			}
		}
		mapped[i] = out
	}

	return models.NewTable(models.KindProduct, columns, mapped)
}
