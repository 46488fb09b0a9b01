package parser

import (
	"fmt"
	"strings"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses a range reference such as "A3:D200", "$A$3:$D$200",
// "'Sheet 1'!A3:D200" or the whole-column form "B:E". It returns the sheet
// name when the reference carries one.
func ParseRange(ref string) (string, models.CellRange, error) {
	ref = strings.TrimSpace(ref)

	var sheetName string
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheetName = strings.Trim(ref[:idx], "'")
		ref = ref[idx+1:]
	}

	// Remove $ signs
	ref = strings.ReplaceAll(ref, "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return "", models.CellRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}

	if rng, ok := parseColumnRange(parts[0], parts[1]); ok {
		return sheetName, rng, nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return "", models.CellRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return "", models.CellRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if endRow < startRow || endCol < startCol {
		return "", models.CellRange{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidRange, ref)
	}

	return sheetName, models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}, nil
}

func parseColumnRange(start, end string) (models.CellRange, bool) {
	c1, err := excelize.ColumnNameToNumber(start)
	if err != nil {
		return models.CellRange{}, false
	}
	c2, err := excelize.ColumnNameToNumber(end)
	if err != nil || c2 < c1 {
		return models.CellRange{}, false
	}
	return models.CellRange{R1: 1, C1: c1, C2: c2}, true
}

// SheetPrintArea returns the first print area defined for a sheet, or nil
// when the workbook defines none.
func SheetPrintArea(f *excelize.File, sheetName string) *models.CellRange {
	for _, dn := range f.GetDefinedName() {
		// Look for _xlnm.Print_Area defined name
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		// Multiple areas are comma separated; the first one wins.
		for _, part := range strings.Split(dn.RefersTo, ",") {
			name, rng, err := ParseRange(part)
			if err != nil {
				continue
			}
			if name == sheetName || (name == "" && dn.Scope == sheetName) {
				return &rng
			}
		}
	}
	return nil
}

// CropRows keeps the rows and columns of rows that fall inside rng. It is the
// counterpart of the range handling in ReadSheetRows for rows read elsewhere.
func CropRows(rows []models.Row, rng models.CellRange) []models.Row {
	out := make([]models.Row, 0, len(rows))
	for _, row := range rows {
		if !rng.ContainsRow(row.Index + 1) {
			continue
		}
		var cells []models.Cell
		for colIdx, cell := range row.Cells {
			if rng.ContainsCol(colIdx + 1) {
				cells = append(cells, cell)
			}
		}
		out = append(out, models.Row{Index: row.Index, Cells: cells})
	}
	return out
}
