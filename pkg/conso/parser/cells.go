// Package parser reads consumption sheets into typed rows and rebuilds
// timestamped series from them.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheetRows reads every row of an xlsx sheet as typed cells.
// When rng is not nil only rows and columns inside it are kept; the first
// kept column becomes cell 0. Row indexes stay relative to the sheet.
func ReadSheetRows(f *excelize.File, sheetName string, rng *models.CellRange) ([]models.Row, error) {
	formatted, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	result := make([]models.Row, 0, len(formatted))
	for rowIdx, row := range formatted {
		rowNum := rowIdx + 1 // 1-based row index
		if rng != nil && !rng.ContainsRow(rowNum) {
			continue
		}

		var rawRow []string
		if rowIdx < len(raw) {
			rawRow = raw[rowIdx]
		}

		width := max(len(row), len(rawRow))
		cells := make([]models.Cell, 0, width)
		for colIdx := 0; colIdx < width; colIdx++ {
			if rng != nil && !rng.ContainsCol(colIdx+1) {
				continue
			}
			cells = append(cells, classifyCell(valueAt(row, colIdx), valueAt(rawRow, colIdx)))
		}

		result = append(result, models.Row{Index: rowIdx, Cells: cells})
	}

	return result, nil
}

func valueAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// classifyCell types a cell from its formatted text and its raw stored value.
// Day fractions displayed with a clock format become time cells.
func classifyCell(formatted, raw string) models.Cell {
	if strings.TrimSpace(formatted) == "" && strings.TrimSpace(raw) == "" {
		return models.EmptyCell()
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		if v >= 0 && v < 1 && strings.Contains(formatted, ":") {
			return models.Cell{Kind: models.CellTime, Clock: models.ClockFromFraction(v)}
		}
		return models.NumberCell(v)
	}
	if formatted == "" {
		return models.TextCell(raw)
	}
	return models.TextCell(formatted)
}

// parseNumber parses a measurement written as text. Spaces used as thousands
// separators are ignored and a lone comma is read as the decimal separator.
func parseNumber(s string) (float64, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, false
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
