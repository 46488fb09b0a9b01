package parser

import "github.com/Zverobaza/ProjetDataScience/pkg/conso/models"

// DataBounds is the bounding box of non-empty cells (0-based, inclusive).
type DataBounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// DetectDataBounds finds the bounding box of non-empty cells.
// It returns false when every cell is blank.
func DetectDataBounds(rows []models.Row) (DataBounds, bool) {
	b := DataBounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for _, row := range rows {
		for colIdx, cell := range row.Cells {
			if cell.IsBlank() {
				continue
			}
			if b.MinRow < 0 || row.Index < b.MinRow {
				b.MinRow = row.Index
			}
			if b.MaxRow < 0 || row.Index > b.MaxRow {
				b.MaxRow = row.Index
			}
			if b.MinCol < 0 || colIdx < b.MinCol {
				b.MinCol = colIdx
			}
			if b.MaxCol < 0 || colIdx > b.MaxCol {
				b.MaxCol = colIdx
			}
		}
	}

	return b, b.MinRow >= 0
}

// DetectKeyColumn returns the column holding the most day headers and time
// cells. Without any, it falls back to the first non-empty column, then 0.
func DetectKeyColumn(rows []models.Row) int {
	var counts []int
	for _, row := range rows {
		for colIdx, cell := range row.Cells {
			if !IsDayMarker(cell) && !IsObservation(cell) {
				continue
			}
			for len(counts) <= colIdx {
				counts = append(counts, 0)
			}
			counts[colIdx]++
		}
	}

	best, bestCount := -1, 0
	for col, n := range counts {
		if n > bestCount {
			best, bestCount = col, n
		}
	}
	if best >= 0 {
		return best
	}

	if b, ok := DetectDataBounds(rows); ok {
		return b.MinCol
	}
	return 0
}
