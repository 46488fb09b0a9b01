package models

// Row is one header-free row of a sheet. Cell positions are significant.
type Row struct {
	// Index is the 0-based position of the row in the sheet.
	Index int
	// Cells holds the row's cells from the first scanned column on.
	Cells []Cell
}

// Cell returns the i-th cell, or an empty cell when the row is shorter.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return EmptyCell()
	}
	return r.Cells[i]
}

// NewRows wraps cell slices as rows indexed by their position.
func NewRows(cells ...[]Cell) []Row {
	rows := make([]Row, len(cells))
	for i, c := range cells {
		rows[i] = Row{Index: i, Cells: c}
	}
	return rows
}
