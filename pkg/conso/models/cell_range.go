package models

// CellRange represents cell coordinate bounds of a scanned block.
type CellRange struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive). Zero means unbounded.
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive). Zero means unbounded.
	C2 int `json:"c2"`
}

// ContainsRow reports whether the 1-based row lies within the range.
func (r CellRange) ContainsRow(row int) bool {
	return row >= r.R1 && (r.R2 == 0 || row <= r.R2)
}

// ContainsCol reports whether the 1-based column lies within the range.
func (r CellRange) ContainsCol(col int) bool {
	return col >= r.C1 && (r.C2 == 0 || col <= r.C2)
}
