package models

// WorkbookSeries is the workbook-level container with per-sheet results.
type WorkbookSeries struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to its extracted series.
	Sheets map[string]SheetSeries `json:"sheets"`
	// SheetOrder lists sheet names in workbook order.
	SheetOrder []string `json:"-"`
}

// Records returns the records of every sheet, in sheet order.
func (w *WorkbookSeries) Records() []Record {
	var out []Record
	for _, name := range w.SheetOrder {
		out = append(out, w.Sheets[name].Records...)
	}
	return out
}

// DiagnosticCount returns the number of diagnostics across all sheets.
func (w *WorkbookSeries) DiagnosticCount() int {
	n := 0
	for _, s := range w.Sheets {
		n += len(s.Diagnostics)
	}
	return n
}
