package models

// SheetSeries holds the result of extracting one sheet.
type SheetSeries struct {
	// Records are the extracted observations in input row order.
	Records []Record `json:"records"`
	// Diagnostics lists rows that were skipped because they could not be parsed.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
