package models

// SourceDiagnostic is a Diagnostic tagged with the book and sheet it came from.
type SourceDiagnostic struct {
	Book  string `json:"book"`
	Sheet string `json:"sheet"`
	Diagnostic
}

// Collection gathers the records of several workbooks into a single series.
type Collection struct {
	// Sources lists the workbook names in the order they were read.
	Sources []string `json:"sources"`
	// Records are the merged records.
	Records []Record `json:"records"`
	// Diagnostics are the row diagnostics of every source.
	Diagnostics []SourceDiagnostic `json:"diagnostics,omitempty"`
}

// Add appends the records and diagnostics of a workbook, without sorting.
func (c *Collection) Add(wb *WorkbookSeries) {
	c.Sources = append(c.Sources, wb.BookName)
	for _, name := range wb.SheetOrder {
		sheet := wb.Sheets[name]
		c.Records = append(c.Records, sheet.Records...)
		for _, d := range sheet.Diagnostics {
			c.Diagnostics = append(c.Diagnostics, SourceDiagnostic{Book: wb.BookName, Sheet: name, Diagnostic: d})
		}
	}
}
