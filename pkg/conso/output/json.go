// Package output serialises extracted series as JSON, CSV and HTML charts.
package output

import (
	json "github.com/goccy/go-json"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
)

// ToJSON serialises any value, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WorkbookToJSON serialises a workbook series.
func WorkbookToJSON(wb *models.WorkbookSeries, pretty bool) ([]byte, error) {
	return ToJSON(wb, pretty)
}

// SheetToJSON serialises a single sheet series.
func SheetToJSON(sheet *models.SheetSeries, pretty bool) ([]byte, error) {
	return ToJSON(sheet, pretty)
}
