package models

import "time"

// Record is one timestamped observation extracted from a sheet.
type Record struct {
	// Timestamp is the day header date combined with the row's time of day.
	Timestamp time.Time `json:"timestamp"`
	// ForecastJMinus1 is the forecast published the day before (nil if missing).
	ForecastJMinus1 *float64 `json:"forecast_j_minus_1"`
	// ForecastJ is the same-day forecast (nil if missing).
	ForecastJ *float64 `json:"forecast_j"`
	// Consumption is the measured consumption (nil if missing).
	Consumption *float64 `json:"consumption"`
	// Row is the 0-based index of the source row.
	Row int `json:"row"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// RecordCSVHeader is the header of the cleaned consumption CSV format.
var RecordCSVHeader = []string{"datetime", "PrévisionJ-1", "PrévisionJ", "Consommation"}
