package models

import "time"

// ConsumptionStats aggregates the measured consumption of one day.
type ConsumptionStats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Sum  float64 `json:"sum"`
}

// ForecastError compares a forecast column with measured consumption.
type ForecastError struct {
	// MAE is the mean absolute error.
	MAE float64 `json:"mae"`
	// MAPE is the mean absolute percentage error, in percent.
	MAPE float64 `json:"mape"`
	// N is the number of points where both values were present.
	N int `json:"n"`
}

// DailySummary describes one calendar day of records.
type DailySummary struct {
	Date         time.Time         `json:"date"`
	Weekday      string            `json:"weekday"`
	Weekend      bool              `json:"weekend"`
	Holiday      string            `json:"holiday,omitempty"`
	Observations int               `json:"observations"`
	Consumption  *ConsumptionStats `json:"consumption,omitempty"`
	ErrorJMinus1 *ForecastError    `json:"error_j_minus_1,omitempty"`
	ErrorJ       *ForecastError    `json:"error_j,omitempty"`
}

// Gap is a span of missing observations between two consecutive records.
type Gap struct {
	// From is the timestamp of the record before the gap.
	From time.Time `json:"from"`
	// To is the timestamp of the record after the gap.
	To time.Time `json:"to"`
	// Missing is the number of expected steps absent between From and To.
	Missing int `json:"missing"`
}
