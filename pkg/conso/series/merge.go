// Package series holds the passes applied to extracted records after
// extraction: merging yearly files, filtering, filling and summarising.
// Every function returns a new slice and leaves its input untouched.
package series

import (
	"slices"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
)

// Merge concatenates record sets and sorts them by timestamp. Records with
// equal timestamps keep their relative order.
func Merge(sets ...[]models.Record) []models.Record {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	out := make([]models.Record, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}
	slices.SortStableFunc(out, compareRecords)
	return out
}

// Dedup sorts records by timestamp and keeps the last record of every
// timestamp, so later sources override earlier ones.
func Dedup(records []models.Record) []models.Record {
	sorted := Merge(records)
	out := make([]models.Record, 0, len(sorted))
	for _, r := range sorted {
		if n := len(out); n > 0 && out[n-1].Timestamp.Equal(r.Timestamp) {
			out[n-1] = r
			continue
		}
		out = append(out, r)
	}
	return out
}

// Between keeps records with from <= timestamp <= to. A zero bound is open.
func Between(records []models.Record, from, to time.Time) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if !from.IsZero() && r.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && r.Timestamp.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Consumption returns the timestamps and values of records with a measured
// consumption.
func Consumption(records []models.Record) ([]time.Time, []float64) {
	t := make([]time.Time, 0, len(records))
	y := make([]float64, 0, len(records))
	for _, r := range records {
		if r.Consumption == nil {
			continue
		}
		t = append(t, r.Timestamp)
		y = append(y, *r.Consumption)
	}
	return t, y
}

func compareRecords(a, b models.Record) int {
	return a.Timestamp.Compare(b.Timestamp)
}
