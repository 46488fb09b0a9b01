package series

import (
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
)

// ForwardFill replaces missing fields with the last value seen in the same
// column. Leading missing values stay missing.
func ForwardFill(records []models.Record) []models.Record {
	out := make([]models.Record, len(records))
	var last [3]*float64
	for i, r := range records {
		fields := [3]**float64{&r.ForecastJMinus1, &r.ForecastJ, &r.Consumption}
		for j, f := range fields {
			if *f == nil {
				*f = last[j]
			} else {
				last[j] = *f
			}
		}
		out[i] = r
	}
	return out
}

// Gaps reports the spans where consecutive records are further apart than
// step. A zero step is inferred as the most frequent interval. Records must
// be sorted.
func Gaps(records []models.Record, step time.Duration) []models.Gap {
	if step <= 0 {
		step = InferStep(records)
	}
	if step <= 0 {
		return nil
	}

	var gaps []models.Gap
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1].Timestamp, records[i].Timestamp
		delta := cur.Sub(prev)
		if delta <= step {
			continue
		}
		gaps = append(gaps, models.Gap{
			From:    prev,
			To:      cur,
			Missing: int(delta/step) - 1 + boolToInt(delta%step != 0),
		})
	}
	return gaps
}

// InferStep returns the most frequent positive interval between consecutive
// records, preferring the shortest on ties. It returns 0 for fewer than two
// records.
func InferStep(records []models.Record) time.Duration {
	counts := make(map[time.Duration]int)
	for i := 1; i < len(records); i++ {
		if d := records[i].Timestamp.Sub(records[i-1].Timestamp); d > 0 {
			counts[d]++
		}
	}
	var best time.Duration
	bestCount := 0
	for d, n := range counts {
		if n > bestCount || (n == bestCount && d < best) {
			best, bestCount = d, n
		}
	}
	return best
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
