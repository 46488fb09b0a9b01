package series

import (
	"math"
	"slices"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/fr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HolidayCalendar tells whether a date is a public holiday.
type HolidayCalendar interface {
	IsHoliday(date time.Time) (actual, observed bool, h *cal.Holiday)
}

// NewFrenchCalendar returns a calendar of French public holidays.
func NewFrenchCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(fr.Holidays...)
	return c
}

// Daily summarises records per calendar day, in the records' own time zone.
// Days are returned in chronological order. holidays may be nil.
func Daily(records []models.Record, holidays HolidayCalendar) []models.DailySummary {
	type dayData struct {
		date             time.Time
		n                int
		actual           []float64
		errJMinus1, errJ []float64
		pctJMinus1, pctJ []float64
	}

	var order []*dayData
	days := make(map[string]*dayData)
	for _, r := range records {
		key := r.Timestamp.Format(time.DateOnly)
		dd, ok := days[key]
		if !ok {
			y, m, d := r.Timestamp.Date()
			dd = &dayData{date: time.Date(y, m, d, 0, 0, 0, 0, r.Timestamp.Location())}
			days[key] = dd
			order = append(order, dd)
		}
		dd.n++
		if r.Consumption == nil {
			continue
		}
		actual := *r.Consumption
		dd.actual = append(dd.actual, actual)
		if r.ForecastJMinus1 != nil {
			dd.errJMinus1, dd.pctJMinus1 = appendError(dd.errJMinus1, dd.pctJMinus1, *r.ForecastJMinus1, actual)
		}
		if r.ForecastJ != nil {
			dd.errJ, dd.pctJ = appendError(dd.errJ, dd.pctJ, *r.ForecastJ, actual)
		}
	}

	slices.SortFunc(order, func(a, b *dayData) int {
		return a.date.Compare(b.date)
	})

	out := make([]models.DailySummary, 0, len(order))
	for _, dd := range order {
		s := models.DailySummary{
			Date:         dd.date,
			Weekday:      dd.date.Weekday().String(),
			Weekend:      dd.date.Weekday() == time.Saturday || dd.date.Weekday() == time.Sunday,
			Observations: dd.n,
		}
		if holidays != nil {
			if actual, _, h := holidays.IsHoliday(dd.date); actual && h != nil {
				s.Holiday = h.Name
			}
		}
		if len(dd.actual) > 0 {
			s.Consumption = &models.ConsumptionStats{
				Mean: stat.Mean(dd.actual, nil),
				Min:  floats.Min(dd.actual),
				Max:  floats.Max(dd.actual),
				Sum:  floats.Sum(dd.actual),
			}
		}
		s.ErrorJMinus1 = forecastError(dd.errJMinus1, dd.pctJMinus1)
		s.ErrorJ = forecastError(dd.errJ, dd.pctJ)
		out = append(out, s)
	}
	return out
}

// appendError records the absolute error and, when actual is not zero, the
// absolute percentage error of one forecast point.
func appendError(abs, pct []float64, forecast, actual float64) ([]float64, []float64) {
	e := math.Abs(forecast - actual)
	abs = append(abs, e)
	if actual != 0 {
		pct = append(pct, 100*e/math.Abs(actual))
	}
	return abs, pct
}

func forecastError(abs, pct []float64) *models.ForecastError {
	if len(abs) == 0 {
		return nil
	}
	fe := &models.ForecastError{
		MAE: stat.Mean(abs, nil),
		N:   len(abs),
	}
	if len(pct) > 0 {
		fe.MAPE = stat.Mean(pct, nil)
	}
	return fe
}
