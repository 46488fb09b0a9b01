package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
)

// TimeLayout is the datetime layout of CSV output.
const TimeLayout = "2006-01-02 15:04:05"

// WriteCSV writes records in the cleaned consumption CSV format
// (datetime;PrévisionJ-1;PrévisionJ;Consommation). Missing values are empty.
func WriteCSV(w io.Writer, records []models.Record, delimiter rune) error {
	cw := newWriter(w, delimiter)
	if err := cw.Write(models.RecordCSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Timestamp.Format(TimeLayout),
			formatValue(r.ForecastJMinus1),
			formatValue(r.ForecastJ),
			formatValue(r.Consumption),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDailyCSV writes daily summaries, one line per day.
func WriteDailyCSV(w io.Writer, days []models.DailySummary, delimiter rune) error {
	cw := newWriter(w, delimiter)
	header := []string{
		"date", "weekday", "weekend", "holiday", "observations",
		"mean", "min", "max", "sum",
		"mae_j_minus_1", "mape_j_minus_1", "mae_j", "mape_j",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, d := range days {
		row := []string{
			d.Date.Format(time.DateOnly),
			d.Weekday,
			strconv.FormatBool(d.Weekend),
			d.Holiday,
			strconv.Itoa(d.Observations),
		}
		if c := d.Consumption; c != nil {
			row = append(row, formatFloat(c.Mean), formatFloat(c.Min), formatFloat(c.Max), formatFloat(c.Sum))
		} else {
			row = append(row, "", "", "", "")
		}
		row = append(row, formatError(d.ErrorJMinus1)...)
		row = append(row, formatError(d.ErrorJ)...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newWriter(w io.Writer, delimiter rune) *csv.Writer {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	} else {
		cw.Comma = ';'
	}
	return cw
}

func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatError(e *models.ForecastError) []string {
	if e == nil {
		return []string{"", ""}
	}
	return []string{formatFloat(e.MAE), formatFloat(e.MAPE)}
}
