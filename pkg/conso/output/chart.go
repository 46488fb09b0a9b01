package output

import (
	"io"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// missingPoint is the ECharts placeholder for a hole in a line.
const missingPoint = "-"

// LineChart plots the two forecasts and the measured consumption of records.
func LineChart(title string, records []models.Record) *charts.Line {
	line := newLine(title)

	xAxis := make([]string, 0, len(records))
	jMinus1 := make([]opts.LineData, 0, len(records))
	j := make([]opts.LineData, 0, len(records))
	actual := make([]opts.LineData, 0, len(records))
	for _, r := range records {
		xAxis = append(xAxis, r.Timestamp.Format("2006-01-02 15:04"))
		jMinus1 = append(jMinus1, lineValue(r.ForecastJMinus1))
		j = append(j, lineValue(r.ForecastJ))
		actual = append(actual, lineValue(r.Consumption))
	}

	line.SetXAxis(xAxis).
		AddSeries("Prévision J-1", jMinus1).
		AddSeries("Prévision J", j).
		AddSeries("Consommation", actual)
	return line
}

// DailyChart plots the mean, minimum and maximum consumption of each day.
func DailyChart(title string, days []models.DailySummary) *charts.Line {
	line := newLine(title)

	xAxis := make([]string, 0, len(days))
	mean := make([]opts.LineData, 0, len(days))
	low := make([]opts.LineData, 0, len(days))
	high := make([]opts.LineData, 0, len(days))
	for _, d := range days {
		xAxis = append(xAxis, d.Date.Format(time.DateOnly))
		if d.Consumption == nil {
			mean = append(mean, opts.LineData{Value: missingPoint})
			low = append(low, opts.LineData{Value: missingPoint})
			high = append(high, opts.LineData{Value: missingPoint})
			continue
		}
		mean = append(mean, opts.LineData{Value: d.Consumption.Mean})
		low = append(low, opts.LineData{Value: d.Consumption.Min})
		high = append(high, opts.LineData{Value: d.Consumption.Max})
	}

	line.SetXAxis(xAxis).
		AddSeries("Moyenne", mean).
		AddSeries("Min", low).
		AddSeries("Max", high)
	return line
}

// RenderPage renders charts on a single HTML page.
func RenderPage(w io.Writer, title string, chs ...components.Charter) error {
	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(chs...)
	return page.Render(w)
}

func newLine(title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type: "slider",
		}),
	)
	return line
}

func lineValue(v *float64) opts.LineData {
	if v == nil {
		return opts.LineData{Value: missingPoint}
	}
	return opts.LineData{Value: *v}
}
