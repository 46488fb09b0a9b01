package parser

import (
	"testing"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) models.Cell {
	return models.TextCell(s)
}

func num(f float64) models.Cell {
	return models.NumberCell(f)
}

func row(cells ...models.Cell) []models.Cell {
	return cells
}

func ts(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func rec(t time.Time, rowIdx int, a, b, c float64) models.Record {
	return models.Record{
		Timestamp:       t,
		ForecastJMinus1: models.Float(a),
		ForecastJ:       models.Float(b),
		Consumption:     models.Float(c),
		Row:             rowIdx,
	}
}

func TestExtractScenarios(t *testing.T) {
	testData := map[string]struct {
		rows        []models.Row
		expected    []models.Record
		diagnostics []models.Diagnostic
	}{
		"day header then two observations": {
			rows: models.NewRows(
				row(text("Journée du 01/01/2023")),
				row(text("0:15"), num(100), num(110), num(105)),
				row(text("0:30"), num(101), num(111), num(106)),
			),
			expected: []models.Record{
				rec(ts(2023, 1, 1, 0, 15), 1, 100, 110, 105),
				rec(ts(2023, 1, 1, 0, 30), 2, 101, 111, 106),
			},
		},
		"orphan observation dropped": {
			rows: models.NewRows(
				row(text("0:15"), num(1), num(2), num(3)),
				row(text("Journée du 02/01/2023")),
				row(text("0:30"), num(4), num(5), num(6)),
			),
			expected: []models.Record{
				rec(ts(2023, 1, 2, 0, 30), 2, 4, 5, 6),
			},
		},
		"unparsable day header": {
			rows: models.NewRows(
				row(text("Journée du not-a-date")),
				row(text("0:15"), num(1), num(2), num(3)),
			),
			diagnostics: []models.Diagnostic{
				{Row: 0, Kind: models.MalformedDateHeader},
			},
		},
		"malformed time": {
			rows: models.NewRows(
				row(text("Journée du 01/01/2023")),
				row(text("25:99"), num(1), num(2), num(3)),
			),
			diagnostics: []models.Diagnostic{
				{Row: 1, Kind: models.MalformedObservation},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			var out models.SheetSeries
			require.NotPanics(t, func() {
				out = Extract(td.rows, ExtractorConfig{})
			})

			if td.expected == nil {
				assert.Empty(t, out.Records)
			} else {
				assert.Equal(t, td.expected, out.Records)
			}

			require.Len(t, out.Diagnostics, len(td.diagnostics))
			for i, d := range td.diagnostics {
				assert.Equal(t, d.Row, out.Diagnostics[i].Row)
				assert.Equal(t, d.Kind, out.Diagnostics[i].Kind)
				assert.NotEmpty(t, out.Diagnostics[i].Reason)
			}
		})
	}
}

func TestExtractBadHeaderKeepsPreviousDay(t *testing.T) {
	rows := models.NewRows(
		row(text("Journée du 01/01/2023")),
		row(text("0:00"), num(1), num(2), num(3)),
		row(text("Journée du 31/02/2023")),
		row(text("0:15"), num(4), num(5), num(6)),
	)

	out := Extract(rows, ExtractorConfig{})
	require.Len(t, out.Records, 2)
	assert.Equal(t, ts(2023, 1, 1, 0, 15), out.Records[1].Timestamp)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, 2, out.Diagnostics[0].Row)
	assert.Equal(t, models.MalformedDateHeader, out.Diagnostics[0].Kind)
}

func TestExtractBlankPolicies(t *testing.T) {
	rows := models.NewRows(
		row(text("Journée du 01/01/2023")),
		row(text("0:00"), num(1), num(2), num(3)),
		row(),
		row(text("0:15"), num(4), num(5), num(6)),
		row(models.EmptyCell(), num(9)),
		row(text("   ")),
		row(text("0:30"), num(7), num(8), num(9)),
	)

	testData := map[string]struct {
		policy BlankPolicy
		rows   []int
	}{
		"ignore":       {policy: BlankIgnore, rows: []int{1, 3, 6}},
		"default":      {policy: "", rows: []int{1, 3, 6}},
		"reset-double": {policy: BlankResetOnDouble, rows: []int{1, 3}},
		"reset-single": {policy: BlankResetOnSingle, rows: []int{1}},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			out := Extract(rows, ExtractorConfig{BlankPolicy: td.policy})
			got := make([]int, 0, len(out.Records))
			for _, r := range out.Records {
				got = append(got, r.Row)
			}
			assert.Equal(t, td.rows, got)
			assert.Empty(t, out.Diagnostics)
		})
	}
}

func TestExtractDoubleBlankBrokenByOtherRow(t *testing.T) {
	rows := models.NewRows(
		row(text("Journée du 01/01/2023")),
		row(),
		row(text("Données RTE")),
		row(),
		row(text("0:15"), num(4), num(5), num(6)),
	)

	out := Extract(rows, ExtractorConfig{BlankPolicy: BlankResetOnDouble})
	require.Len(t, out.Records, 1)
	assert.Equal(t, ts(2023, 1, 1, 0, 15), out.Records[0].Timestamp)
}

func TestExtractFields(t *testing.T) {
	rows := models.NewRows(
		row(text("Journée du 05/03/2024")),
		row(text("12:00"), text("52 100"), models.EmptyCell(), text("51234,5")),
		row(text(" 9:45 "), num(1)),
		row(text("10:00"), text("ND"), num(2), num(3)),
		row(models.TimeCell(23, 45, 0), num(7), num(8), num(9)),
		row(models.TimeCell(24, 0, 0), num(7), num(8), num(9)),
	)

	out := Extract(rows, ExtractorConfig{})
	require.Len(t, out.Records, 3)

	first := out.Records[0]
	assert.Equal(t, ts(2024, 3, 5, 12, 0), first.Timestamp)
	require.NotNil(t, first.ForecastJMinus1)
	assert.Equal(t, 52100.0, *first.ForecastJMinus1)
	assert.Nil(t, first.ForecastJ)
	require.NotNil(t, first.Consumption)
	assert.Equal(t, 51234.5, *first.Consumption)

	second := out.Records[1]
	assert.Equal(t, ts(2024, 3, 5, 9, 45), second.Timestamp)
	assert.Nil(t, second.ForecastJ)
	assert.Nil(t, second.Consumption)

	assert.Equal(t, ts(2024, 3, 5, 23, 45), out.Records[2].Timestamp)

	require.Len(t, out.Diagnostics, 2)
	assert.Equal(t, 3, out.Diagnostics[0].Row)
	assert.Contains(t, out.Diagnostics[0].Reason, "ND")
	assert.Equal(t, 5, out.Diagnostics[1].Row)
}

func TestExtractColumnAndLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	rows := models.NewRows(
		row(text("ignored"), text("Journée du 14/07/2023")),
		row(models.EmptyCell(), text("8:00"), num(1), num(2), num(3)),
	)

	out := Extract(rows, ExtractorConfig{Column: 1, Location: paris})
	require.Len(t, out.Records, 1)
	assert.True(t, out.Records[0].Timestamp.Equal(time.Date(2023, 7, 14, 6, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3.0, *out.Records[0].Consumption)
}

func TestExtractDaylightSaving(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	cfg := ExtractorConfig{Location: paris}

	utc := func(d, hh, mm int) time.Time {
		return time.Date(2023, 3, d, hh, mm, 0, 0, time.UTC)
	}

	// Clocks go forward at 2:00 on 26/03/2023; 2:00 to 2:59 do not exist.
	spring := Extract(models.NewRows(
		row(text("Journée du 26/03/2023")),
		row(text("1:45"), num(1), num(1), num(1)),
		row(text("2:00"), num(2), num(2), num(2)),
		row(text("2:30"), num(3), num(3), num(3)),
		row(text("3:00"), num(4), num(4), num(4)),
	), cfg)
	require.Len(t, spring.Records, 2)
	assert.True(t, spring.Records[0].Timestamp.Equal(utc(26, 0, 45)))
	assert.True(t, spring.Records[1].Timestamp.Equal(utc(26, 1, 0)))
	require.Len(t, spring.Diagnostics, 2)
	for i, d := range spring.Diagnostics {
		assert.Equal(t, i+2, d.Row)
		assert.Equal(t, models.MalformedObservation, d.Kind)
	}

	// Clocks go back at 3:00 on 29/10/2023; 2:00 to 2:59 happen twice.
	autumn := Extract(models.NewRows(
		row(text("Journée du 29/10/2023")),
		row(text("2:00"), num(1), num(1), num(1)),
		row(text("2:30"), num(2), num(2), num(2)),
		row(text("2:00"), num(3), num(3), num(3)),
		row(text("2:30"), num(4), num(4), num(4)),
		row(text("3:00"), num(5), num(5), num(5)),
	), cfg)
	require.Len(t, autumn.Records, 5)
	assert.Empty(t, autumn.Diagnostics)
	want := []time.Time{
		time.Date(2023, 10, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 10, 29, 0, 30, 0, 0, time.UTC),
		time.Date(2023, 10, 29, 1, 0, 0, 0, time.UTC),
		time.Date(2023, 10, 29, 1, 30, 0, 0, time.UTC),
		time.Date(2023, 10, 29, 2, 0, 0, 0, time.UTC),
	}
	for i, r := range autumn.Records {
		assert.True(t, r.Timestamp.Equal(want[i]), "record %d: got %v", i, r.Timestamp)
	}

	// A new day header starts again from the first occurrence.
	again := Extract(models.NewRows(
		row(text("Journée du 29/10/2023")),
		row(text("2:30"), num(1), num(1), num(1)),
		row(text("Journée du 29/10/2023")),
		row(text("2:00"), num(1), num(1), num(1)),
	), cfg)
	require.Len(t, again.Records, 2)
	assert.True(t, again.Records[1].Timestamp.Equal(want[0]))
}

func TestExtractTimeWithSeconds(t *testing.T) {
	out := Extract(models.NewRows(
		row(text("Journée du 01/01/2023")),
		row(text("12:15:00"), num(1), num(2), num(3)),
		row(text("12:30"), num(1), num(2), num(3)),
	), ExtractorConfig{})

	require.Len(t, out.Records, 1)
	assert.Equal(t, ts(2023, 1, 1, 12, 30), out.Records[0].Timestamp)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, 1, out.Diagnostics[0].Row)
	assert.Equal(t, models.MalformedObservation, out.Diagnostics[0].Kind)
	assert.Contains(t, out.Diagnostics[0].Reason, "12:15:00")
}

func TestExtractProperties(t *testing.T) {
	rows := models.NewRows(
		row(text("0:00"), num(0), num(0), num(0)),
		row(text("Journée du 01/01/2023")),
		row(text("0:00"), num(1), num(1), num(1)),
		row(text("bad:time"), num(1), num(1), num(1)),
		row(text("7:5"), num(1), num(1), num(1)),
		row(text("Journée du 02/01/2023")),
		row(text("0:00"), num(2), num(2), num(2)),
		row(text("23:60"), num(2), num(2), num(2)),
		row(text("23:45"), num(3), num(3), num(3)),
	)
	cfg := ExtractorConfig{}

	first := Extract(rows, cfg)
	second := Extract(rows, cfg)
	assert.Equal(t, first, second)

	// At most one record per observation row after the first day header.
	assert.LessOrEqual(t, len(first.Records), 4)
	for i := 1; i < len(first.Records); i++ {
		assert.Less(t, first.Records[i-1].Row, first.Records[i].Row)
		assert.False(t, first.Records[i].Timestamp.Before(first.Records[i-1].Timestamp))
	}
	for _, r := range first.Records {
		assert.False(t, r.Timestamp.IsZero())
	}
}

func TestExtractEmptyInput(t *testing.T) {
	out := Extract(nil, ExtractorConfig{})
	assert.NotNil(t, out.Records)
	assert.Empty(t, out.Records)
	assert.Empty(t, out.Diagnostics)
}

func TestParseBlankPolicy(t *testing.T) {
	p, err := ParseBlankPolicy("")
	require.NoError(t, err)
	assert.Equal(t, BlankIgnore, p)

	p, err = ParseBlankPolicy("Reset-Double")
	require.NoError(t, err)
	assert.Equal(t, BlankResetOnDouble, p)

	_, err = ParseBlankPolicy("sometimes")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		cell     models.Cell
		expected models.Clock
		ok       bool
	}{
		{text("0:15"), models.Clock{Minute: 15}, true},
		{text("09:05"), models.Clock{Hour: 9, Minute: 5}, true},
		{text("23:59"), models.Clock{Hour: 23, Minute: 59}, true},
		{text("24:00"), models.Clock{}, false},
		{text("12:5"), models.Clock{}, false},
		{text("123:45"), models.Clock{}, false},
		{text("12:15:00"), models.Clock{}, false},
		{models.TimeCell(6, 30, 15), models.Clock{Hour: 6, Minute: 30, Second: 15}, true},
	}

	for _, tt := range tests {
		clock, err := parseClock(tt.cell)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrMalformedTime, tt.cell.String())
			continue
		}
		require.NoError(t, err, tt.cell.String())
		assert.Equal(t, tt.expected, clock)
	}
}
