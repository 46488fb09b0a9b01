package parser

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"golang.org/x/text/unicode/norm"
)

// DayMarkerPrefix is the text announcing a new day block.
const DayMarkerPrefix = "Journée du"

var (
	datePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	timePattern = regexp.MustCompile(`^\d{1,2}:\d{2}`)
)

// BlankPolicy decides what a blank first cell does to the active day.
type BlankPolicy string

const (
	// BlankIgnore never resets the active day; day headers alone move it.
	BlankIgnore BlankPolicy = "ignore"
	// BlankResetOnDouble resets the active day after two consecutive blank rows.
	BlankResetOnDouble BlankPolicy = "reset-double"
	// BlankResetOnSingle resets the active day on every blank row.
	BlankResetOnSingle BlankPolicy = "reset-single"
)

// ParseBlankPolicy parses a policy name. The empty string selects BlankIgnore.
func ParseBlankPolicy(s string) (BlankPolicy, error) {
	switch p := BlankPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return BlankIgnore, nil
	case BlankIgnore, BlankResetOnDouble, BlankResetOnSingle:
		return p, nil
	default:
		return "", fmt.Errorf("invalid blank policy %q (must be ignore, reset-double or reset-single)", s)
	}
}

// ExtractorConfig configures a timestamp extraction.
type ExtractorConfig struct {
	// Column is the 0-based cell holding day headers and times. The three
	// measurement fields follow it.
	Column int
	// BlankPolicy controls resets of the active day on blank rows.
	BlankPolicy BlankPolicy
	// Location is the time zone of the produced timestamps (UTC when nil).
	Location *time.Location
}

func (c ExtractorConfig) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// scanState is carried from one row to the next during a single extraction.
type scanState struct {
	day    time.Time
	hasDay bool
	blanks int
	// last is the timestamp of the previous record of the active day.
	last time.Time
}

// Extract reconstructs timestamped records from a sheet made of day header rows
// ("Journée du DD/MM/YYYY") followed by "H:MM" observation rows.
//
// Records keep the input row order. Observation rows seen before any valid day
// header are dropped silently; rows that fail to parse are reported as
// diagnostics and skipped.
func Extract(rows []models.Row, cfg ExtractorConfig) models.SheetSeries {
	out := models.SheetSeries{Records: make([]models.Record, 0)}

	var st scanState
	for _, row := range rows {
		var (
			rec    *models.Record
			rowErr *RowError
		)
		st, rec, rowErr = step(cfg, st, row)
		if rowErr != nil {
			out.Diagnostics = append(out.Diagnostics, rowErr.Diagnostic())
			continue
		}
		if rec != nil {
			out.Records = append(out.Records, *rec)
		}
	}
	return out
}

// step classifies one row and returns the next state along with the record or
// row error it produced, if any.
func step(cfg ExtractorConfig, st scanState, row models.Row) (scanState, *models.Record, *RowError) {
	key := row.Cell(cfg.Column)

	if key.IsBlank() {
		st.blanks++
		switch cfg.BlankPolicy {
		case BlankResetOnSingle:
			st.hasDay = false
		case BlankResetOnDouble:
			if st.blanks >= 2 {
				st.hasDay = false
			}
		}
		return st, nil, nil
	}
	st.blanks = 0

	if IsDayMarker(key) {
		day, err := parseDayMarker(key.Text, cfg.location())
		if err != nil {
			return st, nil, &RowError{Row: row.Index, Kind: models.MalformedDateHeader, Err: err}
		}
		st.day, st.hasDay, st.last = day, true, time.Time{}
		return st, nil, nil
	}

	if !IsObservation(key) || !st.hasDay {
		return st, nil, nil
	}

	rec, err := buildRecord(cfg, st.day, st.last, row)
	if err != nil {
		return st, nil, &RowError{Row: row.Index, Kind: models.MalformedObservation, Err: err}
	}
	st.last = rec.Timestamp
	return st, &rec, nil
}

// IsDayMarker reports whether the cell is a day header text.
func IsDayMarker(c models.Cell) bool {
	return c.Kind == models.CellText && strings.Contains(norm.NFC.String(c.Text), DayMarkerPrefix)
}

// IsObservation reports whether the cell holds a time of day, either as a
// time value or as text starting with "H:MM" / "HH:MM". Text with anything
// after the minutes is still an observation and fails in parseClock.
func IsObservation(c models.Cell) bool {
	switch c.Kind {
	case models.CellTime:
		return true
	case models.CellText:
		return timePattern.MatchString(strings.TrimSpace(c.Text))
	default:
		return false
	}
}

func parseDayMarker(text string, loc *time.Location) (time.Time, error) {
	m := datePattern.FindString(text)
	if m == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMissingDate, text)
	}
	day, err := time.ParseInLocation("02/01/2006", m, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, m)
	}
	return day, nil
}

func buildRecord(cfg ExtractorConfig, day, last time.Time, row models.Row) (models.Record, error) {
	clock, err := parseClock(row.Cell(cfg.Column))
	if err != nil {
		return models.Record{}, err
	}
	ts, err := localTime(day, clock, cfg.location(), last)
	if err != nil {
		return models.Record{}, err
	}

	fields := make([]*float64, 3)
	for i := range fields {
		v, err := parseField(row.Cell(cfg.Column + 1 + i))
		if err != nil {
			return models.Record{}, fmt.Errorf("column %d: %w", cfg.Column+2+i, err)
		}
		fields[i] = v
	}

	return models.Record{
		Timestamp:       ts,
		ForecastJMinus1: fields[0],
		ForecastJ:       fields[1],
		Consumption:     fields[2],
		Row:             row.Index,
	}, nil
}

// localTime returns the instant showing clock on day in loc. A clock repeated
// when clocks go back has two instants; the first one after last is chosen so
// the repeated hour follows the first one. A clock skipped when clocks go
// forward does not exist and is an error.
func localTime(day time.Time, clock models.Clock, loc *time.Location, last time.Time) (time.Time, error) {
	wall := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour, clock.Minute, clock.Second, 0, time.UTC)

	var candidates []time.Time
	for _, near := range []time.Time{wall.Add(-12 * time.Hour), wall, wall.Add(12 * time.Hour)} {
		_, offset := near.In(loc).Zone()
		t := wall.Add(-time.Duration(offset) * time.Second).In(loc)
		if !sameWallClock(t, wall) || slices.ContainsFunc(candidates, t.Equal) {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return time.Time{}, fmt.Errorf("%w: %s on %s in %s", ErrSkippedTime, clock, day.Format(time.DateOnly), loc)
	}
	slices.SortFunc(candidates, time.Time.Compare)

	if !last.IsZero() {
		for _, t := range candidates {
			if t.After(last) {
				return t, nil
			}
		}
	}
	return candidates[0], nil
}

func sameWallClock(t, wall time.Time) bool {
	y, m, d := t.Date()
	wy, wm, wd := wall.Date()
	return y == wy && m == wm && d == wd &&
		t.Hour() == wall.Hour() && t.Minute() == wall.Minute() && t.Second() == wall.Second()
}

// parseClock parses a time cell. Text must be strict H:MM.
func parseClock(c models.Cell) (models.Clock, error) {
	if c.Kind == models.CellTime {
		if !c.Clock.Valid() {
			return models.Clock{}, fmt.Errorf("%w: %02d:%02d:%02d", ErrMalformedTime, c.Clock.Hour, c.Clock.Minute, c.Clock.Second)
		}
		return c.Clock, nil
	}

	text := strings.TrimSpace(c.Text)
	hh, mm, ok := strings.Cut(text, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return models.Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return models.Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return models.Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	clock := models.Clock{Hour: hour, Minute: minute}
	if !clock.Valid() {
		return models.Clock{}, fmt.Errorf("%w: %q out of range", ErrMalformedTime, text)
	}
	return clock, nil
}

// parseField converts a measurement cell. Blank cells are missing values.
func parseField(c models.Cell) (*float64, error) {
	if c.IsBlank() {
		return nil, nil
	}
	switch c.Kind {
	case models.CellNumber:
		return models.Float(c.Number), nil
	case models.CellText:
		if v, ok := parseNumber(c.Text); ok {
			return models.Float(v), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrMalformedField, c.Text)
	default:
		return nil, fmt.Errorf("%w: unexpected %s cell %q", ErrMalformedField, c.Kind, c.String())
	}
}
