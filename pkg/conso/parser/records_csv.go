package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"golang.org/x/text/unicode/norm"
)

// ErrMissingColumn indicates a cleaned CSV without a required column.
var ErrMissingColumn = errors.New("missing column")

var recordTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// ReadRecordsCSV reads the cleaned consumption CSV format
// (datetime;PrévisionJ-1;PrévisionJ;Consommation) back into records.
// Timestamps without an offset are read in loc (UTC when nil).
func ReadRecordsCSV(r io.Reader, delimiter rune, loc *time.Location) ([]models.Record, error) {
	if loc == nil {
		loc = time.UTC
	}
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	if reader.Comma == 0 {
		reader.Comma = ';'
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := make([]int, len(models.RecordCSVHeader))
	for i, name := range models.RecordCSVHeader {
		idx[i] = columnIndex(header, name)
	}
	if idx[0] < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, models.RecordCSVHeader[0])
	}

	var records []models.Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		ts, err := parseRecordTime(valueAt(fields, idx[0]), loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		values := make([]*float64, 3)
		for i := range values {
			if idx[i+1] < 0 {
				continue
			}
			v, err := parseField(textToCell(valueAt(fields, idx[i+1])))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			values[i] = v
		}

		records = append(records, models.Record{
			Timestamp:       ts,
			ForecastJMinus1: values[0],
			ForecastJ:       values[1],
			Consumption:     values[2],
			Row:             line - 1,
		})
	}
	return records, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		if strings.EqualFold(norm.NFC.String(h), name) {
			return i
		}
	}
	return -1
}

func parseRecordTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range recordTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", s)
}
