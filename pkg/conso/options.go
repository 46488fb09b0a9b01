// Package conso extracts timestamped electricity consumption series from
// RTE-style daily block sheets.
package conso

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/parser"
	"github.com/sirupsen/logrus"
)

// Options configures extraction behavior.
type Options struct {
	// Sheets restricts extraction to the named sheets. Empty means every sheet.
	Sheets []string
	// Range restricts the scanned block, e.g. "A3:D20000" or "B:E".
	Range string
	// UsePrintArea scans only the sheet's print area when Range is empty.
	UsePrintArea bool
	// Column is the 0-based column (within the scanned block) holding day
	// headers and times.
	Column int
	// AutoColumn detects the day header column instead of using Column.
	AutoColumn bool
	// BlankPolicy decides whether blank rows reset the active day.
	BlankPolicy parser.BlankPolicy
	// Location is the time zone of produced timestamps (UTC when nil).
	Location *time.Location
	// Delimiter separates fields of text exports. Zero selects ';' for .csv
	// files and tab otherwise.
	Delimiter rune
	// Encoding is the text encoding of text exports (see
	// parser.DelimitedOptions).
	Encoding string
	// Logger receives warnings and row diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		BlankPolicy: parser.BlankIgnore,
		Location:    time.UTC,
		Encoding:    "auto",
	}
}

// Validate checks option values.
func (o Options) Validate() error {
	if o.Column < 0 {
		return fmt.Errorf("%w: negative column %d", ErrInvalidOptions, o.Column)
	}
	if _, err := parser.ParseBlankPolicy(string(o.BlankPolicy)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.Range != "" {
		if _, _, err := parser.ParseRange(o.Range); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	}
	return nil
}

// ShouldScanSheet returns whether the named sheet is selected.
func (o Options) ShouldScanSheet(name string) bool {
	return len(o.Sheets) == 0 || slices.Contains(o.Sheets, name)
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (o Options) extractorConfig(column int) parser.ExtractorConfig {
	policy, _ := parser.ParseBlankPolicy(string(o.BlankPolicy))
	return parser.ExtractorConfig{
		Column:      column,
		BlankPolicy: policy,
		Location:    o.Location,
	}
}
