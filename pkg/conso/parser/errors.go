package parser

import (
	"errors"
	"fmt"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
)

var (
	// ErrMissingDate indicates a day header without a DD/MM/YYYY date.
	ErrMissingDate = errors.New("no DD/MM/YYYY date in day header")
	// ErrInvalidDate indicates a DD/MM/YYYY date that is not a calendar date.
	ErrInvalidDate = errors.New("invalid calendar date")
	// ErrMalformedTime indicates a time of day outside H:MM or 0:00..23:59.
	ErrMalformedTime = errors.New("malformed time of day")
	// ErrSkippedTime indicates a local time skipped by a daylight saving change.
	ErrSkippedTime = errors.New("local time does not exist")
	// ErrMalformedField indicates a measurement cell that is not numeric.
	ErrMalformedField = errors.New("malformed measurement field")
	// ErrUnknownEncoding indicates an unsupported text encoding name.
	ErrUnknownEncoding = errors.New("unknown text encoding")
	// ErrInvalidRange indicates a cell range that cannot be parsed.
	ErrInvalidRange = errors.New("invalid cell range")
)

// RowError is the failure of a single row. It never aborts an extraction.
type RowError struct {
	Row  int
	Kind models.DiagnosticKind
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Kind, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Diagnostic converts the error to its reportable form.
func (e *RowError) Diagnostic() models.Diagnostic {
	return models.Diagnostic{
		Row:    e.Row,
		Kind:   e.Kind,
		Reason: e.Err.Error(),
	}
}
