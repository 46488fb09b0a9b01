package models

import "fmt"

// DiagnosticKind classifies a row-level extraction problem.
type DiagnosticKind string

const (
	// MalformedDateHeader is a "Journée du" row without a valid DD/MM/YYYY date.
	MalformedDateHeader DiagnosticKind = "malformed_date_header"
	// MalformedObservation is a time row whose time or fields could not be parsed.
	MalformedObservation DiagnosticKind = "malformed_observation"
)

// Diagnostic is a non-fatal, row-scoped error reported alongside extracted records.
type Diagnostic struct {
	// Row is the 0-based index of the offending row.
	Row int `json:"row"`
	// Kind is the problem category.
	Kind DiagnosticKind `json:"kind"`
	// Reason is a human readable description.
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("row %d: %s: %s", d.Row, d.Kind, d.Reason)
}
