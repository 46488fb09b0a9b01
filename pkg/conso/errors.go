package conso

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is neither an xlsx workbook nor
// delimited text.
var ErrInvalidFormat = errors.New("invalid input format")

// ErrLegacyXLS indicates a binary BIFF workbook, which cannot be read.
var ErrLegacyXLS = errors.New("legacy binary .xls workbook; convert it to .xlsx")

// ErrSheetNotFound indicates a requested sheet is missing from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrInvalidInput indicates the input cannot be read as rows at all.
var ErrInvalidInput = errors.New("input is not a readable sheet")

// ErrInvalidOptions indicates inconsistent extraction options.
var ErrInvalidOptions = errors.New("invalid options")

// ExtractionError represents an error during extraction of one sheet.
type ExtractionError struct {
	SheetName string
	Component string // "rows", "range"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
