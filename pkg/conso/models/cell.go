// Package models defines data structures for consumption sheet extraction.
package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellKind identifies which variant of a Cell is populated.
type CellKind int

const (
	// CellEmpty is a missing or blank cell.
	CellEmpty CellKind = iota
	// CellText holds free text, including day headers and "H:MM" strings.
	CellText
	// CellNumber holds a numeric value.
	CellNumber
	// CellTime holds a time of day stored as a spreadsheet time value.
	CellTime
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellTime:
		return "time"
	default:
		return "unknown"
	}
}

// Clock is a time of day.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ClockFromFraction converts a spreadsheet day fraction (0.5 is noon) to a Clock,
// rounded to the nearest second. Fractions close to 1 round to 24:00:00,
// which is not Valid.
func ClockFromFraction(frac float64) Clock {
	secs := int(math.Round(frac * 86400))
	return Clock{
		Hour:   secs / 3600,
		Minute: secs % 3600 / 60,
		Second: secs % 60,
	}
}

// Valid reports whether the clock lies within 0:00:00 and 23:59:59.
func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour < 24 &&
		c.Minute >= 0 && c.Minute < 60 &&
		c.Second >= 0 && c.Second < 60
}

func (c Clock) String() string {
	if c.Second != 0 {
		return fmt.Sprintf("%d:%02d:%02d", c.Hour, c.Minute, c.Second)
	}
	return fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
}

// Cell is a single sheet cell. Only the field matching Kind is meaningful.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Clock  Clock
}

// EmptyCell returns a blank cell.
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// TextCell returns a text cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Number: f}
}

// TimeCell returns a time-of-day cell.
func TimeCell(hour, minute, second int) Cell {
	return Cell{Kind: CellTime, Clock: Clock{Hour: hour, Minute: minute, Second: second}}
}

// IsBlank reports whether the cell is empty or holds whitespace only.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellTime:
		return c.Clock.String()
	default:
		return ""
	}
}
