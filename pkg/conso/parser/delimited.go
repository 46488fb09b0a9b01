package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// DelimitedOptions configures reading of delimited text exports.
type DelimitedOptions struct {
	// Delimiter separates fields (default: tab).
	Delimiter rune
	// Encoding names the text encoding: auto (default), utf-8,
	// windows-1252, iso-8859-1 or iso-8859-15. Auto reads the input as UTF-8
	// when it is valid UTF-8 and as Windows-1252 otherwise.
	Encoding string
}

// DefaultDelimitedOptions returns the settings of eco2mix ".xls" exports,
// which are tab separated text, usually Windows-1252.
func DefaultDelimitedOptions() DelimitedOptions {
	return DelimitedOptions{
		Delimiter: '\t',
		Encoding:  "auto",
	}
}

// ReadDelimitedRows reads header-free delimited text as typed rows.
// Blank lines are kept as empty rows so that row indexes match line numbers;
// a record spanning several lines takes the index of its first line.
func ReadDelimitedRows(r io.Reader, opts DelimitedOptions) ([]models.Row, error) {
	decoded, err := decodeReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []models.Row
	nextLine := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", nextLine, err)
		}

		line, _ := reader.FieldPos(0)
		for ; nextLine < line; nextLine++ {
			rows = append(rows, models.Row{Index: nextLine - 1})
		}
		// A quoted field may span lines; the record ends on the last line of
		// its last field.
		endLine, _ := reader.FieldPos(len(record) - 1)
		endLine += strings.Count(record[len(record)-1], "\n")

		if len(rows) == 0 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}
		if n := len(record); n > 1 && strings.TrimSpace(record[n-1]) == "" {
			record = record[:n-1]
		}

		cells := make([]models.Cell, len(record))
		for i, field := range record {
			cells[i] = textToCell(field)
		}
		rows = append(rows, models.Row{Index: line - 1, Cells: cells})
		nextLine = endLine + 1
	}

	return rows, nil
}

func textToCell(field string) models.Cell {
	if strings.TrimSpace(field) == "" {
		return models.EmptyCell()
	}
	if v, ok := parseNumber(field); ok {
		return models.NumberCell(v)
	}
	return models.TextCell(field)
}

func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(encoding), "_", "-")) {
	case "", "auto":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if utf8.Valid(data) {
			return bytes.NewReader(data), nil
		}
		return transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()), nil
	case "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1", "latin-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "iso-8859-15", "latin9", "latin-9":
		return transform.NewReader(r, charmap.ISO8859_15.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}
