package conso

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"github.com/Zverobaza/ProjetDataScience/pkg/conso/parser"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ExtractFile extracts the consumption series of every selected sheet of a
// workbook (.xlsx) or of a delimited text export (.xls, .tsv, .txt, .csv).
func ExtractFile(path string, opts Options) (*models.WorkbookSeries, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return extractWorkbook(path, opts)
	case ".xls", ".tsv", ".txt", ".csv":
		return extractTextExport(path, ext, opts)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidFormat, ext)
	}
}

// ExtractRows runs the timestamp extraction over rows that were already read.
func ExtractRows(rows []models.Row, opts Options) models.SheetSeries {
	column := opts.Column
	if opts.AutoColumn {
		column = parser.DetectKeyColumn(rows)
	}
	return parser.Extract(rows, opts.extractorConfig(column))
}

func extractWorkbook(path string, opts Options) (*models.WorkbookSeries, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	bookName := filepath.Base(path)
	log := opts.logger().WithField("book", bookName)

	// Get sheet names; requested names match case-insensitively like Excel.
	sheetList := f.GetSheetList()
	selected := make([]string, 0, len(opts.Sheets))
	for _, name := range opts.Sheets {
		idx, err := f.GetSheetIndex(name)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, name, bookName)
		}
		selected = append(selected, sheetList[idx])
	}
	opts.Sheets = selected

	wb := &models.WorkbookSeries{
		BookName: bookName,
		Sheets:   make(map[string]models.SheetSeries),
	}

	for _, sheetName := range sheetList {
		if !opts.ShouldScanSheet(sheetName) {
			continue
		}
		sheetLog := log.WithField("sheet", sheetName)

		rng, err := sheetRange(f, sheetName, opts)
		if err != nil {
			return nil, NewExtractionError(sheetName, "range", err)
		}

		rows, err := parser.ReadSheetRows(f, sheetName, rng)
		if err != nil {
			extractErr := NewExtractionError(sheetName, "rows", err)
			if len(opts.Sheets) > 0 {
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, extractErr)
			}
			// Log warning and continue with the other sheets
			sheetLog.WithError(err).Warn("skipping unreadable sheet")
			continue
		}

		series := ExtractRows(rows, opts)
		reportDiagnostics(sheetLog, series)

		wb.Sheets[sheetName] = series
		wb.SheetOrder = append(wb.SheetOrder, sheetName)
	}

	return wb, nil
}

// sheetRange resolves the block to scan: the Range option when it applies to
// this sheet, else the print area when requested, else the whole sheet.
func sheetRange(f *excelize.File, sheetName string, opts Options) (*models.CellRange, error) {
	if opts.Range != "" {
		name, rng, err := parser.ParseRange(opts.Range)
		if err != nil {
			return nil, err
		}
		if name == "" || name == sheetName {
			return &rng, nil
		}
	}
	if opts.UsePrintArea {
		return parser.SheetPrintArea(f, sheetName), nil
	}
	return nil, nil
}

func extractTextExport(path, ext string, opts Options) (*models.WorkbookSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	defer file.Close()

	bookName := filepath.Base(path)
	sheetName := strings.TrimSuffix(bookName, filepath.Ext(bookName))
	log := opts.logger().WithFields(logrus.Fields{"book": bookName, "sheet": sheetName})

	isCompound, streams, err := parser.CompoundStreams(file)
	if isCompound {
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLegacyXLS, bookName, err)
		}
		return nil, fmt.Errorf("%w: %s (streams %s)", ErrLegacyXLS, bookName, strings.Join(streams, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, NewExtractionError(sheetName, "rows", err))
	}

	delimited := parser.DelimitedOptions{
		Delimiter: opts.Delimiter,
		Encoding:  opts.Encoding,
	}
	if delimited.Delimiter == 0 {
		delimited.Delimiter = '\t'
		if ext == ".csv" {
			delimited.Delimiter = ';'
		}
	}

	rows, err := parser.ReadDelimitedRows(file, delimited)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, NewExtractionError(sheetName, "rows", err))
	}

	if opts.Range != "" {
		_, rng, err := parser.ParseRange(opts.Range)
		if err != nil {
			return nil, NewExtractionError(sheetName, "range", err)
		}
		rows = parser.CropRows(rows, rng)
	}

	series := ExtractRows(rows, opts)
	reportDiagnostics(log, series)

	return &models.WorkbookSeries{
		BookName:   bookName,
		Sheets:     map[string]models.SheetSeries{sheetName: series},
		SheetOrder: []string{sheetName},
	}, nil
}

func reportDiagnostics(log logrus.FieldLogger, series models.SheetSeries) {
	for _, d := range series.Diagnostics {
		log.WithFields(logrus.Fields{
			"row":  d.Row,
			"kind": d.Kind,
		}).Warn(d.Reason)
	}
	log.WithFields(logrus.Fields{
		"records":     len(series.Records),
		"diagnostics": len(series.Diagnostics),
	}).Debug("sheet extracted")
}

// LoadRecordsFile reads a cleaned consumption CSV written by the csv output.
func LoadRecordsFile(path string, loc *time.Location) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer file.Close()

	records, err := parser.ReadRecordsCSV(file, ';', loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, filepath.Base(path), err)
	}
	return records, nil
}
