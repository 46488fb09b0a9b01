package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso"
	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"github.com/Zverobaza/ProjetDataScience/pkg/conso/parser"
	"github.com/sirupsen/logrus"
)

func newLogger(level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)
	switch format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be text or json)", format)
	}
	return logger, nil
}

// buildOptions turns the extraction flags into library options.
func buildOptions(logger logrus.FieldLogger) (conso.Options, error) {
	opts := conso.DefaultOptions()
	opts.Sheets = sheets
	opts.Range = cellRange
	opts.UsePrintArea = printArea
	opts.Column = column
	opts.AutoColumn = autoColumn
	opts.Encoding = encoding
	opts.Logger = logger

	policy, err := parser.ParseBlankPolicy(blankPolicy)
	if err != nil {
		return opts, err
	}
	opts.BlankPolicy = policy

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return opts, fmt.Errorf("invalid time zone %q: %w", timezone, err)
	}
	opts.Location = loc

	delim, err := parseDelimiter(delimiter)
	if err != nil {
		return opts, err
	}
	opts.Delimiter = delim

	return opts, opts.Validate()
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab", "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q (must be a single character)", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func inputPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(configInputs) > 0 {
		return configInputs, nil
	}
	return nil, errors.New("no input files (pass them as arguments or list them under inputs in --config)")
}

// collect extracts every input file into one collection, in argument order.
// Cleaned CSV files (with a datetime header) are read back as records.
func collect(paths []string, opts conso.Options, logger logrus.FieldLogger) (*models.Collection, error) {
	coll := &models.Collection{Records: make([]models.Record, 0)}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s", path)
		}

		if isCleanedCSV(path) {
			records, err := conso.LoadRecordsFile(path, opts.Location)
			if err != nil {
				return nil, fmt.Errorf("loading %s failed: %w", path, err)
			}
			coll.Sources = append(coll.Sources, filepath.Base(path))
			coll.Records = append(coll.Records, records...)
			logger.WithFields(logrus.Fields{"book": filepath.Base(path), "records": len(records)}).Info("records loaded")
			continue
		}

		wb, err := conso.ExtractFile(path, opts)
		if err != nil {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}
		coll.Add(wb)
		logger.WithFields(logrus.Fields{
			"book":        wb.BookName,
			"sheets":      len(wb.SheetOrder),
			"records":     len(wb.Records()),
			"diagnostics": wb.DiagnosticCount(),
		}).Info("workbook extracted")
	}
	return coll, nil
}

func isCleanedCSV(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	first, _, _ := strings.Cut(strings.TrimPrefix(line, "\ufeff"), ";")
	return strings.EqualFold(strings.TrimSpace(first), models.RecordCSVHeader[0])
}

// parseBound parses a --from/--to value. A date alone means the start of the
// day, or its last instant when endOfDay is set.
func parseBound(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")", s)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
