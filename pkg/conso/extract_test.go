package conso

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/parser"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a two-sheet workbook in RTE layout and returns its path.
func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "Consommation RTE")
	f.SetCellValue(sheet, "A2", "Journée du 01/01/2023")
	f.SetCellValue(sheet, "A3", "0:00")
	f.SetCellValue(sheet, "B3", 70100)
	f.SetCellValue(sheet, "C3", 69800)
	f.SetCellValue(sheet, "D3", 70345)
	f.SetCellValue(sheet, "A4", "0:15")
	f.SetCellValue(sheet, "B4", 69000)
	f.SetCellValue(sheet, "A5", "Journée du 02/01/2023")
	f.SetCellValue(sheet, "A6", 0.5)
	f.SetCellValue(sheet, "D6", 65000)

	style, err := f.NewStyle(&excelize.Style{NumFmt: 20})
	if err != nil {
		t.Fatalf("Failed to create style: %v", err)
	}
	if err := f.SetCellStyle(sheet, "A6", "A6", style); err != nil {
		t.Fatalf("Failed to set style: %v", err)
	}

	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}
	f.SetCellValue("Notes", "A1", "Journée du 99/99/2023")

	path := filepath.Join(t.TempDir(), "conso.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestExtractFileWorkbook(t *testing.T) {
	path := writeWorkbook(t)

	logger, hook := test.NewNullLogger()
	opts := DefaultOptions()
	opts.Logger = logger

	wb, err := ExtractFile(path, opts)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}

	if wb.BookName != "conso.xlsx" {
		t.Errorf("Expected book name conso.xlsx, got %s", wb.BookName)
	}
	if len(wb.SheetOrder) != 2 || wb.SheetOrder[0] != "Sheet1" {
		t.Errorf("Expected sheets [Sheet1 Notes], got %v", wb.SheetOrder)
	}

	records := wb.Sheets["Sheet1"].Records
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	want := []time.Time{
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 1, 0, 15, 0, 0, time.UTC),
		time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC),
	}
	for i, rec := range records {
		if !rec.Timestamp.Equal(want[i]) {
			t.Errorf("Record %d: expected %v, got %v", i, want[i], rec.Timestamp)
		}
	}
	if records[0].Consumption == nil || *records[0].Consumption != 70345 {
		t.Errorf("Expected consumption 70345, got %v", records[0].Consumption)
	}
	if records[1].Consumption != nil {
		t.Errorf("Expected missing consumption, got %v", *records[1].Consumption)
	}
	if records[2].ForecastJMinus1 != nil || *records[2].Consumption != 65000 {
		t.Errorf("Unexpected fields in time cell record: %+v", records[2])
	}

	if wb.DiagnosticCount() != 1 {
		t.Errorf("Expected 1 diagnostic, got %d", wb.DiagnosticCount())
	}
	warned := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["sheet"] == "Notes" {
			warned = true
		}
	}
	if !warned {
		t.Error("Expected a warning for the malformed day header")
	}
}

func TestExtractFileOptions(t *testing.T) {
	path := writeWorkbook(t)

	opts := DefaultOptions()
	opts.Sheets = []string{"Sheet1"}
	opts.Range = "A5:D6"
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	opts.Location = paris

	wb, err := ExtractFile(path, opts)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if len(wb.Sheets) != 1 {
		t.Fatalf("Expected one sheet, got %d", len(wb.Sheets))
	}
	records := wb.Sheets["Sheet1"].Records
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if got := records[0].Timestamp.UTC(); !got.Equal(time.Date(2023, 1, 2, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected 11:00 UTC, got %v", got)
	}
	if records[0].Row != 5 {
		t.Errorf("Expected row 5, got %d", records[0].Row)
	}
}

func TestExtractFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t)

	legacy := filepath.Join(dir, "legacy.xls")
	ole := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, bytes.Repeat([]byte{0}, 504)...)
	if err := os.WriteFile(legacy, ole, 0o644); err != nil {
		t.Fatal(err)
	}
	other := filepath.Join(dir, "data.json")
	if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	corrupt := filepath.Join(dir, "corrupt.xlsx")
	if err := os.WriteFile(corrupt, []byte("Journée du 01/01/2023\t\t\t\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bookDir := filepath.Join(dir, "folder.xlsx")
	exportDir := filepath.Join(dir, "folder.tsv")
	for _, d := range []string{bookDir, exportDir} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		path string
		opts func(*Options)
		want error
	}{
		{"missing file", filepath.Join(dir, "nope.xlsx"), nil, ErrFileNotFound},
		{"missing sheet", path, func(o *Options) { o.Sheets = []string{"Feuil9"} }, ErrSheetNotFound},
		{"legacy xls", legacy, nil, ErrLegacyXLS},
		{"unsupported extension", other, nil, ErrInvalidFormat},
		{"negative column", path, func(o *Options) { o.Column = -1 }, ErrInvalidOptions},
		{"bad range", path, func(o *Options) { o.Range = "A1" }, ErrInvalidOptions},
		{"bad policy", path, func(o *Options) { o.BlankPolicy = "sometimes" }, ErrInvalidOptions},
		{"corrupt workbook", corrupt, nil, ErrInvalidInput},
		{"corrupt workbook with sheet", corrupt, func(o *Options) { o.Sheets = []string{"Sheet1"} }, ErrInvalidInput},
		{"unreadable workbook", bookDir, func(o *Options) { o.Sheets = []string{"Sheet1"} }, ErrInvalidInput},
		{"unreadable export", exportDir, nil, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			_, err := ExtractFile(tt.path, opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestExtractFileSheetNameCase(t *testing.T) {
	path := writeWorkbook(t)

	opts := DefaultOptions()
	opts.Sheets = []string{"sheet1"}
	wb, err := ExtractFile(path, opts)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if len(wb.SheetOrder) != 1 || wb.SheetOrder[0] != "Sheet1" {
		t.Fatalf("Expected only Sheet1, got %v", wb.SheetOrder)
	}
	if n := len(wb.Sheets["Sheet1"].Records); n != 3 {
		t.Errorf("Expected 3 records, got %d", n)
	}
}

func TestExtractFileTextExport(t *testing.T) {
	dir := t.TempDir()
	export := "Journ\xe9e du 01/01/2023\t\t\t\n" +
		"Heures\tPr\xe9visionJ-1\tPr\xe9visionJ\tConsommation\n" +
		"\n" +
		"\n" +
		"23:45\t1\t2\t3\n"

	path := filepath.Join(dir, "eCO2mix_RTE_En-cours-TR.xls")
	if err := os.WriteFile(path, []byte(export), 0o644); err != nil {
		t.Fatal(err)
	}

	wb, err := ExtractFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	series, ok := wb.Sheets["eCO2mix_RTE_En-cours-TR"]
	if !ok {
		t.Fatalf("Expected sheet named after the file, got %v", wb.SheetOrder)
	}
	if len(series.Records) != 1 || series.Records[0].Row != 4 {
		t.Fatalf("Expected one record at row 4, got %+v", series.Records)
	}

	// Two blank rows drop the day under reset-double.
	opts := DefaultOptions()
	opts.BlankPolicy = parser.BlankResetOnDouble
	wb, err = ExtractFile(path, opts)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if n := len(wb.Records()); n != 0 {
		t.Errorf("Expected no records under reset-double, got %d", n)
	}
}

func TestExtractRowsAutoColumn(t *testing.T) {
	path := writeWorkbook(t)
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := f.InsertCols("Sheet1", "A", 2); err != nil {
		t.Fatal(err)
	}
	rows, err := parser.ReadSheetRows(f, "Sheet1", nil)
	if err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	if got := ExtractRows(rows, opts); len(got.Records) != 0 {
		t.Errorf("Expected no records from column 0, got %d", len(got.Records))
	}
	opts.AutoColumn = true
	if got := ExtractRows(rows, opts); len(got.Records) != 3 {
		t.Errorf("Expected 3 records with auto column, got %d", len(got.Records))
	}
}
