// Package main provides the CLI entry point for conso.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	logLevel    string
	logFormat   string
	sheets      []string
	cellRange   string
	printArea   bool
	column      int
	autoColumn  bool
	blankPolicy string
	timezone    string
	delimiter   string
	encoding    string

	// configInputs are the input files listed in the config file.
	configInputs []string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "conso",
		Short: "Extract electricity consumption series from RTE spreadsheets",
		Long: `conso rebuilds timestamped consumption series (day-ahead forecast,
same-day forecast, actual consumption) from RTE eco2mix workbooks made of
"Journée du DD/MM/YYYY" blocks followed by "HH:MM" rows.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configInputs = nil
			if configPath == "" {
				return nil
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			configInputs = cfg.Inputs
			return cfg.apply(cmd.Flags())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML file providing defaults for flags")
	pf.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	pf.StringArrayVar(&sheets, "sheet", nil, "Sheet to extract (repeatable, default: all sheets)")
	pf.StringVar(&cellRange, "range", "", "Cell range to scan, e.g. A3:D20000 or B:E")
	pf.BoolVar(&printArea, "print-area", false, "Scan only the sheet print area when --range is not set")
	pf.IntVar(&column, "column", 0, "0-based column holding day headers and times")
	pf.BoolVar(&autoColumn, "auto-column", false, "Detect the column holding day headers and times")
	pf.StringVar(&blankPolicy, "blank-policy", "ignore", "Blank rows: ignore, reset-double or reset-single")
	pf.StringVar(&timezone, "tz", "UTC", "Time zone of the timestamps, e.g. Europe/Paris")
	pf.StringVar(&delimiter, "delimiter", "", "Field delimiter of text exports (default: tab, ';' for .csv)")
	pf.StringVar(&encoding, "encoding", "auto", "Encoding of text exports: auto, utf-8, windows-1252, iso-8859-1")

	rootCmd.AddCommand(newExtractCmd(), newSummaryCmd(), newChartCmd())
	return rootCmd
}
