package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/models"
	"github.com/Zverobaza/ProjetDataScience/pkg/conso/output"
	"github.com/Zverobaza/ProjetDataScience/pkg/conso/series"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	format     string
	pretty     bool
	merge      bool
	dedup      bool
	ffill      bool
	from       string
	to         string
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [input...]",
		Short: "Extract timestamped records and write them as JSON or CSV",
		RunE:  runExtract,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or csv")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&merge, "merge", false, "Sort the records of all inputs by timestamp")
	cmd.Flags().BoolVar(&dedup, "dedup", false, "Sort and keep the last record of each timestamp")
	cmd.Flags().BoolVar(&ffill, "ffill", false, "Fill missing values with the previous value")
	cmd.Flags().StringVar(&from, "from", "", "Keep records from this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Keep records up to this date, inclusive (YYYY-MM-DD)")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	if format != "json" && format != "csv" {
		return fmt.Errorf("invalid format: %s (must be json or csv)", format)
	}

	logger, err := newLogger(logLevel, logFormat)
	if err != nil {
		return err
	}
	opts, err := buildOptions(logger)
	if err != nil {
		return err
	}
	paths, err := inputPaths(args)
	if err != nil {
		return err
	}

	fromT, err := parseBound(from, opts.Location, false)
	if err != nil {
		return err
	}
	toT, err := parseBound(to, opts.Location, true)
	if err != nil {
		return err
	}

	coll, err := collect(paths, opts, logger)
	if err != nil {
		return err
	}
	coll.Records = transform(coll.Records, fromT, toT)

	var data []byte
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := output.WriteCSV(&buf, coll.Records, ';'); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		data = bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	default:
		data, err = output.ToJSON(coll, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	}

	return writeOutput(outputPath, data)
}

// transform applies the ordering, range and fill flags, in that order.
func transform(records []models.Record, fromT, toT time.Time) []models.Record {
	switch {
	case dedup:
		records = series.Dedup(records)
	case merge:
		records = series.Merge(records)
	}
	if !fromT.IsZero() || !toT.IsZero() {
		records = series.Between(records, fromT, toT)
	}
	if ffill {
		records = series.ForwardFill(records)
	}
	return records
}
