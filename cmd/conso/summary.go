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
	summaryOutput string
	summaryFormat string
	summaryPretty bool
	summaryStep   time.Duration
)

// summaryReport is the JSON document written by the summary command.
type summaryReport struct {
	Sources []string              `json:"sources"`
	Step    string                `json:"step,omitempty"`
	Days    []models.DailySummary `json:"days"`
	Gaps    []models.Gap          `json:"gaps,omitempty"`
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [input...]",
		Short: "Summarise consumption and forecast errors per day",
		RunE:  runSummary,
	}

	cmd.Flags().StringVarP(&summaryOutput, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&summaryFormat, "format", "json", "Output format: json or csv")
	cmd.Flags().BoolVar(&summaryPretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().DurationVar(&summaryStep, "step", 0, "Expected interval between records for gap detection (default: inferred)")
	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	if summaryFormat != "json" && summaryFormat != "csv" {
		return fmt.Errorf("invalid format: %s (must be json or csv)", summaryFormat)
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

	coll, err := collect(paths, opts, logger)
	if err != nil {
		return err
	}
	records := series.Dedup(coll.Records)

	step := summaryStep
	if step <= 0 {
		step = series.InferStep(records)
	}
	report := summaryReport{
		Sources: coll.Sources,
		Days:    series.Daily(records, series.NewFrenchCalendar()),
		Gaps:    series.Gaps(records, step),
	}
	if step > 0 {
		report.Step = step.String()
	}
	for _, g := range report.Gaps {
		logger.WithField("from", g.From).WithField("to", g.To).Warnf("%d missing records", g.Missing)
	}

	var data []byte
	switch summaryFormat {
	case "csv":
		var buf bytes.Buffer
		if err := output.WriteDailyCSV(&buf, report.Days, ';'); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		data = bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	default:
		data, err = output.ToJSON(report, summaryPretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	}

	return writeOutput(summaryOutput, data)
}
