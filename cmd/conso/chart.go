package main

import (
	"fmt"
	"os"

	"github.com/Zverobaza/ProjetDataScience/pkg/conso/output"
	"github.com/Zverobaza/ProjetDataScience/pkg/conso/series"
	"github.com/spf13/cobra"
)

var (
	chartOutput string
	chartTitle  string
	chartFrom   string
	chartTo     string
)

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart [input...]",
		Short: "Render consumption and forecasts as an HTML line chart",
		RunE:  runChart,
	}

	cmd.Flags().StringVarP(&chartOutput, "output", "o", "conso.html", "Output HTML file")
	cmd.Flags().StringVar(&chartTitle, "title", "Consommation électrique RTE", "Chart title")
	cmd.Flags().StringVar(&chartFrom, "from", "", "Plot records from this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&chartTo, "to", "", "Plot records up to this date, inclusive (YYYY-MM-DD)")
	return cmd
}

func runChart(cmd *cobra.Command, args []string) error {
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

	fromT, err := parseBound(chartFrom, opts.Location, false)
	if err != nil {
		return err
	}
	toT, err := parseBound(chartTo, opts.Location, true)
	if err != nil {
		return err
	}

	coll, err := collect(paths, opts, logger)
	if err != nil {
		return err
	}
	records := series.Between(series.Dedup(coll.Records), fromT, toT)
	days := series.Daily(records, nil)

	f, err := os.Create(chartOutput)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	if err := output.RenderPage(f, chartTitle,
		output.LineChart(chartTitle, records),
		output.DailyChart(chartTitle+" (journalier)", days),
	); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	logger.WithField("output", chartOutput).WithField("records", len(records)).Info("chart written")
	return nil
}
