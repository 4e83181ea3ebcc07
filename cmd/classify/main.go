// Command classify labels columns of a CSV file from the command line.
//
// With -column it prints the label and confidence for that column; without
// it, one line per column.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/colsense/colsense/internal/core"
	"github.com/colsense/colsense/internal/logging"
	"github.com/colsense/colsense/internal/parser"
	"github.com/colsense/colsense/internal/refdata"
	"github.com/colsense/colsense/internal/semantic"
)

func main() {
	input := flag.String("input", "", "path to the CSV file (required)")
	column := flag.String("column", "", "column to classify; all columns when empty")
	threshold := flag.Float64("threshold", semantic.DefaultThreshold, "acceptance threshold")
	sampleSize := flag.Int("sample", semantic.DefaultSampleSize, "values sampled per column")
	verbose := flag.Bool("v", false, "print per-detector scores")
	flag.Parse()

	logging.SetupWithWriter(os.Stderr, "warn", "text")

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: classify -input file.csv [-column name]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// The service resolves names inside its data directory, so point it at
	// the input's directory.
	service := core.NewService(refdata.MustLoad(), core.Config{
		Threshold:  *threshold,
		SampleSize: *sampleSize,
		DataDir:    filepath.Dir(*input),
	}, nil)

	table, err := service.LoadTable(filepath.Base(*input))
	if err != nil {
		slog.Error("failed to load file", "file", *input, "error", err)
		os.Exit(1)
	}

	if *column != "" {
		res, err := service.ClassifyColumn(table, *column)
		if err != nil {
			slog.Error("classification failed", "column", *column, "error", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %s (%.2f)\n", *column, res.Label, res.Confidence)
		if *verbose {
			printScores(service, table, *column)
		}
		return
	}

	for _, cr := range service.ClassifyTable(table) {
		fmt.Printf("%s: %s (%.2f)\n", cr.Column, cr.Result.Label, cr.Result.Confidence)
		if *verbose {
			printScores(service, table, cr.Column)
		}
	}
}

func printScores(service *core.Service, table *parser.Table, column string) {
	values, ok := table.Column(column)
	if !ok {
		return
	}
	for _, ts := range service.Scores(values) {
		fmt.Printf("    %-12s %.3f\n", ts.Label, ts.Score)
	}
}
