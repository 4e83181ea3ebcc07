// Command parse runs the full pipeline over a CSV file: classify every
// column, pick the best phone and company columns, parse them, and write the
// augmented table to output.csv next to the input.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/colsense/colsense/internal/core"
	"github.com/colsense/colsense/internal/logging"
	"github.com/colsense/colsense/internal/refdata"
	"github.com/colsense/colsense/internal/semantic"
)

func main() {
	input := flag.String("input", "", "path to the CSV file (required)")
	threshold := flag.Float64("threshold", semantic.DefaultThreshold, "acceptance threshold")
	sampleSize := flag.Int("sample", semantic.DefaultSampleSize, "values sampled per column")
	flag.Parse()

	logging.SetupWithWriter(os.Stderr, "warn", "text")

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: parse -input file.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}

	service := core.NewService(refdata.MustLoad(), core.Config{
		Threshold:  *threshold,
		SampleSize: *sampleSize,
		DataDir:    filepath.Dir(*input),
	}, nil)

	summary, err := service.ParseFile(context.Background(), filepath.Base(*input))
	if err != nil {
		slog.Error("parse failed", "file", *input, "error", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (%d rows)\n", summary.OutputFile, summary.Rows)
	if summary.Phone.Found {
		fmt.Printf("phone column:   %s (%.2f)\n", summary.Phone.Column, summary.Phone.Confidence)
	} else {
		fmt.Println("phone column:   none found")
	}
	if summary.Company.Found {
		fmt.Printf("company column: %s (%.2f)\n", summary.Company.Column, summary.Company.Confidence)
	} else {
		fmt.Println("company column: none found")
	}
}
