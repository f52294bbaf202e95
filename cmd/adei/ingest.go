package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hazyhaar/adei/pkg/importer"
)

func cmdIngest(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	format := fs.String("format", "", "adapter ID (e.g. adei-workbook)")
	source := fs.String("source", "", "source document: local path or http(s) URL")
	outputDir := fs.String("output-dir", "data", "output directory for the interchange JSON")
	encoding := fs.String("encoding", "", "source text encoding for CSV (e.g. windows-1252)")
	fs.Parse(args)

	if *format == "" || *source == "" {
		fmt.Println("Available formats:")
		fmt.Println()
		for _, a := range importer.All() {
			fmt.Printf("  %-15s  %s\n", a.ID(), a.Description())
		}
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  adei ingest --format <id> --source <path|url> [--output-dir <dir>]")
		return
	}

	a, err := importer.Get(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *encoding != "" && *format == "adei-csv" {
		a = importer.NewCSVAdapter(*encoding)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	n, err := importer.Run(ctx, a, *source, *outputDir)
	if err != nil {
		logger.Error("ingest failed", "format", *format, "source", *source, "error", err)
		os.Exit(1)
	}
	logger.Info("ingest complete", "format", *format, "countries", n, "output", *outputDir)
}
