package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hazyhaar/adei/pkg/importer"
	"github.com/hazyhaar/adei/pkg/store"
)

func cmdLoad(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	input := fs.String("input", filepath.Join("data", importer.DataFile), "interchange JSON to load")
	dbPath := fs.String("db", "adei.db", "SQLite store path")
	fs.Parse(args)

	countries, err := importer.ReadDocument(*input)
	if err != nil {
		logger.Error("read interchange document", "path", *input, "error", err)
		os.Exit(1)
	}

	if err := store.Rebuild(*dbPath, countries); err != nil {
		logger.Error("rebuild store", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	logger.Info("store rebuilt", "path", *dbPath, "countries", len(countries))
}
