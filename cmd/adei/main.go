package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	switch os.Args[1] {
	case "ingest":
		cmdIngest(os.Args[2:], logger)
	case "load":
		cmdLoad(os.Args[2:], logger)
	case "serve":
		cmdServe(os.Args[2:], logger)
	case "report":
		cmdReport(os.Args[2:], logger)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: adei <command>

Commands:
  ingest   Ingest a source document into the interchange JSON
  load     Load an interchange JSON into the SQLite store
  serve    Start the HTTP API server (or MCP over stdio with --mcp)
  report   Print console reports from the store
`)
}
