package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/adei/pkg/analytics"
	"github.com/hazyhaar/adei/pkg/api"
	"github.com/hazyhaar/adei/pkg/regions"
	"github.com/hazyhaar/adei/pkg/store"
)

type config struct {
	Addr        string `yaml:"addr"`
	DBPath      string `yaml:"db_path"`
	RegionsFile string `yaml:"regions_file"`
}

func cmdServe(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	mcpMode := fs.Bool("mcp", false, "serve MCP over stdio instead of HTTP")
	fs.Parse(args)

	cfg := loadConfig(*cfgPath, logger)

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer s.Close()

	classifier := loadClassifier(cfg.RegionsFile, logger)
	a := analytics.New(s, classifier)

	if *mcpMode {
		// Stdio transport: the MCP client owns the process lifecycle.
		logger.Info("serving MCP over stdio", "db", cfg.DBPath)
		if err := server.ServeStdio(api.NewMCPServer(a)); err != nil {
			logger.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		return
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(a),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("adei listening", "addr", cfg.Addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:   ":8430",
		DBPath: "adei.db",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}

// loadClassifier reads a region table override, falling back to the embedded
// default when none is configured.
func loadClassifier(path string, logger *slog.Logger) *regions.Classifier {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read regions file", "path", path, "error", err)
		os.Exit(1)
	}
	c, err := regions.Parse(data)
	if err != nil {
		logger.Error("parse regions file", "path", path, "error", err)
		os.Exit(1)
	}
	return c
}
