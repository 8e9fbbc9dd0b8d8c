// Command reportviewer serves the generated charts and reports over HTTP
// for local inspection. It runs until interrupted.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"olistcli/internal/config"
	"olistcli/internal/infrastructure"
	"olistcli/internal/server"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides config)")
	outDir := flag.String("out", "", "output directory to serve (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(infrastructure.ContextWithRunID(context.Background()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths := config.NewPaths(cfg)
	srv := server.New(cfg.Server, paths, logger)

	if err := srv.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "preview server failed", "error", err)
		os.Exit(1)
	}
}
