// Command analyzer runs the full Olist analysis: loads the CSV extracts,
// validates them, computes the monthly and segment metrics, renders the
// charts, exports the KPI tables and assembles the deck workbook.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"olistcli/internal/config"
	"olistcli/internal/infrastructure"
	"olistcli/internal/pipeline"
)

func main() {
	dataDir := flag.String("data", "", "directory holding the Olist CSV extracts (overrides config)")
	outDir := flag.String("out", "", "output directory for charts, reports and the deck (overrides config)")
	skipDeck := flag.Bool("skip-deck", false, "compute metrics and charts but skip the deck workbook")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
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

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "starting analysis",
		"app", config.AppName,
		"version", config.AppVersion,
		"data_dir", cfg.Data.Dir,
		"output_dir", cfg.Output.Dir)

	paths := config.NewPaths(cfg)
	run := pipeline.New(paths, logger, pipeline.Options{SkipDeck: *skipDeck})

	summary, err := run.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "analysis failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "analysis complete",
		"months", summary.Months,
		"charts", len(summary.ChartsWritten),
		"reports", len(summary.ReportsWritten),
		"deck", summary.DeckPath,
		"issues", len(summary.Issues),
		"duration", summary.Duration)
}
