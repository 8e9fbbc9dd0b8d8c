// Command datacheck loads the Olist extracts and reports data quality
// issues without producing any analysis output. Exits with status 1 when
// any error-severity issue is found.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"olistcli/internal/config"
	"olistcli/internal/dataset"
	"olistcli/internal/infrastructure"
)

func main() {
	dataDir := flag.String("data", "", "directory holding the Olist CSV extracts (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())
	collection, err := dataset.Load(ctx, cfg.Data.Dir)
	if err != nil {
		logger.ErrorContext(ctx, "load failed", "error", err)
		os.Exit(1)
	}

	printLoadStats(collection.Stats)

	issues := collection.Validate()
	if len(issues) == 0 {
		fmt.Println("No data quality issues found.")
		return
	}

	printIssues(issues)
	if dataset.HasErrors(issues) {
		os.Exit(1)
	}
}

func printLoadStats(stats dataset.LoadStats) {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATASET\tROWS\tDROPPED")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%d\t%d\n", name, stats[name].Rows, stats[name].Dropped)
	}
	w.Flush()
	fmt.Println()
}

func printIssues(issues []dataset.Issue) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEVERITY\tDATASET\tISSUE\tROWS")
	for _, issue := range issues {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", issue.Severity, issue.Dataset, issue.Message, issue.Count)
	}
	w.Flush()
}
