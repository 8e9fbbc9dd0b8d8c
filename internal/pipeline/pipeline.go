// Package pipeline runs the end-to-end analysis: load the extracts,
// validate them, compute the metrics, render charts, export KPI tables
// and assemble the deck.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"olistcli/internal/analytics"
	"olistcli/internal/charts"
	"olistcli/internal/config"
	"olistcli/internal/dataset"
	"olistcli/internal/exporter"
	"olistcli/internal/report"
)

// Options tune a pipeline run.
type Options struct {
	SkipDeck bool
}

// Summary reports what a run produced.
type Summary struct {
	Issues         []dataset.Issue
	ChartsWritten  []string
	ReportsWritten []string
	DeckPath       string
	Months         int
	Duration       time.Duration
}

// Pipeline wires the stages together over a resolved path set.
type Pipeline struct {
	paths  *config.Paths
	logger *slog.Logger
	opts   Options
}

// New creates a pipeline. A nil logger falls back to slog's default.
func New(paths *config.Paths, logger *slog.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{paths: paths, logger: logger, opts: opts}
}

// Run executes the full pipeline. Individual analyses are skipped when
// their datasets are missing; chart failures are logged and skipped. A
// run only fails outright when the orders extract cannot be loaded or
// nothing at all can be produced.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	if err := p.paths.EnsureOutputDirs(); err != nil {
		return nil, err
	}

	collection, err := dataset.Load(ctx, p.paths.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	summary.Issues = collection.Validate()
	for _, issue := range summary.Issues {
		level := slog.LevelWarn
		if issue.Severity == dataset.SeverityError {
			level = slog.LevelError
		}
		p.logger.Log(ctx, level, "data quality issue",
			"dataset", issue.Dataset,
			"issue", issue.Message,
			"rows", issue.Count)
	}

	results := p.computeResults(ctx, collection)
	summary.Months = len(results.Monthly)
	if summary.Months == 0 {
		return nil, fmt.Errorf("no orders with usable purchase timestamps")
	}

	deckCharts := p.renderCharts(ctx, results)
	for _, chart := range deckCharts {
		summary.ChartsWritten = append(summary.ChartsWritten, chart.Path)
	}

	summary.ReportsWritten = p.exportTables(ctx, results)

	if !p.opts.SkipDeck {
		insights := analytics.BuildInsights(results)
		if err := report.BuildDeck(p.paths.DeckFile, deckCharts, insights, results.Monthly); err != nil {
			return nil, fmt.Errorf("build deck: %w", err)
		}
		summary.DeckPath = p.paths.DeckFile
	}

	summary.Duration = time.Since(start)
	p.logger.InfoContext(ctx, "pipeline finished",
		"months", summary.Months,
		"charts", len(summary.ChartsWritten),
		"reports", len(summary.ReportsWritten),
		"deck", summary.DeckPath,
		"duration", summary.Duration)

	return summary, nil
}

func (p *Pipeline) computeResults(ctx context.Context, c *dataset.Collection) *analytics.Results {
	results := &analytics.Results{}

	results.Fact = analytics.BuildFact(c.Orders, c.Payments)
	results.Monthly = analytics.MonthlySeries(results.Fact)

	if c.HasPayments() {
		results.PaymentMix = analytics.PaymentMix(c.Payments)
	} else {
		p.logger.WarnContext(ctx, "payments missing, skipping payment mix")
	}

	if c.HasItems() {
		results.Categories = analytics.CategoryRevenue(c.Items, c.Products, results.Fact)
	} else {
		p.logger.WarnContext(ctx, "items or products missing, skipping category analysis")
	}

	if c.HasCustomers() {
		results.Cohorts = analytics.CohortRetention(results.Fact, c.Customers)
		results.States = analytics.StateRevenue(results.Fact, c.Customers, c.Geolocation)
	} else {
		p.logger.WarnContext(ctx, "customers missing, skipping cohort and state analyses")
	}

	if c.HasReviews() {
		results.Delivery = analytics.DeliveryDelayByScore(c.Orders, c.Reviews)
	} else {
		p.logger.WarnContext(ctx, "reviews missing, skipping delivery analysis")
	}

	return results
}

// renderCharts draws every chart whose inputs exist. A failed render is
// logged and dropped so one bad chart never sinks the deck.
func (p *Pipeline) renderCharts(ctx context.Context, results *analytics.Results) []report.Chart {
	renderer := charts.NewRenderer(p.paths.ChartsDir)
	var rendered []report.Chart

	add := func(key string, path string, err error) {
		if err != nil {
			p.logger.WarnContext(ctx, "chart skipped", "chart", key, "error", err)
			return
		}
		rendered = append(rendered, report.Chart{Key: key, Path: path})
	}

	if len(results.Monthly) > 0 {
		revenue := make([]charts.TimePoint, len(results.Monthly))
		growth := make([]charts.TimePoint, 0, len(results.Monthly))
		orders := make([]charts.TimePoint, len(results.Monthly))
		aov := make([]charts.TimePoint, len(results.Monthly))
		for i, kpi := range results.Monthly {
			revenue[i] = charts.TimePoint{T: kpi.Month, V: kpi.Revenue.InexactFloat64()}
			orders[i] = charts.TimePoint{T: kpi.Month, V: float64(kpi.Orders)}
			aov[i] = charts.TimePoint{T: kpi.Month, V: kpi.AOV.InexactFloat64()}
			if i > 0 {
				growth = append(growth, charts.TimePoint{T: kpi.Month, V: kpi.GrowthPct})
			}
		}

		path, err := renderer.TimeSeries(config.ChartRevenueTrend, "Monthly Revenue (BRL)", "Revenue (BRL)", revenue)
		add(config.ChartRevenueTrend, path, err)

		path, err = renderer.TimeSeries(config.ChartRevenueGrowth, "Monthly Revenue Growth (%)", "Growth %", growth)
		add(config.ChartRevenueGrowth, path, err)

		path, err = renderer.TimeSeries(config.ChartOrdersTrend, "Monthly Orders", "Unique orders", orders)
		add(config.ChartOrdersTrend, path, err)

		path, err = renderer.TimeSeries(config.ChartAOVTrend, "Average Order Value Over Time", "AOV (BRL)", aov)
		add(config.ChartAOVTrend, path, err)
	}

	if len(results.PaymentMix) > 0 {
		mix := results.PaymentMix
		if len(mix) > 8 {
			mix = mix[:8]
		}
		bars := make([]charts.Bar, len(mix))
		for i, share := range mix {
			bars[i] = charts.Bar{Label: share.Type, Value: share.Pct}
		}
		path, err := renderer.HBar(config.ChartPaymentMix, "Payment Method Distribution", "Share (%)", bars)
		add(config.ChartPaymentMix, path, err)
	}

	if len(results.Categories) > 0 {
		top := analytics.TopCategories(results.Categories, 10)
		bars := make([]charts.Bar, len(top))
		for i, share := range top {
			bars[i] = charts.Bar{Label: share.Category, Value: share.Revenue.InexactFloat64()}
		}
		path, err := renderer.HBar(config.ChartTopCategories, "Top 10 Categories by Revenue", "Revenue (BRL)", bars)
		add(config.ChartTopCategories, path, err)
	}

	if results.Cohorts != nil {
		path, err := renderer.RetentionHeatmap(config.ChartCohortHeatmap, "Customer Retention by Cohort (%)", results.Cohorts)
		add(config.ChartCohortHeatmap, path, err)
	}

	if results.Delivery != nil {
		path, err := renderer.DelayBoxes(config.ChartDeliveryReviews, "Delivery Delay (days) by Review Score", results.Delivery)
		add(config.ChartDeliveryReviews, path, err)
	}

	if len(results.States) > 0 {
		top := analytics.TopStates(results.States, 15)
		bars := make([]charts.Bar, len(top))
		for i, share := range top {
			bars[i] = charts.Bar{Label: share.State, Value: share.Revenue.InexactFloat64()}
		}
		path, err := renderer.HBar(config.ChartStateRevenue, "Top 15 States by Revenue", "Revenue (BRL)", bars)
		add(config.ChartStateRevenue, path, err)
	}

	return rendered
}

func (p *Pipeline) exportTables(ctx context.Context, results *analytics.Results) []string {
	writer := exporter.NewCSVWriter(p.paths.ReportsDir)
	var written []string

	record := func(path string, err error) {
		if err != nil {
			p.logger.WarnContext(ctx, "report export failed", "error", err)
			return
		}
		written = append(written, path)
	}

	record(writer.WriteMonthlyKPIs(results.Monthly))
	if len(results.PaymentMix) > 0 {
		record(writer.WritePaymentMix(results.PaymentMix))
	}
	if len(results.Categories) > 0 {
		record(writer.WriteCategoryRevenue(results.Categories))
	}
	if len(results.States) > 0 {
		record(writer.WriteStateRevenue(results.States))
	}
	if results.Cohorts != nil {
		record(writer.WriteCohortRetention(results.Cohorts))
	}

	return written
}
