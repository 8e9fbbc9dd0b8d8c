package analytics

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"olistcli/internal/config"
)

// Level grades how urgently an insight needs attention.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWatch Level = "watch"
	LevelRisk  Level = "risk"
)

// Insight is one data-driven finding, attached to the chart it explains.
type Insight struct {
	Chart    string
	Headline string
	Body     string
	Level    Level
}

// BuildInsights derives the deck narrative from the computed results.
// Only insights whose inputs were computed are returned.
func BuildInsights(r *Results) []Insight {
	var insights []Insight

	if len(r.Monthly) > 1 {
		insights = append(insights, growthInsight(r.Monthly))
		insights = append(insights, ordersInsight(r.Monthly))
		insights = append(insights, aovInsight(r.Monthly))
	}
	if len(r.PaymentMix) > 0 {
		insights = append(insights, paymentInsight(r.PaymentMix))
	}
	if len(r.Categories) > 0 {
		insights = append(insights, categoryInsight(r.Categories))
	}
	if r.Cohorts != nil {
		insights = append(insights, retentionInsight(r.Cohorts))
	}
	if r.Delivery != nil {
		insights = append(insights, deliveryInsight(r.Delivery))
	}
	if len(r.States) > 0 {
		insights = append(insights, stateInsight(r.States))
	}

	return insights
}

// InsightFor returns the insight attached to a chart, if any.
func InsightFor(insights []Insight, chart string) (Insight, bool) {
	for _, insight := range insights {
		if insight.Chart == chart {
			return insight, true
		}
	}
	return Insight{}, false
}

func growthInsight(monthly []MonthlyKPI) Insight {
	growth := make([]float64, 0, len(monthly)-1)
	for _, kpi := range monthly[1:] {
		growth = append(growth, kpi.GrowthPct)
	}
	volatility := stat.StdDev(growth, nil)

	level := LevelInfo
	switch {
	case volatility > 25:
		level = LevelRisk
	case volatility > 10:
		level = LevelWatch
	}

	return Insight{
		Chart:    config.ChartRevenueGrowth,
		Headline: "Month-over-month growth is volatile",
		Level:    level,
		Body: fmt.Sprintf(
			"MoM revenue growth swings with a standard deviation of %.1f pts across %d months. "+
				"Retention programs and off-peak promotions would smooth the curve.",
			volatility, len(growth)),
	}
}

func ordersInsight(monthly []MonthlyKPI) Insight {
	revenues := make([]float64, len(monthly))
	orders := make([]float64, len(monthly))
	for i, kpi := range monthly {
		revenues[i] = kpi.Revenue.InexactFloat64()
		orders[i] = float64(kpi.Orders)
	}
	corr := stat.Correlation(revenues, orders, nil)

	return Insight{
		Chart:    config.ChartRevenueTrend,
		Headline: "Revenue tracks order volume",
		Level:    LevelInfo,
		Body: fmt.Sprintf(
			"Monthly revenue and order counts move together (correlation %.2f): growth so far is "+
				"volume-driven. Basket-size levers (bundles, cross-sell) add revenue without extra acquisition spend.",
			corr),
	}
}

func aovInsight(monthly []MonthlyKPI) Insight {
	first := monthly[0].AOV.InexactFloat64()
	last := monthly[len(monthly)-1].AOV.InexactFloat64()
	changePct := 0.0
	if first > 0 {
		changePct = (last - first) / first * 100
	}

	return Insight{
		Chart:    config.ChartAOVTrend,
		Headline: "Average order value is broadly stable",
		Level:    LevelInfo,
		Body: fmt.Sprintf(
			"AOV moved %.1f%% between the first and last month (%.2f to %.2f BRL). "+
				"Stable baskets mean upsell initiatives, not pricing, are the AOV lever.",
			changePct, first, last),
	}
}

func paymentInsight(mix []TypeShare) Insight {
	top := mix[0]

	level := LevelInfo
	switch {
	case top.Pct > 60:
		level = LevelRisk
	case top.Pct > 40:
		level = LevelWatch
	}

	return Insight{
		Chart:    config.ChartPaymentMix,
		Headline: fmt.Sprintf("%.0f%% of payments run through %s", top.Pct, top.Type),
		Level:    level,
		Body: fmt.Sprintf(
			"The payment mix leans on %s (%.1f%% of %d payment rows). Adding Pix, wallets and "+
				"installment alternatives broadens reach and removes a single-channel dependency.",
			top.Type, top.Pct, totalPayments(mix)),
	}
}

func categoryInsight(categories []CategoryShare) Insight {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.Revenue)
	}
	topTen := decimal.Zero
	for _, c := range TopCategories(categories, 10) {
		topTen = topTen.Add(c.Revenue)
	}

	sharePct := 0.0
	if total.IsPositive() {
		sharePct = topTen.Div(total).InexactFloat64() * 100
	}

	level := LevelInfo
	switch {
	case sharePct > 75:
		level = LevelRisk
	case sharePct > 50:
		level = LevelWatch
	}

	return Insight{
		Chart:    config.ChartTopCategories,
		Headline: fmt.Sprintf("Top 10 of %d categories hold %.0f%% of revenue", len(categories), sharePct),
		Level:    level,
		Body: fmt.Sprintf(
			"Revenue is concentrated: the ten largest categories carry %.1f%% of the total. "+
				"Onboarding sellers in long-tail categories reduces concentration risk.",
			sharePct),
	}
}

func retentionInsight(cohorts *CohortMatrix) Insight {
	var monthOne []float64
	for _, row := range cohorts.Retention {
		if len(row) > 1 {
			monthOne = append(monthOne, row[1])
		}
	}
	mean := 0.0
	if len(monthOne) > 0 {
		mean = stat.Mean(monthOne, nil)
	}

	level := LevelWatch
	if mean < 10 {
		level = LevelRisk
	} else if mean >= 25 {
		level = LevelInfo
	}

	return Insight{
		Chart:    config.ChartCohortHeatmap,
		Headline: fmt.Sprintf("Only %.1f%% of customers return in month one", mean),
		Level:    level,
		Body: fmt.Sprintf(
			"Across %d cohorts, on average %.1f%% of a cohort purchases again one month after "+
				"first purchase. Acquisition is carrying growth; onboarding and next-purchase "+
				"incentives are the retention levers.",
			len(cohorts.Months), mean),
	}
}

// deliveryInsight compares the delay medians of the lowest and highest
// populated score buckets. Empty buckets are skipped so their zero values
// never read as a measured delay.
func deliveryInsight(delivery *DelayByScore) Insight {
	var worst, best *DelayStats
	for i := range delivery.Scores {
		s := &delivery.Scores[i]
		if s.N == 0 {
			continue
		}
		if worst == nil {
			worst = s
		}
		best = s
	}

	if worst == nil || worst == best {
		return Insight{
			Chart:    config.ChartDeliveryReviews,
			Headline: "Too few rated deliveries to compare scores",
			Level:    LevelInfo,
			Body: "Reviews joined to delivered orders cover at most one score bucket, so the " +
				"delay gap between unhappy and happy customers cannot be measured yet.",
		}
	}

	gap := worst.Median - best.Median
	level := LevelInfo
	switch {
	case gap > 5:
		level = LevelRisk
	case gap > 2:
		level = LevelWatch
	}

	correlation := ""
	if !math.IsNaN(delivery.Correlation) {
		correlation = fmt.Sprintf(" (score/delay correlation %.2f)", delivery.Correlation)
	}

	return Insight{
		Chart:    config.ChartDeliveryReviews,
		Headline: "Late deliveries sit behind low ratings",
		Level:    level,
		Body: fmt.Sprintf(
			"Median delivery delay for %d-star orders is %.0f days versus %.0f days for %d-star "+
				"orders%s. Last-mile SLAs and proactive tracking are the fastest route to fewer "+
				"negative reviews.",
			worst.Score, worst.Median, best.Median, best.Score, correlation),
	}
}

func stateInsight(states []StateShare) Insight {
	total := decimal.Zero
	for _, s := range states {
		total = total.Add(s.Revenue)
	}
	topPct := 0.0
	if total.IsPositive() {
		topPct = states[0].Revenue.Div(total).InexactFloat64() * 100
	}

	return Insight{
		Chart:    config.ChartStateRevenue,
		Headline: fmt.Sprintf("%s alone generates %.0f%% of revenue", states[0].State, topPct),
		Level:    LevelInfo,
		Body: fmt.Sprintf(
			"Revenue concentrates regionally: %s leads with %.1f%% of the mapped total across %d "+
				"states. Regional logistics and marketing investment should follow that demand map.",
			states[0].State, topPct, len(states)),
	}
}

func totalPayments(mix []TypeShare) int {
	total := 0
	for _, share := range mix {
		total += share.Count
	}
	return total
}
