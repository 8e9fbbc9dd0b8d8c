package report

import "olistcli/internal/config"

// chartSheetTitles maps chart keys to their deck sheet names. Excel sheet
// names are capped at 31 characters, so these stay short.
var chartSheetTitles = map[string]string{
	config.ChartRevenueTrend:    "Revenue Trend",
	config.ChartRevenueGrowth:   "Revenue Growth %",
	config.ChartOrdersTrend:     "Monthly Orders",
	config.ChartAOVTrend:        "Average Order Value",
	config.ChartPaymentMix:      "Payment Mix",
	config.ChartTopCategories:   "Top Categories",
	config.ChartCohortHeatmap:   "Cohort Retention",
	config.ChartDeliveryReviews: "Delivery vs Reviews",
	config.ChartStateRevenue:    "Revenue by State",
}

// chartOrder fixes the sheet sequence in the deck.
var chartOrder = []string{
	config.ChartRevenueTrend,
	config.ChartRevenueGrowth,
	config.ChartOrdersTrend,
	config.ChartAOVTrend,
	config.ChartPaymentMix,
	config.ChartTopCategories,
	config.ChartCohortHeatmap,
	config.ChartDeliveryReviews,
	config.ChartStateRevenue,
}

var executiveFraming = []string{
	"Olist seeks sustainable revenue growth while improving customer lifetime value and operational excellence.",
	"This deck covers descriptive KPIs, cohort retention, category and regional concentration, and the delivery/satisfaction link.",
}

var approachLines = []string{
	"1) Data ingestion & validation of the marketplace extracts",
	"2) Descriptive analytics: revenue KPIs, payment mix, category ranking",
	"3) Diagnostic analysis: cohort retention, delivery delay vs review score",
	"4) Strategic recommendations & implementation roadmap",
}

var recommendations = []string{
	"Customer: launch a tiered loyalty program, personalized re-marketing, and an onboarding sequence for first-time buyers.",
	"Category: incentivize seller acquisition in long-tail categories; curated bundles and category-specific promotions.",
	"Logistics: regional last-mile pilots, SLA-based carrier selection, proactive delivery tracking and communication.",
	"Payments: integrate Pix, wallets and BNPL to raise conversion and remove single-channel dependency.",
	"Operations: tighten cancellation and refund workflows; cut failed deliveries with address validation and pickup points.",
}

var roadmapPhases = []string{
	"Phase 1 (0-3 months): retention campaigns, payment integration pilots, delivery KPI dashboard.",
	"Phase 2 (3-6 months): seller onboarding in priority categories, logistics partner pilots, BNPL pilot.",
	"Phase 3 (6-12 months): scale category diversification, platform-level loyalty, automated dispute resolution.",
}

var projectedImpact = []string{
	"Repeat purchase rate +15-20% with targeted retention and loyalty.",
	"Revenue +10-12% from category diversification and AOV initiatives.",
	"Negative reviews -30% via delivery SLA improvements.",
	"Conversion +3-5% from payment diversification.",
}
