package config

// Application constants shared by every olistcli binary.
const (
	AppName    = "olistcli"
	AppVersion = "1.2.0"

	DefaultConfigFile = "config.yaml"

	// MonthLayout formats month buckets in CSV exports and chart labels.
	MonthLayout = "2006-01"
)

// Dataset file names as shipped in the Olist archive.
const (
	OrdersFile      = "olist_orders_dataset.csv"
	CustomersFile   = "olist_customers_dataset.csv"
	ItemsFile       = "olist_order_items_dataset.csv"
	ProductsFile    = "olist_products_dataset.csv"
	PaymentsFile    = "olist_order_payments_dataset.csv"
	ReviewsFile     = "olist_order_reviews_dataset.csv"
	SellersFile     = "olist_sellers_dataset.csv"
	GeolocationFile = "olist_geolocation_dataset.csv"
)

// Chart base names. The charts package appends the .png extension.
const (
	ChartRevenueTrend    = "revenue_trend"
	ChartRevenueGrowth   = "revenue_growth_pct"
	ChartOrdersTrend     = "orders_trend"
	ChartAOVTrend        = "aov_trend"
	ChartPaymentMix      = "payment_distribution"
	ChartTopCategories   = "top10_categories_revenue"
	ChartCohortHeatmap   = "cohort_retention_heatmap"
	ChartDeliveryReviews = "delivery_delay_vs_reviews"
	ChartStateRevenue    = "revenue_by_state"
)
