// Package analytics computes the descriptive business metrics behind the
// consulting deck: the order/payment fact table, monthly revenue KPIs,
// payment mix, category concentration, cohort retention, delivery delay
// versus review score, and revenue by customer state.
//
// Every function is pure: it takes loaded dataset slices and returns
// value types. Monetary sums use decimal arithmetic; values convert to
// float64 only at the chart and statistics boundary.
package analytics
