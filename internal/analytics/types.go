package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// FactRow is one order enriched with its total payment value. The fact
// table only contains orders with a parseable purchase timestamp.
type FactRow struct {
	OrderID    string
	CustomerID string
	Status     string
	Month      time.Time
	Revenue    decimal.Decimal
}

// MonthlyKPI aggregates one purchase month.
type MonthlyKPI struct {
	Month     time.Time
	Revenue   decimal.Decimal
	Orders    int
	AOV       decimal.Decimal
	GrowthPct float64
}

// TypeShare is one payment type's share of all payment rows.
type TypeShare struct {
	Type  string
	Count int
	Pct   float64
}

// CategoryShare is one product category's attributed revenue.
type CategoryShare struct {
	Category string
	Revenue  decimal.Decimal
}

// StateShare is one customer state's revenue.
type StateShare struct {
	State   string
	Revenue decimal.Decimal
}

// CohortMatrix is the customer retention matrix: one row per cohort month
// (month of a customer's first purchase), one column per month index since
// that first purchase, values in percent of the cohort still active.
type CohortMatrix struct {
	Months    []time.Time
	Sizes     []int
	Retention [][]float64 // [cohort][index], index 0 is always 100
}

// MaxIndex returns the widest month index present in the matrix.
func (m *CohortMatrix) MaxIndex() int {
	max := 0
	for _, row := range m.Retention {
		if len(row)-1 > max {
			max = len(row) - 1
		}
	}
	return max
}

// DelayStats summarizes delivery delay (days past the estimate, negative
// when early) for one review score.
type DelayStats struct {
	Score   int
	N       int
	Median  float64
	P25     float64
	P75     float64
	Samples []float64
}

// DelayByScore holds the delay distributions for scores 1..5 plus the
// score/delay correlation across all joined rows.
type DelayByScore struct {
	Scores      [5]DelayStats
	Correlation float64
}

// Results bundles everything the chart, export and deck stages consume.
// Slices for skipped analyses stay nil.
type Results struct {
	Fact       []FactRow
	Monthly    []MonthlyKPI
	PaymentMix []TypeShare
	Categories []CategoryShare
	Cohorts    *CohortMatrix
	Delivery   *DelayByScore
	States     []StateShare
}
