package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"olistcli/internal/dataset"
)

// BuildFact joins orders with their summed payment values. Orders without
// payments keep zero revenue; orders without a purchase timestamp are
// excluded because they cannot be bucketed into a month.
func BuildFact(orders []dataset.Order, payments []dataset.Payment) []FactRow {
	paid := make(map[string]decimal.Decimal, len(payments))
	for _, p := range payments {
		paid[p.OrderID] = paid[p.OrderID].Add(p.Value)
	}

	fact := make([]FactRow, 0, len(orders))
	for _, o := range orders {
		if o.PurchasedAt.IsZero() {
			continue
		}
		fact = append(fact, FactRow{
			OrderID:    o.ID,
			CustomerID: o.CustomerID,
			Status:     o.Status,
			Month:      monthOf(o.PurchasedAt),
			Revenue:    paid[o.ID],
		})
	}

	sort.Slice(fact, func(i, j int) bool { return fact[i].Month.Before(fact[j].Month) })
	return fact
}

// MonthlySeries rolls the fact table up into ordered monthly KPIs.
// Growth is month-over-month revenue change in percent, zero for the
// first month. AOV divides revenue by distinct orders.
func MonthlySeries(fact []FactRow) []MonthlyKPI {
	type bucket struct {
		revenue decimal.Decimal
		orders  map[string]struct{}
	}

	buckets := make(map[time.Time]*bucket)
	for _, row := range fact {
		b, ok := buckets[row.Month]
		if !ok {
			b = &bucket{orders: make(map[string]struct{})}
			buckets[row.Month] = b
		}
		b.revenue = b.revenue.Add(row.Revenue)
		b.orders[row.OrderID] = struct{}{}
	}

	months := make([]time.Time, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := make([]MonthlyKPI, 0, len(months))
	for i, month := range months {
		b := buckets[month]
		kpi := MonthlyKPI{
			Month:   month,
			Revenue: b.revenue,
			Orders:  len(b.orders),
		}
		if kpi.Orders > 0 {
			kpi.AOV = b.revenue.Div(decimal.NewFromInt(int64(kpi.Orders)))
		}
		if i > 0 {
			prev := series[i-1].Revenue
			if prev.IsPositive() {
				kpi.GrowthPct = b.revenue.Sub(prev).Div(prev).InexactFloat64() * 100
			}
		}
		series = append(series, kpi)
	}

	return series
}

// monthOf truncates a timestamp to the first day of its month in UTC.
func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
