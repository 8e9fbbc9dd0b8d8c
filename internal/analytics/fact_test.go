package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olistcli/internal/dataset"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestBuildFact(t *testing.T) {
	orders := []dataset.Order{
		{ID: "o1", CustomerID: "c1", Status: "delivered", PurchasedAt: time.Date(2018, 1, 15, 14, 30, 0, 0, time.UTC)},
		{ID: "o2", CustomerID: "c2", Status: "shipped", PurchasedAt: time.Date(2018, 2, 3, 9, 0, 0, 0, time.UTC)},
		{ID: "o3", CustomerID: "c3", Status: "created"}, // no purchase timestamp
	}
	payments := []dataset.Payment{
		{OrderID: "o1", Sequential: 1, Value: dec(t, "100.50")},
		{OrderID: "o1", Sequential: 2, Value: dec(t, "20.25")},
		{OrderID: "ghost", Value: dec(t, "7.77")},
	}

	fact := BuildFact(orders, payments)
	require.Len(t, fact, 2)

	assert.Equal(t, "o1", fact[0].OrderID)
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), fact[0].Month)
	assert.Equal(t, "120.75", fact[0].Revenue.String())

	// Orders without payments keep zero revenue.
	assert.Equal(t, "o2", fact[1].OrderID)
	assert.True(t, fact[1].Revenue.IsZero())
}

func TestMonthlySeries(t *testing.T) {
	jan := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)

	fact := []FactRow{
		{OrderID: "o1", Month: feb, Revenue: dec(t, "150")},
		{OrderID: "o2", Month: jan, Revenue: dec(t, "100")},
		{OrderID: "o3", Month: feb, Revenue: dec(t, "50")},
		{OrderID: "o4", Month: mar, Revenue: dec(t, "100")},
	}

	series := MonthlySeries(fact)
	require.Len(t, series, 3)

	assert.Equal(t, jan, series[0].Month)
	assert.Equal(t, "100", series[0].Revenue.String())
	assert.Equal(t, 1, series[0].Orders)
	assert.Equal(t, "100", series[0].AOV.String())
	assert.Zero(t, series[0].GrowthPct)

	assert.Equal(t, feb, series[1].Month)
	assert.Equal(t, "200", series[1].Revenue.String())
	assert.Equal(t, 2, series[1].Orders)
	assert.Equal(t, "100", series[1].AOV.String())
	assert.InDelta(t, 100.0, series[1].GrowthPct, 1e-9)

	assert.Equal(t, mar, series[2].Month)
	assert.InDelta(t, -50.0, series[2].GrowthPct, 1e-9)
}

func TestMonthlySeriesCountsDistinctOrders(t *testing.T) {
	jan := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	fact := []FactRow{
		{OrderID: "o1", Month: jan, Revenue: dec(t, "10")},
		{OrderID: "o1", Month: jan, Revenue: dec(t, "10")},
	}

	series := MonthlySeries(fact)
	require.Len(t, series, 1)
	assert.Equal(t, 1, series[0].Orders)
	assert.Equal(t, "20", series[0].Revenue.String())
}

func TestMonthlySeriesZeroRevenuePreviousMonth(t *testing.T) {
	jan := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)
	fact := []FactRow{
		{OrderID: "o1", Month: jan},
		{OrderID: "o2", Month: feb, Revenue: dec(t, "80")},
	}

	series := MonthlySeries(fact)
	require.Len(t, series, 2)
	// Growth against a zero month is undefined; it stays zero.
	assert.Zero(t, series[1].GrowthPct)
}
