package exporter

import (
	"fmt"
	"strconv"

	"olistcli/internal/analytics"
	"olistcli/internal/config"
)

// WriteMonthlyKPIs exports the monthly revenue/orders/AOV/growth table.
func (w *CSVWriter) WriteMonthlyKPIs(series []analytics.MonthlyKPI) (string, error) {
	records := make([][]string, 0, len(series))
	for _, kpi := range series {
		records = append(records, []string{
			kpi.Month.Format(config.MonthLayout),
			kpi.Revenue.StringFixed(2),
			strconv.Itoa(kpi.Orders),
			kpi.AOV.StringFixed(2),
			fmt.Sprintf("%.2f", kpi.GrowthPct),
		})
	}
	return w.WriteCSV("monthly_kpis.csv", WriteOptions{
		Headers:   []string{"month", "revenue_brl", "orders", "aov_brl", "growth_pct"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WritePaymentMix exports payment type shares.
func (w *CSVWriter) WritePaymentMix(mix []analytics.TypeShare) (string, error) {
	records := make([][]string, 0, len(mix))
	for _, share := range mix {
		records = append(records, []string{
			share.Type,
			strconv.Itoa(share.Count),
			fmt.Sprintf("%.2f", share.Pct),
		})
	}
	return w.WriteCSV("payment_mix.csv", WriteOptions{
		Headers:   []string{"payment_type", "payments", "share_pct"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteCategoryRevenue exports the category revenue ranking.
func (w *CSVWriter) WriteCategoryRevenue(shares []analytics.CategoryShare) (string, error) {
	records := make([][]string, 0, len(shares))
	for _, share := range shares {
		records = append(records, []string{share.Category, share.Revenue.StringFixed(2)})
	}
	return w.WriteCSV("category_revenue.csv", WriteOptions{
		Headers:   []string{"category", "revenue_brl"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteStateRevenue exports the state revenue ranking.
func (w *CSVWriter) WriteStateRevenue(shares []analytics.StateShare) (string, error) {
	records := make([][]string, 0, len(shares))
	for _, share := range shares {
		records = append(records, []string{share.State, share.Revenue.StringFixed(2)})
	}
	return w.WriteCSV("state_revenue.csv", WriteOptions{
		Headers:   []string{"state", "revenue_brl"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteCohortRetention exports the retention matrix, one row per cohort,
// one column per month index. Cells past a cohort's horizon stay empty.
func (w *CSVWriter) WriteCohortRetention(matrix *analytics.CohortMatrix) (string, error) {
	maxIndex := matrix.MaxIndex()

	headers := make([]string, 0, maxIndex+3)
	headers = append(headers, "cohort_month", "cohort_size")
	for i := 0; i <= maxIndex; i++ {
		headers = append(headers, fmt.Sprintf("m%d_pct", i))
	}

	records := make([][]string, 0, len(matrix.Months))
	for i, month := range matrix.Months {
		record := make([]string, 0, maxIndex+3)
		record = append(record, month.Format(config.MonthLayout), strconv.Itoa(matrix.Sizes[i]))
		row := matrix.Retention[i]
		for j := 0; j <= maxIndex; j++ {
			if j < len(row) {
				record = append(record, fmt.Sprintf("%.1f", row[j]))
			} else {
				record = append(record, "")
			}
		}
		records = append(records, record)
	}

	return w.WriteCSV("cohort_retention.csv", WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}
