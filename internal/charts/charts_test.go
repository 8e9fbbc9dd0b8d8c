package charts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olistcli/internal/analytics"
)

func assertPNGWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, ".png", filepath.Ext(path))
}

func TestTimeSeries(t *testing.T) {
	r := NewRenderer(t.TempDir())

	points := []TimePoint{
		{T: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), V: 1200.50},
		{T: time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), V: 1890.00},
		{T: time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC), V: 1655.25},
	}

	path, err := r.TimeSeries("revenue_trend", "Monthly Revenue (BRL)", "Revenue (BRL)", points)
	require.NoError(t, err)
	assertPNGWritten(t, path)
	assert.Equal(t, r.Path("revenue_trend"), path)
}

func TestTimeSeriesEmpty(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.TimeSeries("empty", "t", "y", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data points")
}

func TestHBar(t *testing.T) {
	r := NewRenderer(t.TempDir())

	bars := []Bar{
		{Label: "credit_card", Value: 76.5},
		{Label: "boleto", Value: 19.0},
		{Label: "voucher", Value: 4.5},
	}

	path, err := r.HBar("payment_distribution", "Payment Method Distribution", "Share (%)", bars)
	require.NoError(t, err)
	assertPNGWritten(t, path)
}

func TestHBarEmpty(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.HBar("empty", "t", "x", nil)
	require.Error(t, err)
}

func TestRetentionHeatmap(t *testing.T) {
	r := NewRenderer(t.TempDir())

	matrix := &analytics.CohortMatrix{
		Months: []time.Time{
			time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		Sizes: []int{40, 25},
		Retention: [][]float64{
			{100, 12.5, 5},
			{100, 8},
		},
	}

	path, err := r.RetentionHeatmap("cohort_retention_heatmap", "Customer Retention by Cohort", matrix)
	require.NoError(t, err)
	assertPNGWritten(t, path)
}

func TestRetentionHeatmapNil(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.RetentionHeatmap("empty", "t", nil)
	require.Error(t, err)
}

func TestDelayBoxes(t *testing.T) {
	r := NewRenderer(t.TempDir())

	delivery := &analytics.DelayByScore{}
	delivery.Scores[0] = analytics.DelayStats{Score: 1, N: 4, Samples: []float64{3, 6, 8, 12}}
	delivery.Scores[4] = analytics.DelayStats{Score: 5, N: 4, Samples: []float64{-5, -2, 0, 1}}

	path, err := r.DelayBoxes("delivery_delay_vs_reviews", "Delivery Delay by Review Score", delivery)
	require.NoError(t, err)
	assertPNGWritten(t, path)
}

func TestDelayBoxesNoSamples(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.DelayBoxes("empty", "t", &analytics.DelayByScore{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no delay samples")
}
