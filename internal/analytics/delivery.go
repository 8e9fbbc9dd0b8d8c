package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"olistcli/internal/dataset"
)

// DeliveryDelayByScore joins reviews to their order's delivery delay and
// summarizes the delay distribution per review score. Orders without both
// delivery timestamps are excluded; early deliveries contribute negative
// delays. Returns nil when nothing joins.
func DeliveryDelayByScore(orders []dataset.Order, reviews []dataset.Review) *DelayByScore {
	delayByOrder := make(map[string]float64, len(orders))
	for _, o := range orders {
		if delay, ok := o.DelayDays(); ok {
			delayByOrder[o.ID] = float64(delay)
		}
	}

	result := &DelayByScore{}
	var allScores, allDelays []float64
	joined := 0

	for _, r := range reviews {
		if r.Score < 1 || r.Score > 5 {
			continue
		}
		delay, ok := delayByOrder[r.OrderID]
		if !ok {
			continue
		}
		joined++
		s := &result.Scores[r.Score-1]
		s.Score = r.Score
		s.Samples = append(s.Samples, delay)
		allScores = append(allScores, float64(r.Score))
		allDelays = append(allDelays, delay)
	}
	if joined == 0 {
		return nil
	}

	for i := range result.Scores {
		s := &result.Scores[i]
		s.Score = i + 1
		s.N = len(s.Samples)
		if s.N == 0 {
			continue
		}
		sorted := make([]float64, s.N)
		copy(sorted, s.Samples)
		sort.Float64s(sorted)
		s.P25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
		s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		s.P75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	}

	if len(allScores) > 1 {
		result.Correlation = stat.Correlation(allScores, allDelays, nil)
	}

	return result
}
