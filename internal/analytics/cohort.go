package analytics

import (
	"sort"
	"time"

	"olistcli/internal/dataset"
)

// CohortRetention builds the retention matrix keyed on the customer's
// unique id (the stable person identifier), since customer_id is reissued
// per order by the source system. Returns nil when no fact row can be
// joined to a customer.
func CohortRetention(fact []FactRow, customers []dataset.Customer) *CohortMatrix {
	uniqueByID := make(map[string]string, len(customers))
	for _, c := range customers {
		uniqueByID[c.ID] = c.UniqueID
	}

	// Distinct active months per person.
	activeMonths := make(map[string]map[time.Time]struct{})
	for _, row := range fact {
		unique, ok := uniqueByID[row.CustomerID]
		if !ok {
			continue
		}
		if activeMonths[unique] == nil {
			activeMonths[unique] = make(map[time.Time]struct{})
		}
		activeMonths[unique][row.Month] = struct{}{}
	}
	if len(activeMonths) == 0 {
		return nil
	}

	// cohort month -> month index -> distinct active customers
	active := make(map[time.Time]map[int]int)
	sizes := make(map[time.Time]int)
	for _, months := range activeMonths {
		cohort := time.Time{}
		for month := range months {
			if cohort.IsZero() || month.Before(cohort) {
				cohort = month
			}
		}
		sizes[cohort]++
		if active[cohort] == nil {
			active[cohort] = make(map[int]int)
		}
		for month := range months {
			active[cohort][monthsBetween(cohort, month)]++
		}
	}

	cohortMonths := make([]time.Time, 0, len(sizes))
	for month := range sizes {
		cohortMonths = append(cohortMonths, month)
	}
	sort.Slice(cohortMonths, func(i, j int) bool { return cohortMonths[i].Before(cohortMonths[j]) })

	matrix := &CohortMatrix{
		Months:    cohortMonths,
		Sizes:     make([]int, len(cohortMonths)),
		Retention: make([][]float64, len(cohortMonths)),
	}
	for i, cohort := range cohortMonths {
		size := sizes[cohort]
		matrix.Sizes[i] = size

		maxIndex := 0
		for index := range active[cohort] {
			if index > maxIndex {
				maxIndex = index
			}
		}
		row := make([]float64, maxIndex+1)
		for index, n := range active[cohort] {
			row[index] = float64(n) / float64(size) * 100
		}
		matrix.Retention[i] = row
	}

	return matrix
}

// monthsBetween counts whole calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
