package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"olistcli/internal/dataset"
)

// UnknownCategory labels items whose product has no category name.
const UnknownCategory = "unknown"

// PaymentMix counts payment rows per payment type, descending by count.
func PaymentMix(payments []dataset.Payment) []TypeShare {
	counts := make(map[string]int)
	for _, p := range payments {
		t := p.Type
		if t == "" {
			t = "not_defined"
		}
		counts[t]++
	}

	shares := make([]TypeShare, 0, len(counts))
	for t, n := range counts {
		shares = append(shares, TypeShare{Type: t, Count: n})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Type < shares[j].Type
	})

	total := len(payments)
	if total > 0 {
		for i := range shares {
			shares[i].Pct = float64(shares[i].Count) / float64(total) * 100
		}
	}

	return shares
}

// CategoryRevenue attributes revenue to product categories, descending.
// Each item row carries its order's full fact revenue, matching the deck
// this pipeline replaces; multi-category orders are therefore counted once
// per category they touch.
func CategoryRevenue(items []dataset.OrderItem, products []dataset.Product, fact []FactRow) []CategoryShare {
	categoryByProduct := make(map[string]string, len(products))
	for _, p := range products {
		categoryByProduct[p.ID] = p.Category
	}
	revenueByOrder := make(map[string]decimal.Decimal, len(fact))
	for _, row := range fact {
		revenueByOrder[row.OrderID] = row.Revenue
	}

	totals := make(map[string]decimal.Decimal)
	for _, item := range items {
		category := categoryByProduct[item.ProductID]
		if category == "" {
			category = UnknownCategory
		}
		totals[category] = totals[category].Add(revenueByOrder[item.OrderID])
	}

	shares := make([]CategoryShare, 0, len(totals))
	for category, revenue := range totals {
		shares = append(shares, CategoryShare{Category: category, Revenue: revenue})
	}
	sort.Slice(shares, func(i, j int) bool {
		cmp := shares[i].Revenue.Cmp(shares[j].Revenue)
		if cmp != 0 {
			return cmp > 0
		}
		return shares[i].Category < shares[j].Category
	})

	return shares
}

// TopCategories truncates the ranking to its first n entries.
func TopCategories(shares []CategoryShare, n int) []CategoryShare {
	if len(shares) <= n {
		return shares
	}
	return shares[:n]
}

// StateRevenue sums fact revenue per customer state. The state for a zip
// prefix comes from the modal geolocation record; customers fall back to
// their own state column when the zip is unmapped or geolocation is
// missing entirely.
func StateRevenue(fact []FactRow, customers []dataset.Customer, geo []dataset.GeoRecord) []StateShare {
	stateByZip := modalStateByZip(geo)

	stateByCustomer := make(map[string]string, len(customers))
	for _, c := range customers {
		state := stateByZip[c.ZipPrefix]
		if state == "" {
			state = c.State
		}
		if state != "" {
			stateByCustomer[c.ID] = state
		}
	}

	totals := make(map[string]decimal.Decimal)
	for _, row := range fact {
		state, ok := stateByCustomer[row.CustomerID]
		if !ok {
			continue
		}
		totals[state] = totals[state].Add(row.Revenue)
	}

	shares := make([]StateShare, 0, len(totals))
	for state, revenue := range totals {
		shares = append(shares, StateShare{State: state, Revenue: revenue})
	}
	sort.Slice(shares, func(i, j int) bool {
		cmp := shares[i].Revenue.Cmp(shares[j].Revenue)
		if cmp != 0 {
			return cmp > 0
		}
		return shares[i].State < shares[j].State
	})

	return shares
}

// TopStates truncates the state ranking to its first n entries.
func TopStates(shares []StateShare, n int) []StateShare {
	if len(shares) <= n {
		return shares
	}
	return shares[:n]
}

// modalStateByZip picks the most frequent state per zip prefix; the
// geolocation extract repeats prefixes with occasional conflicting states.
func modalStateByZip(geo []dataset.GeoRecord) map[string]string {
	counts := make(map[string]map[string]int)
	for _, g := range geo {
		if counts[g.ZipPrefix] == nil {
			counts[g.ZipPrefix] = make(map[string]int)
		}
		counts[g.ZipPrefix][g.State]++
	}

	modal := make(map[string]string, len(counts))
	for zip, states := range counts {
		best, bestCount := "", -1
		for state, n := range states {
			if n > bestCount || (n == bestCount && state < best) {
				best, bestCount = state, n
			}
		}
		modal[zip] = best
	}
	return modal
}
