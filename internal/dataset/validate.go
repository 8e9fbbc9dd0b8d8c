package dataset

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Severity classifies a data-quality issue.
type Severity string

const (
	// SeverityError marks issues that make downstream numbers untrustworthy.
	SeverityError Severity = "error"
	// SeverityWarning marks issues the pipeline tolerates.
	SeverityWarning Severity = "warning"
)

// Issue is one data-quality finding over a loaded dataset.
type Issue struct {
	Severity Severity
	Dataset  string
	Message  string
	Count    int
}

// String renders the issue for log and console output.
func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s (%d rows)", i.Severity, i.Dataset, i.Message, i.Count)
}

// Validate runs the data-quality checks over the collection. It reports
// findings without aborting: the pipeline decides what to do with them.
func (c *Collection) Validate() []Issue {
	var issues []Issue

	add := func(severity Severity, dataset, message string, count int) {
		if count > 0 {
			issues = append(issues, Issue{Severity: severity, Dataset: dataset, Message: message, Count: count})
		}
	}

	// Duplicate order ids break every per-order aggregation.
	seen := make(map[string]struct{}, len(c.Orders))
	duplicates := 0
	missingPurchase := 0
	undelivered := 0
	for _, o := range c.Orders {
		if _, ok := seen[o.ID]; ok {
			duplicates++
		}
		seen[o.ID] = struct{}{}
		if o.PurchasedAt.IsZero() {
			missingPurchase++
		}
		if o.Delivered() && o.DeliveredCustomerAt.IsZero() {
			undelivered++
		}
	}
	add(SeverityError, "orders", "duplicate order ids", duplicates)
	add(SeverityWarning, "orders", "missing or unparseable purchase timestamp", missingPurchase)
	add(SeverityWarning, "orders", "delivered orders without delivery timestamp", undelivered)

	negative := 0
	orphaned := 0
	for _, p := range c.Payments {
		if p.Value.Cmp(decimal.Zero) < 0 {
			negative++
		}
		if _, ok := seen[p.OrderID]; !ok {
			orphaned++
		}
	}
	add(SeverityError, "payments", "negative payment values", negative)
	add(SeverityWarning, "payments", "payments referencing unknown orders", orphaned)

	outOfRange := 0
	for _, r := range c.Reviews {
		if r.Score < 1 || r.Score > 5 {
			outOfRange++
		}
	}
	add(SeverityWarning, "reviews", "review scores outside 1..5", outOfRange)

	return issues
}

// HasErrors reports whether any issue carries error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
