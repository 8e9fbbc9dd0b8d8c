package dataset

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCleanCollection(t *testing.T) {
	c := &Collection{
		Orders: []Order{
			{ID: "o1", Status: "delivered", PurchasedAt: time.Now(), DeliveredCustomerAt: time.Now()},
			{ID: "o2", Status: "shipped", PurchasedAt: time.Now()},
		},
		Payments: []Payment{
			{OrderID: "o1", Value: decimal.NewFromFloat(10.5)},
		},
		Reviews: []Review{
			{OrderID: "o1", Score: 4},
		},
	}

	assert.Empty(t, c.Validate())
	assert.False(t, HasErrors(nil))
}

func TestValidateFindsIssues(t *testing.T) {
	now := time.Now()
	c := &Collection{
		Orders: []Order{
			{ID: "o1", Status: "delivered", PurchasedAt: now, DeliveredCustomerAt: now},
			{ID: "o1", Status: "delivered", PurchasedAt: now, DeliveredCustomerAt: now}, // duplicate
			{ID: "o2", Status: "delivered", PurchasedAt: now},                           // delivered, no timestamp
			{ID: "o3", Status: "created"},                                               // missing purchase time
		},
		Payments: []Payment{
			{OrderID: "o1", Value: decimal.NewFromFloat(-5)}, // negative
			{OrderID: "ghost", Value: decimal.NewFromFloat(9.99)},
		},
		Reviews: []Review{
			{OrderID: "o1", Score: 0},
			{OrderID: "o2", Score: 6},
			{OrderID: "o3", Score: 3},
		},
	}

	issues := c.Validate()
	require.Len(t, issues, 6)
	assert.True(t, HasErrors(issues))

	byMessage := make(map[string]Issue, len(issues))
	for _, issue := range issues {
		byMessage[issue.Message] = issue
	}

	dup := byMessage["duplicate order ids"]
	assert.Equal(t, SeverityError, dup.Severity)
	assert.Equal(t, 1, dup.Count)

	neg := byMessage["negative payment values"]
	assert.Equal(t, SeverityError, neg.Severity)
	assert.Equal(t, 1, neg.Count)

	orphan := byMessage["payments referencing unknown orders"]
	assert.Equal(t, SeverityWarning, orphan.Severity)
	assert.Equal(t, 1, orphan.Count)

	scores := byMessage["review scores outside 1..5"]
	assert.Equal(t, 2, scores.Count)

	assert.Equal(t, 1, byMessage["missing or unparseable purchase timestamp"].Count)
	assert.Equal(t, 1, byMessage["delivered orders without delivery timestamp"].Count)
}

func TestIssueString(t *testing.T) {
	issue := Issue{Severity: SeverityError, Dataset: "payments", Message: "negative payment values", Count: 3}
	assert.Equal(t, "[error] payments: negative payment values (3 rows)", issue.String())
}
