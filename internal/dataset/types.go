package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one row of the orders extract.
type Order struct {
	ID                  string
	CustomerID          string
	Status              string
	PurchasedAt         time.Time
	ApprovedAt          time.Time
	DeliveredCarrierAt  time.Time
	DeliveredCustomerAt time.Time
	EstimatedDeliveryAt time.Time
}

// Delivered reports whether the order reached the customer.
func (o Order) Delivered() bool {
	return o.Status == "delivered"
}

// DelayDays returns the delivery delay in whole days relative to the
// estimate. Negative values mean early delivery. The second return is
// false when either timestamp is missing.
func (o Order) DelayDays() (int, bool) {
	if o.DeliveredCustomerAt.IsZero() || o.EstimatedDeliveryAt.IsZero() {
		return 0, false
	}
	return int(o.DeliveredCustomerAt.Sub(o.EstimatedDeliveryAt).Hours() / 24), true
}

// Customer is one row of the customers extract. UniqueID identifies the
// person; ID is reissued per order by the source system.
type Customer struct {
	ID        string
	UniqueID  string
	ZipPrefix string
	City      string
	State     string
}

// OrderItem is one row of the order items extract.
type OrderItem struct {
	OrderID   string
	ItemSeq   int
	ProductID string
	SellerID  string
	Price     decimal.Decimal
	Freight   decimal.Decimal
}

// Product is one row of the products extract.
type Product struct {
	ID       string
	Category string
}

// Payment is one row of the payments extract.
type Payment struct {
	OrderID      string
	Sequential   int
	Type         string
	Installments int
	Value        decimal.Decimal
}

// Review is one row of the reviews extract.
type Review struct {
	ID        string
	OrderID   string
	Score     int
	CreatedAt time.Time
}

// Seller is one row of the sellers extract.
type Seller struct {
	ID        string
	ZipPrefix string
	City      string
	State     string
}

// GeoRecord is one row of the geolocation extract. Only the zip-to-state
// mapping is used; coordinates are not loaded.
type GeoRecord struct {
	ZipPrefix string
	State     string
}

// FileStats counts rows handled while loading one dataset file.
type FileStats struct {
	Rows    int
	Dropped int
}

// LoadStats aggregates per-file loading statistics keyed by dataset name.
type LoadStats map[string]FileStats

// Collection holds every loaded dataset. Optional datasets that were
// missing on disk are nil slices.
type Collection struct {
	Orders      []Order
	Customers   []Customer
	Items       []OrderItem
	Products    []Product
	Payments    []Payment
	Reviews     []Review
	Sellers     []Seller
	Geolocation []GeoRecord

	Stats LoadStats
}

// HasCustomers reports whether the customers extract was loaded.
func (c *Collection) HasCustomers() bool { return len(c.Customers) > 0 }

// HasPayments reports whether the payments extract was loaded.
func (c *Collection) HasPayments() bool { return len(c.Payments) > 0 }

// HasReviews reports whether the reviews extract was loaded.
func (c *Collection) HasReviews() bool { return len(c.Reviews) > 0 }

// HasItems reports whether both extracts needed for category analysis exist.
func (c *Collection) HasItems() bool { return len(c.Items) > 0 && len(c.Products) > 0 }

// HasGeolocation reports whether the geolocation extract was loaded.
func (c *Collection) HasGeolocation() bool { return len(c.Geolocation) > 0 }
