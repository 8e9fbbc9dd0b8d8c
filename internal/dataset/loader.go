package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"olistcli/internal/config"
)

// timestampLayout is the format used by every timestamp column in the
// Olist extracts.
const timestampLayout = "2006-01-02 15:04:05"

// Load reads every Olist extract found under dir. The orders file is
// mandatory; missing optional files are logged and skipped. Files load
// concurrently, each file sequentially. Rows with unusable key fields are
// dropped and counted in the returned stats.
func Load(ctx context.Context, dir string) (*Collection, error) {
	ordersPath := filepath.Join(dir, config.OrdersFile)
	if _, err := os.Stat(ordersPath); err != nil {
		return nil, fmt.Errorf("orders dataset required: %w", err)
	}

	collection := &Collection{Stats: LoadStats{}}
	var mu sync.Mutex

	record := func(name string, stats FileStats) {
		mu.Lock()
		collection.Stats[name] = stats
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, stats, err := loadOrders(ordersPath)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		collection.Orders = orders
		record("orders", stats)
		return nil
	})

	optional := []struct {
		name string
		file string
		load func(path string) (FileStats, error)
	}{
		{"customers", config.CustomersFile, func(path string) (FileStats, error) {
			rows, stats, err := loadCustomers(path)
			collection.Customers = rows
			return stats, err
		}},
		{"items", config.ItemsFile, func(path string) (FileStats, error) {
			rows, stats, err := loadItems(path)
			collection.Items = rows
			return stats, err
		}},
		{"products", config.ProductsFile, func(path string) (FileStats, error) {
			rows, stats, err := loadProducts(path)
			collection.Products = rows
			return stats, err
		}},
		{"payments", config.PaymentsFile, func(path string) (FileStats, error) {
			rows, stats, err := loadPayments(path)
			collection.Payments = rows
			return stats, err
		}},
		{"reviews", config.ReviewsFile, func(path string) (FileStats, error) {
			rows, stats, err := loadReviews(path)
			collection.Reviews = rows
			return stats, err
		}},
		{"sellers", config.SellersFile, func(path string) (FileStats, error) {
			rows, stats, err := loadSellers(path)
			collection.Sellers = rows
			return stats, err
		}},
		{"geolocation", config.GeolocationFile, func(path string) (FileStats, error) {
			rows, stats, err := loadGeolocation(path)
			collection.Geolocation = rows
			return stats, err
		}},
	}

	for _, ds := range optional {
		ds := ds
		path := filepath.Join(dir, ds.file)
		if _, err := os.Stat(path); err != nil {
			slog.WarnContext(ctx, "optional dataset missing, skipping",
				"dataset", ds.name,
				"path", path)
			continue
		}
		g.Go(func() error {
			stats, err := ds.load(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", ds.name, err)
			}
			record(ds.name, stats)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for name, stats := range collection.Stats {
		slog.InfoContext(ctx, "dataset loaded",
			"dataset", name,
			"rows", stats.Rows,
			"dropped", stats.Dropped)
	}

	return collection, nil
}

// fieldFunc returns the trimmed value of a named column for the current row.
type fieldFunc func(col string) string

// forEachRow streams a CSV file, resolving columns by header name so the
// extracts may reorder or append columns freely. The row callback returns
// false to drop the row.
func forEachRow(path string, required []string, fn func(get fieldFunc) bool) (FileStats, error) {
	var stats FileStats

	file, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return stats, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			return stats, fmt.Errorf("missing column %q in %s", col, filepath.Base(path))
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Rows++
			stats.Dropped++
			continue
		}
		stats.Rows++

		get := func(col string) string {
			idx, ok := cols[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if !fn(get) {
			stats.Dropped++
		}
	}

	return stats, nil
}

func loadOrders(path string) ([]Order, FileStats, error) {
	var orders []Order
	stats, err := forEachRow(path, []string{"order_id", "customer_id", "order_purchase_timestamp"}, func(get fieldFunc) bool {
		id := get("order_id")
		if id == "" {
			return false
		}
		// Bad timestamps zero out instead of dropping the row: the order
		// still counts for delivery and validation analyses.
		orders = append(orders, Order{
			ID:                  id,
			CustomerID:          get("customer_id"),
			Status:              get("order_status"),
			PurchasedAt:         parseTime(get("order_purchase_timestamp")),
			ApprovedAt:          parseTime(get("order_approved_at")),
			DeliveredCarrierAt:  parseTime(get("order_delivered_carrier_date")),
			DeliveredCustomerAt: parseTime(get("order_delivered_customer_date")),
			EstimatedDeliveryAt: parseTime(get("order_estimated_delivery_date")),
		})
		return true
	})
	return orders, stats, err
}

func loadCustomers(path string) ([]Customer, FileStats, error) {
	var customers []Customer
	stats, err := forEachRow(path, []string{"customer_id", "customer_unique_id"}, func(get fieldFunc) bool {
		id, unique := get("customer_id"), get("customer_unique_id")
		if id == "" || unique == "" {
			return false
		}
		customers = append(customers, Customer{
			ID:        id,
			UniqueID:  unique,
			ZipPrefix: get("customer_zip_code_prefix"),
			City:      get("customer_city"),
			State:     get("customer_state"),
		})
		return true
	})
	return customers, stats, err
}

func loadItems(path string) ([]OrderItem, FileStats, error) {
	var items []OrderItem
	stats, err := forEachRow(path, []string{"order_id", "product_id", "price"}, func(get fieldFunc) bool {
		orderID, productID := get("order_id"), get("product_id")
		if orderID == "" || productID == "" {
			return false
		}
		price, ok := parseDecimal(get("price"))
		if !ok {
			return false
		}
		freight, _ := parseDecimal(get("freight_value"))
		items = append(items, OrderItem{
			OrderID:   orderID,
			ItemSeq:   parseInt(get("order_item_id")),
			ProductID: productID,
			SellerID:  get("seller_id"),
			Price:     price,
			Freight:   freight,
		})
		return true
	})
	return items, stats, err
}

func loadProducts(path string) ([]Product, FileStats, error) {
	var products []Product
	stats, err := forEachRow(path, []string{"product_id"}, func(get fieldFunc) bool {
		id := get("product_id")
		if id == "" {
			return false
		}
		products = append(products, Product{
			ID:       id,
			Category: get("product_category_name"),
		})
		return true
	})
	return products, stats, err
}

func loadPayments(path string) ([]Payment, FileStats, error) {
	var payments []Payment
	stats, err := forEachRow(path, []string{"order_id", "payment_type", "payment_value"}, func(get fieldFunc) bool {
		orderID := get("order_id")
		if orderID == "" {
			return false
		}
		value, ok := parseDecimal(get("payment_value"))
		if !ok {
			return false
		}
		payments = append(payments, Payment{
			OrderID:      orderID,
			Sequential:   parseInt(get("payment_sequential")),
			Type:         get("payment_type"),
			Installments: parseInt(get("payment_installments")),
			Value:        value,
		})
		return true
	})
	return payments, stats, err
}

func loadReviews(path string) ([]Review, FileStats, error) {
	var reviews []Review
	stats, err := forEachRow(path, []string{"order_id", "review_score"}, func(get fieldFunc) bool {
		orderID := get("order_id")
		if orderID == "" {
			return false
		}
		score, err := strconv.Atoi(get("review_score"))
		if err != nil {
			return false
		}
		reviews = append(reviews, Review{
			ID:        get("review_id"),
			OrderID:   orderID,
			Score:     score,
			CreatedAt: parseTime(get("review_creation_date")),
		})
		return true
	})
	return reviews, stats, err
}

func loadSellers(path string) ([]Seller, FileStats, error) {
	var sellers []Seller
	stats, err := forEachRow(path, []string{"seller_id"}, func(get fieldFunc) bool {
		id := get("seller_id")
		if id == "" {
			return false
		}
		sellers = append(sellers, Seller{
			ID:        id,
			ZipPrefix: get("seller_zip_code_prefix"),
			City:      get("seller_city"),
			State:     get("seller_state"),
		})
		return true
	})
	return sellers, stats, err
}

func loadGeolocation(path string) ([]GeoRecord, FileStats, error) {
	var records []GeoRecord
	stats, err := forEachRow(path, []string{"geolocation_zip_code_prefix", "geolocation_state"}, func(get fieldFunc) bool {
		zip, state := get("geolocation_zip_code_prefix"), get("geolocation_state")
		if zip == "" || state == "" {
			return false
		}
		records = append(records, GeoRecord{ZipPrefix: zip, State: state})
		return true
	})
	return records, stats, err
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseDecimal(value string) (decimal.Decimal, bool) {
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseInt(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}
