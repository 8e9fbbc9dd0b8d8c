package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olistcli/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadRequiresOrders(t *testing.T) {
	_, err := Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders dataset required")
}

func TestLoadOrdersOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.OrdersFile,
		"order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n"+
			"o1,c1,delivered,2017-10-02 10:56:33,2017-10-02 11:07:15,2017-10-04 19:55:00,2017-10-10 21:25:13,2017-10-18 00:00:00\n"+
			"o2,c2,shipped,not-a-date,,,,\n"+
			",c3,created,2017-10-02 10:56:33,,,,\n")

	collection, err := Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, collection.Orders, 2)
	assert.Equal(t, FileStats{Rows: 3, Dropped: 1}, collection.Stats["orders"])

	first := collection.Orders[0]
	assert.Equal(t, "o1", first.ID)
	assert.Equal(t, "delivered", first.Status)
	assert.Equal(t, time.Date(2017, 10, 2, 10, 56, 33, 0, time.UTC), first.PurchasedAt)

	delay, ok := first.DelayDays()
	require.True(t, ok)
	assert.Equal(t, -7, delay)

	// Bad timestamp zeroes out but the row is kept.
	assert.True(t, collection.Orders[1].PurchasedAt.IsZero())
	assert.False(t, collection.HasPayments())
	assert.False(t, collection.HasReviews())
}

func TestLoadResolvesColumnsByName(t *testing.T) {
	dir := t.TempDir()
	// Header order differs from the shipped extract; extra column appended.
	writeFile(t, dir, config.OrdersFile,
		"order_status,order_id,order_purchase_timestamp,customer_id,extra\n"+
			"invoiced,o1,2018-01-05 08:00:00,c1,x\n")
	writeFile(t, dir, config.PaymentsFile,
		"payment_value,payment_type,order_id,payment_sequential,payment_installments\n"+
			"129.90,credit_card,o1,1,3\n"+
			"10.10,voucher,o1,2,1\n"+
			"oops,boleto,o1,3,1\n")

	collection, err := Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, collection.Orders, 1)
	assert.Equal(t, "o1", collection.Orders[0].ID)

	require.Len(t, collection.Payments, 2)
	assert.Equal(t, "credit_card", collection.Payments[0].Type)
	assert.Equal(t, "129.9", collection.Payments[0].Value.String())
	assert.Equal(t, 3, collection.Payments[0].Installments)
	assert.Equal(t, FileStats{Rows: 3, Dropped: 1}, collection.Stats["payments"])
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.OrdersFile, "order_id,customer_id\no1,c1\n")

	_, err := Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_purchase_timestamp")
}

func TestLoadFullArchive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.OrdersFile,
		"order_id,customer_id,order_status,order_purchase_timestamp\n"+
			"o1,c1,delivered,2018-03-01 12:00:00\n")
	writeFile(t, dir, config.CustomersFile,
		"customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state\n"+
			"c1,u1,01310,sao paulo,SP\n")
	writeFile(t, dir, config.ItemsFile,
		"order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value\n"+
			"o1,1,p1,s1,2018-03-05 12:00:00,45.90,12.34\n")
	writeFile(t, dir, config.ProductsFile,
		"product_id,product_category_name\n"+
			"p1,beleza_saude\n")
	writeFile(t, dir, config.PaymentsFile,
		"order_id,payment_sequential,payment_type,payment_installments,payment_value\n"+
			"o1,1,credit_card,1,58.24\n")
	writeFile(t, dir, config.ReviewsFile,
		"review_id,order_id,review_score,review_creation_date\n"+
			"r1,o1,5,2018-03-10 00:00:00\n"+
			"r2,o1,bad,2018-03-11 00:00:00\n")
	writeFile(t, dir, config.SellersFile,
		"seller_id,seller_zip_code_prefix,seller_city,seller_state\n"+
			"s1,13023,campinas,SP\n")
	writeFile(t, dir, config.GeolocationFile,
		"geolocation_zip_code_prefix,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state\n"+
			"01310,-23.55,-46.63,sao paulo,SP\n")

	collection, err := Load(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, collection.HasCustomers())
	assert.True(t, collection.HasItems())
	assert.True(t, collection.HasPayments())
	assert.True(t, collection.HasReviews())
	assert.True(t, collection.HasGeolocation())

	assert.Equal(t, "u1", collection.Customers[0].UniqueID)
	assert.Equal(t, "45.9", collection.Items[0].Price.String())
	assert.Equal(t, "beleza_saude", collection.Products[0].Category)
	assert.Equal(t, 5, collection.Reviews[0].Score)
	// The unparseable review score is dropped, not zeroed.
	require.Len(t, collection.Reviews, 1)
	assert.Equal(t, FileStats{Rows: 2, Dropped: 1}, collection.Stats["reviews"])
	assert.Equal(t, "SP", collection.Geolocation[0].State)
}
