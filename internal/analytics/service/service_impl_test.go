package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/storefront/internal/analytics/domain"
	"github.com/smallbiznis/storefront/internal/analytics/repository"
	catalogrepository "github.com/smallbiznis/storefront/internal/catalog/repository"
	"github.com/smallbiznis/storefront/internal/config"
	orderrepository "github.com/smallbiznis/storefront/internal/order/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type analyticsFixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func newAnalyticsFixture(t *testing.T, name string) *analyticsFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	db.Exec(`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	db.Exec(`CREATE TABLE IF NOT EXISTS products (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		price NUMERIC NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	db.Exec(`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		order_date TIMESTAMP NOT NULL,
		order_status TEXT NOT NULL,
		order_amount NUMERIC NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	db.Exec(`CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price NUMERIC NOT NULL
	)`)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	svc := New(Params{
		DB:      db,
		Log:     zaptest.NewLogger(t),
		Repo:    repository.Provide(),
		Catalog: catalogrepository.Provide(),
		Orders:  orderrepository.Provide(),
		Tuning:  &config.CatalogConfigHolder{},
	})

	return &analyticsFixture{svc: svc, db: db, node: node}
}

func (f *analyticsFixture) seedCustomer(t *testing.T, name, email string) int64 {
	t.Helper()
	id := f.node.Generate().Int64()
	err := f.db.Exec(`INSERT INTO customers (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, 'x', ?)`, id, name, email, time.Now().UTC()).Error
	assert.NoError(t, err)
	return id
}

func (f *analyticsFixture) seedProduct(t *testing.T, name, price string) int64 {
	t.Helper()
	id := f.node.Generate().Int64()
	now := time.Now().UTC()
	err := f.db.Exec(`INSERT INTO products (id, name, slug, description, category, price, stock, created_at, updated_at)
		VALUES (?, ?, ?, '', 'test', ?, 10, ?, ?)`, id, name, name, price, now, now).Error
	assert.NoError(t, err)
	return id
}

func (f *analyticsFixture) seedOrder(t *testing.T, customerID int64, orderDate time.Time, amount string) int64 {
	t.Helper()
	id := f.node.Generate().Int64()
	err := f.db.Exec(`INSERT INTO orders (id, customer_id, order_date, order_status, order_amount, created_at)
		VALUES (?, ?, ?, 'pending', ?, ?)`, id, customerID, orderDate, amount, time.Now().UTC()).Error
	assert.NoError(t, err)
	return id
}

func (f *analyticsFixture) seedItem(t *testing.T, orderID, productID int64, qty int, unitPrice string) {
	t.Helper()
	err := f.db.Exec(`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
		VALUES (?, ?, ?, ?, ?)`, f.node.Generate().Int64(), orderID, productID, qty, unitPrice).Error
	assert.NoError(t, err)
}

func TestProductSalesStats(t *testing.T) {
	f := newAnalyticsFixture(t, "analytics_stats")
	ctx := context.Background()

	customerID := f.seedCustomer(t, "Buyer", "buyer@example.com")
	widgetID := f.seedProduct(t, "Widget", "10.00")

	orderID := f.seedOrder(t, customerID, time.Now().UTC(), "30.00")
	f.seedItem(t, orderID, widgetID, 3, "10.00")

	stats, err := f.svc.ProductSalesStats(ctx, strconv.FormatInt(widgetID, 10))
	assert.NoError(t, err)
	assert.Equal(t, 10, stats.CurrentStock)
	assert.Equal(t, int64(3), stats.TotalQuantitySold)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, int64(1), stats.OrderCount)
	assert.Equal(t, 3.0, stats.AverageOrderQuantity)

	t.Run("line items in one order count separately", func(t *testing.T) {
		gadgetID := f.seedProduct(t, "Gadget", "10.00")
		orderID := f.seedOrder(t, customerID, time.Now().UTC(), "50.00")
		f.seedItem(t, orderID, gadgetID, 2, "10.00")
		f.seedItem(t, orderID, gadgetID, 3, "10.00")

		stats, err := f.svc.ProductSalesStats(ctx, strconv.FormatInt(gadgetID, 10))
		assert.NoError(t, err)
		assert.Equal(t, int64(5), stats.TotalQuantitySold)
		assert.Equal(t, int64(2), stats.OrderCount)
		assert.Equal(t, 2.5, stats.AverageOrderQuantity)
	})

	t.Run("no orders yields zeroes", func(t *testing.T) {
		quietID := f.seedProduct(t, "Quiet", "5.00")

		stats, err := f.svc.ProductSalesStats(ctx, strconv.FormatInt(quietID, 10))
		assert.NoError(t, err)
		assert.Zero(t, stats.TotalQuantitySold)
		assert.True(t, stats.TotalRevenue.IsZero())
		assert.Zero(t, stats.OrderCount)
		assert.Zero(t, stats.AverageOrderQuantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := f.svc.ProductSalesStats(ctx, "123456789")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestPopularProducts(t *testing.T) {
	f := newAnalyticsFixture(t, "analytics_popular")
	ctx := context.Background()

	customerID := f.seedCustomer(t, "Buyer", "buyer@example.com")
	aID := f.seedProduct(t, "Alpha", "10.00")
	bID := f.seedProduct(t, "Beta", "10.00")
	cID := f.seedProduct(t, "Gamma", "10.00")

	orderID := f.seedOrder(t, customerID, time.Now().UTC(), "100.00")
	f.seedItem(t, orderID, aID, 5, "10.00")
	f.seedItem(t, orderID, bID, 2, "10.00")
	f.seedItem(t, orderID, cID, 2, "10.00")

	// Orphan: the product row is gone but the item remains.
	f.seedItem(t, orderID, 555000111, 9, "10.00")

	t.Run("ranked by quantity with stable ties", func(t *testing.T) {
		products, err := f.svc.PopularProducts(ctx, "")
		assert.NoError(t, err)
		assert.Len(t, products, 3)
		assert.Equal(t, aID, products[0].ProductID)
		assert.Equal(t, int64(5), products[0].TotalQuantitySold)
		assert.Equal(t, int64(1), products[0].TotalOrders)
		assert.True(t, products[0].TotalRevenue.Equal(decimal.RequireFromString("50.00")))
		// Beta and Gamma tie on quantity; lower id wins.
		tieFirst, tieSecond := products[1].ProductID, products[2].ProductID
		if bID < cID {
			assert.Equal(t, bID, tieFirst)
			assert.Equal(t, cID, tieSecond)
		} else {
			assert.Equal(t, cID, tieFirst)
			assert.Equal(t, bID, tieSecond)
		}
	})

	t.Run("explicit limit", func(t *testing.T) {
		products, err := f.svc.PopularProducts(ctx, "1")
		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, aID, products[0].ProductID)
	})

	t.Run("limit above cap is clamped", func(t *testing.T) {
		products, err := f.svc.PopularProducts(ctx, "100000")
		assert.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("bad limit", func(t *testing.T) {
		_, err := f.svc.PopularProducts(ctx, "zero")
		assert.ErrorIs(t, err, domain.ErrInvalidLimit)

		_, err = f.svc.PopularProducts(ctx, "-1")
		assert.ErrorIs(t, err, domain.ErrInvalidLimit)
	})
}

func TestProductCustomers(t *testing.T) {
	f := newAnalyticsFixture(t, "analytics_customers")
	ctx := context.Background()

	aliceID := f.seedCustomer(t, "Alice", "alice@example.com")
	bobID := f.seedCustomer(t, "Bob", "bob@example.com")
	widgetID := f.seedProduct(t, "Widget", "10.00")

	firstOrder := f.seedOrder(t, aliceID, time.Now().UTC(), "30.00")
	f.seedItem(t, firstOrder, widgetID, 3, "10.00")
	secondOrder := f.seedOrder(t, aliceID, time.Now().UTC(), "10.00")
	f.seedItem(t, secondOrder, widgetID, 1, "10.00")
	thirdOrder := f.seedOrder(t, bobID, time.Now().UTC(), "20.00")
	f.seedItem(t, thirdOrder, widgetID, 2, "10.00")

	resp, err := f.svc.ProductCustomers(ctx, strconv.FormatInt(widgetID, 10))
	assert.NoError(t, err)
	assert.Equal(t, widgetID, resp.ProductID)
	assert.Equal(t, "Widget", resp.ProductName)
	assert.Equal(t, 2, resp.TotalCustomers)
	assert.Len(t, resp.Customers, 2)
	assert.Equal(t, aliceID, resp.Customers[0].CustomerID)
	assert.Equal(t, int64(4), resp.Customers[0].TotalPurchasedQuantity)
	assert.Equal(t, bobID, resp.Customers[1].CustomerID)
	assert.Equal(t, int64(2), resp.Customers[1].TotalPurchasedQuantity)
}

func TestProductOrders(t *testing.T) {
	f := newAnalyticsFixture(t, "analytics_orders")
	ctx := context.Background()

	customerID := f.seedCustomer(t, "Buyer", "buyer@example.com")
	widgetID := f.seedProduct(t, "Widget", "10.00")

	older := f.seedOrder(t, customerID, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), "10.00")
	f.seedItem(t, older, widgetID, 1, "10.00")
	newer := f.seedOrder(t, customerID, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), "20.00")
	f.seedItem(t, newer, widgetID, 2, "10.00")

	history, err := f.svc.ProductOrders(ctx, strconv.FormatInt(widgetID, 10))
	assert.NoError(t, err)
	assert.Equal(t, 2, history.TotalOrders)
	assert.Len(t, history.Orders, 2)
	assert.Equal(t, newer, history.Orders[0].OrderID)
	assert.Equal(t, older, history.Orders[1].OrderID)

	t.Run("repeated line items count individually", func(t *testing.T) {
		f.seedItem(t, newer, widgetID, 4, "10.00")

		history, err := f.svc.ProductOrders(ctx, strconv.FormatInt(widgetID, 10))
		assert.NoError(t, err)
		assert.Equal(t, 3, history.TotalOrders)
		assert.Len(t, history.Orders, 3)
	})

	t.Run("product with no orders", func(t *testing.T) {
		quietID := f.seedProduct(t, "Quiet", "5.00")

		history, err := f.svc.ProductOrders(ctx, strconv.FormatInt(quietID, 10))
		assert.NoError(t, err)
		assert.Zero(t, history.TotalOrders)
		assert.Empty(t, history.Orders)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := f.svc.ProductOrders(ctx, "424242")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
