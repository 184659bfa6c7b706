package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/catalog/repository"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T, name string) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	assert.NoError(t, err)

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
		DB:     db,
		Log:    zaptest.NewLogger(t),
		GenID:  node,
		Repo:   repository.Provide(),
		Tuning: &config.CatalogConfigHolder{},
	})
	return svc, db
}

func mustCreate(t *testing.T, svc domain.Service, name, category, price string, stock int) domain.Product {
	t.Helper()
	p, err := decimal.NewFromString(price)
	assert.NoError(t, err)
	product, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:     name,
		Category: category,
		Price:    p,
		Stock:    stock,
	})
	assert.NoError(t, err)
	return product
}

func TestCreateProduct(t *testing.T) {
	svc, _ := newCatalogService(t, "catalog_create")
	ctx := context.Background()

	product := mustCreate(t, svc, "Walnut Desk Organizer", "office", "34.50", 40)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "walnut-desk-organizer", product.Slug)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("34.50")))

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateRequest{Name: " ", Category: "office"})
		assert.ErrorIs(t, err, domain.ErrInvalidName)

		_, err = svc.Create(ctx, domain.CreateRequest{Name: "X", Category: " "})
		assert.ErrorIs(t, err, domain.ErrInvalidCategory)

		_, err = svc.Create(ctx, domain.CreateRequest{Name: "X", Category: "office", Price: decimal.RequireFromString("-1")})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)

		_, err = svc.Create(ctx, domain.CreateRequest{Name: "X", Category: "office", Stock: -5})
		assert.ErrorIs(t, err, domain.ErrInvalidStock)
	})
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newCatalogService(t, "catalog_update")
	ctx := context.Background()

	product := mustCreate(t, svc, "Linen Notebook", "office", "12.00", 120)

	updated, err := svc.Update(ctx, domain.UpdateRequest{
		ID:       strconv.FormatInt(product.ID, 10),
		Name:     "Linen Notebook A5",
		Category: "stationery",
		Price:    decimal.RequireFromString("14.00"),
		Stock:    90,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Linen Notebook A5", updated.Name)
	assert.Equal(t, "stationery", updated.Category)
	assert.Equal(t, 90, updated.Stock)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("14.00")))

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, domain.UpdateRequest{
			ID:       "424242",
			Name:     "Ghost",
			Category: "none",
			Price:    decimal.RequireFromString("1.00"),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteProduct(t *testing.T) {
	svc, db := newCatalogService(t, "catalog_delete")
	ctx := context.Background()

	t.Run("unreferenced product is removed", func(t *testing.T) {
		product := mustCreate(t, svc, "Ceramic Mug", "kitchen", "9.00", 10)

		err := svc.Delete(ctx, strconv.FormatInt(product.ID, 10))
		assert.NoError(t, err)

		_, err = svc.Get(ctx, strconv.FormatInt(product.ID, 10))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("referenced product is kept", func(t *testing.T) {
		product := mustCreate(t, svc, "Cast Iron Skillet", "kitchen", "39.90", 30)
		db.Exec(`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
			VALUES (1, 100, ?, 2, 39.90)`, product.ID)

		err := svc.Delete(ctx, strconv.FormatInt(product.ID, 10))
		assert.ErrorIs(t, err, domain.ErrProductInUse)

		kept, err := svc.Get(ctx, strconv.FormatInt(product.ID, 10))
		assert.NoError(t, err)
		assert.Equal(t, product.ID, kept.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := svc.Delete(ctx, "987654")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSearchByName(t *testing.T) {
	svc, _ := newCatalogService(t, "catalog_search")
	ctx := context.Background()

	mustCreate(t, svc, "Widget", "tools", "5.00", 100)
	mustCreate(t, svc, "Widgets", "tools", "6.00", 100)

	t.Run("matches whole name only", func(t *testing.T) {
		results, err := svc.SearchByName(ctx, "Widget")
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "Widget", results[0].Name)
	})

	t.Run("match ignores case", func(t *testing.T) {
		results, err := svc.SearchByName(ctx, "wIdGeT")
		assert.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := svc.SearchByName(ctx, "Gadget")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("blank term", func(t *testing.T) {
		_, err := svc.SearchByName(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	})
}

func TestLowStockFlag(t *testing.T) {
	svc, _ := newCatalogService(t, "catalog_lowstock")
	ctx := context.Background()

	scarce := mustCreate(t, svc, "Hand Plane", "tools", "64.00", 5)
	plenty := mustCreate(t, svc, "Clamp Set", "tools", "18.00", 40)

	assert.True(t, scarce.LowStock)
	assert.False(t, plenty.LowStock)

	t.Run("flag follows stock on reads", func(t *testing.T) {
		got, err := svc.Get(ctx, strconv.FormatInt(scarce.ID, 10))
		assert.NoError(t, err)
		assert.True(t, got.LowStock)

		results, err := svc.ListByCategory(ctx, "tools")
		assert.NoError(t, err)
		flagged := 0
		for _, p := range results {
			if p.LowStock {
				flagged++
			}
		}
		assert.Equal(t, 1, flagged)
	})

	t.Run("restock clears the flag", func(t *testing.T) {
		updated, err := svc.Update(ctx, domain.UpdateRequest{
			ID:       strconv.FormatInt(scarce.ID, 10),
			Name:     scarce.Name,
			Category: scarce.Category,
			Price:    scarce.Price,
			Stock:    25,
		})
		assert.NoError(t, err)
		assert.False(t, updated.LowStock)
	})
}

func TestListByCategory(t *testing.T) {
	svc, _ := newCatalogService(t, "catalog_category")
	ctx := context.Background()

	mustCreate(t, svc, "Pour-Over Set", "Kitchen", "48.00", 25)
	mustCreate(t, svc, "Skillet", "kitchen", "39.90", 30)
	mustCreate(t, svc, "Beanie", "apparel", "22.00", 75)

	t.Run("category match ignores case", func(t *testing.T) {
		results, err := svc.ListByCategory(ctx, "KITCHEN")
		assert.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("empty category is not found", func(t *testing.T) {
		_, err := svc.ListByCategory(ctx, "garden")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
