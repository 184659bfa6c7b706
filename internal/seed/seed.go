package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/storefront/internal/auth/password"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	"gorm.io/gorm"
)

const (
	demoCustomerName     = "Demo Shopper"
	demoCustomerEmail    = "demo@storefront.local"
	demoCustomerPassword = "demo-pass"
)

type demoProduct struct {
	name        string
	description string
	category    string
	price       string
	stock       int
}

var demoProducts = []demoProduct{
	{"Walnut Desk Organizer", "Five-slot organizer, oiled walnut", "office", "34.50", 40},
	{"Linen Notebook", "A5 dot grid, 180 pages", "office", "12.00", 120},
	{"Ceramic Pour-Over Set", "Dripper and carafe, matte white", "kitchen", "48.00", 25},
	{"Cast Iron Skillet 26cm", "Pre-seasoned, oven safe", "kitchen", "39.90", 30},
	{"Merino Beanie", "Single-layer knit, charcoal", "apparel", "22.00", 75},
}

// EnsureDemoData seeds a browsable catalog and one demo customer so a
// fresh local install has something to query. Safe to run repeatedly.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDemoCustomerTx(ctx, tx, node); err != nil {
			return err
		}
		return ensureDemoProductsTx(ctx, tx, node)
	})
}

func ensureDemoCustomerTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var existing customerdomain.Customer
	err := tx.WithContext(ctx).Raw(
		`SELECT id FROM customers WHERE email = ?`, demoCustomerEmail,
	).Scan(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID != 0 {
		return nil
	}

	hash, err := password.Hash(demoCustomerPassword)
	if err != nil {
		return err
	}

	return tx.WithContext(ctx).Exec(
		`INSERT INTO customers (id, name, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		node.Generate().Int64(),
		demoCustomerName,
		demoCustomerEmail,
		hash,
		time.Now().UTC(),
	).Error
}

func ensureDemoProductsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Raw(`SELECT COUNT(*) FROM products`).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, p := range demoProducts {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return err
		}
		product := catalogdomain.Product{
			ID:          node.Generate().Int64(),
			Name:        p.name,
			Slug:        slug.Make(p.name),
			Description: p.description,
			Category:    p.category,
			Price:       price,
			Stock:       p.stock,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err = tx.WithContext(ctx).Exec(
			`INSERT INTO products (id, name, slug, description, category, price, stock, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			product.ID,
			product.Name,
			product.Slug,
			product.Description,
			product.Category,
			product.Price,
			product.Stock,
			product.CreatedAt,
			product.UpdatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}
