package repository

import (
	"context"

	"github.com/smallbiznis/storefront/internal/analytics/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CustomersFor(ctx context.Context, db *gorm.DB, productID int64) ([]domain.ProductCustomer, error) {
	var customers []domain.ProductCustomer
	err := db.WithContext(ctx).Raw(
		`SELECT c.id AS customer_id,
		        c.name,
		        c.email,
		        SUM(oi.quantity) AS total_purchased_quantity
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 JOIN customers c ON c.id = o.customer_id
		 WHERE oi.product_id = ?
		 GROUP BY c.id, c.name, c.email
		 ORDER BY total_purchased_quantity DESC, c.id ASC`,
		productID,
	).Scan(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) StatsFor(ctx context.Context, db *gorm.DB, productID int64) (domain.StatsRow, error) {
	var row domain.StatsRow
	// COALESCE keeps the zero-sales case a valid single row, not NULLs.
	// Orders are counted as line-item rows, so an order holding the same
	// product twice counts twice; the quantity average divides by this.
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(oi.quantity), 0) AS total_quantity,
		        COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_revenue,
		        COUNT(*) AS order_count
		 FROM order_items oi
		 WHERE oi.product_id = ?`,
		productID,
	).Scan(&row).Error
	if err != nil {
		return domain.StatsRow{}, err
	}
	return row, nil
}

func (r *repo) Popular(ctx context.Context, db *gorm.DB, limit int) ([]domain.PopularProduct, error) {
	var products []domain.PopularProduct
	// INNER JOIN drops order items whose product no longer exists.
	// Ties on quantity resolve by product id so the ranking is stable.
	err := db.WithContext(ctx).Raw(
		`SELECT p.id AS product_id,
		        p.name,
		        p.category,
		        p.price,
		        SUM(oi.quantity) AS total_quantity_sold,
		        COUNT(*) AS total_orders,
		        SUM(oi.quantity * oi.unit_price) AS total_revenue
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 GROUP BY p.id, p.name, p.category, p.price
		 ORDER BY total_quantity_sold DESC, p.id ASC
		 LIMIT ?`,
		limit,
	).Scan(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
