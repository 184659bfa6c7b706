package repository

import (
	"context"

	"github.com/smallbiznis/storefront/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertOrder(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO orders (id, customer_id, order_date, order_status, order_amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.CustomerID,
		order.OrderDate,
		order.OrderStatus,
		order.OrderAmount,
		order.CreatedAt,
	).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.OrderItem) error {
	for i := range items {
		item := items[i]
		err := db.WithContext(ctx).Exec(
			`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
			 VALUES (?, ?, ?, ?, ?)`,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, order_date, order_status, order_amount, created_at
		 FROM orders WHERE id = ?`,
		id,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, orderID int64) ([]domain.ItemView, error) {
	var items []domain.ItemView
	// LEFT JOIN keeps items whose product was removed out-of-band.
	err := db.WithContext(ctx).Raw(
		`SELECT oi.id, oi.product_id, COALESCE(p.name, '') AS product_name, oi.quantity, oi.unit_price
		 FROM order_items oi
		 LEFT JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = ?
		 ORDER BY oi.id`,
		orderID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]domain.ProductOrderRow, error) {
	var rows []domain.ProductOrderRow
	// Most recent first is part of the contract, not a presentation choice.
	err := db.WithContext(ctx).Raw(
		`SELECT o.id AS order_id,
		        o.order_date,
		        c.name AS customer_name,
		        c.email AS customer_email,
		        oi.quantity,
		        oi.unit_price,
		        o.order_status,
		        o.order_amount AS total_amount
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 JOIN customers c ON c.id = o.customer_id
		 WHERE oi.product_id = ?
		 ORDER BY o.order_date DESC`,
		productID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
