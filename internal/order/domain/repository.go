package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertOrder(ctx context.Context, db *gorm.DB, order *Order) error
	InsertItems(ctx context.Context, db *gorm.DB, items []OrderItem) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	ListItems(ctx context.Context, db *gorm.DB, orderID int64) ([]ItemView, error)
	ListByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]ProductOrderRow, error)
}
