package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	Replace(ctx context.Context, db *gorm.DB, product *Product) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	List(ctx context.Context, db *gorm.DB) ([]Product, error)
	ListByCategory(ctx context.Context, db *gorm.DB, category string) ([]Product, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) ([]Product, error)
	CountOrderItems(ctx context.Context, db *gorm.DB, productID int64) (int64, error)
}
