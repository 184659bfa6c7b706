package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Customer, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Customer, error)
}
