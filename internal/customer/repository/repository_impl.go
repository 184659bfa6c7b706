package repository

import (
	"context"

	"github.com/smallbiznis/storefront/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (id, name, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.PasswordHash,
		customer.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, password_hash, created_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Customer, error) {
	var customer domain.Customer
	// Case-sensitive equality on purpose: registration uniqueness is exact.
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, password_hash, created_at
		 FROM customers WHERE email = ?`,
		email,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}
