package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
}

// UpdateRequest replaces every mutable field; partial updates are not
// supported.
type UpdateRequest struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
}

type Service interface {
	Create(context.Context, CreateRequest) (Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Update(context.Context, UpdateRequest) (Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	SearchByName(ctx context.Context, name string) ([]Product, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidStock    = errors.New("invalid_stock")
	ErrInvalidID       = errors.New("invalid_id")
	ErrEmptyQuery      = errors.New("empty_query")
	ErrNotFound        = errors.New("not_found")

	// ErrProductInUse blocks deletion while order items still reference the
	// product. Callers should suggest marking it out of stock instead.
	ErrProductInUse = errors.New("product_in_use")
)
