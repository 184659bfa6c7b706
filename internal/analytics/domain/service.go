package domain

import (
	"context"
	"errors"
)

type Service interface {
	ProductOrders(ctx context.Context, id string) (OrderHistory, error)
	ProductCustomers(ctx context.Context, id string) (ProductCustomersResponse, error)
	ProductSalesStats(ctx context.Context, id string) (SalesStats, error)
	PopularProducts(ctx context.Context, rawLimit string) ([]PopularProduct, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidLimit    = errors.New("invalid_limit")
	ErrProductNotFound = errors.New("product_not_found")
)
