package domain

import (
	"context"
	"errors"
)

type PlaceItem struct {
	ProductID int64
	Quantity  int
}

type PlaceRequest struct {
	CustomerID int64
	Items      []PlaceItem
}

type OrderResponse struct {
	Order
	Items []ItemView `json:"items"`
}

type Service interface {
	Place(context.Context, PlaceRequest) (OrderResponse, error)
	GetByID(ctx context.Context, id string) (OrderResponse, error)
	OrdersForProduct(ctx context.Context, productID int64) ([]ProductOrderRow, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrEmptyItems      = errors.New("empty_items")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrUnknownCustomer = errors.New("unknown_customer")
	ErrUnknownProduct  = errors.New("unknown_product")
	ErrNotFound        = errors.New("not_found")
)
