package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

type Order struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	CustomerID  int64           `gorm:"not null;index" json:"customer_id"`
	OrderDate   time.Time       `gorm:"not null" json:"order_date"`
	OrderStatus string          `gorm:"not null" json:"order_status"`
	OrderAmount decimal.Decimal `gorm:"type:numeric;not null" json:"order_amount"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// OrderItem is a historical snapshot: quantity and unit price never change
// after the order is recorded, regardless of later catalog edits.
type OrderItem struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null" json:"unit_price"`
}

// ItemView is an order item joined with its product name for read paths.
type ItemView struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ProductOrderRow is one row of the per-product order history projection.
type ProductOrderRow struct {
	OrderID       int64           `json:"order_id"`
	OrderDate     time.Time       `json:"order_date"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	OrderStatus   string          `json:"order_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}
