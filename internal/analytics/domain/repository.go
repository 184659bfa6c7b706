package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	CustomersFor(ctx context.Context, db *gorm.DB, productID int64) ([]ProductCustomer, error)
	StatsFor(ctx context.Context, db *gorm.DB, productID int64) (StatsRow, error)
	Popular(ctx context.Context, db *gorm.DB, limit int) ([]PopularProduct, error)
}

// StatsRow is the raw aggregate before the average is derived.
type StatsRow struct {
	TotalQuantity int64           `gorm:"column:total_quantity"`
	TotalRevenue  decimal.Decimal `gorm:"column:total_revenue"`
	OrderCount    int64           `gorm:"column:order_count"`
}
