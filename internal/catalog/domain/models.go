package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Slug        string          `gorm:"not null;index" json:"slug"`
	Description string          `json:"description"`
	Category    string          `gorm:"not null;index" json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Stock       int             `gorm:"not null" json:"stock"`
	LowStock    bool            `gorm:"-" json:"low_stock"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
