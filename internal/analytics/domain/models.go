package domain

import (
	"github.com/shopspring/decimal"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
)

// ProductCustomer is one buyer of a product with their quantity across
// every order they placed for it.
type ProductCustomer struct {
	CustomerID             int64  `json:"customer_id"`
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	TotalPurchasedQuantity int64  `json:"total_purchased_quantity"`
}

type ProductCustomersResponse struct {
	ProductID      int64             `json:"product_id"`
	ProductName    string            `json:"product_name"`
	TotalCustomers int               `json:"total_customers"`
	Customers      []ProductCustomer `json:"customers"`
}

type SalesStats struct {
	ProductID            int64           `json:"product_id"`
	ProductName          string          `json:"product_name"`
	CurrentStock         int             `json:"current_stock"`
	TotalQuantitySold    int64           `json:"total_quantity_sold"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	OrderCount           int64           `json:"order_count"`
	AverageOrderQuantity float64         `json:"average_order_quantity"`
}

type PopularProduct struct {
	ProductID         int64           `json:"product_id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	TotalQuantitySold int64           `json:"total_quantity_sold"`
	TotalOrders       int64           `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
}

type OrderHistory struct {
	ProductID   int64                         `json:"product_id"`
	ProductName string                        `json:"product_name"`
	TotalOrders int                           `json:"total_orders"`
	Orders      []orderdomain.ProductOrderRow `json:"orders"`
}
