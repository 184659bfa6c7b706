package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/storefront/internal/analytics/domain"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/config"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Catalog catalogdomain.Repository
	Orders  orderdomain.Repository
	Tuning  *config.CatalogConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	catalog catalogdomain.Repository
	orders  orderdomain.Repository
	tuning  *config.CatalogConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("analytics.service"),
		repo:    p.Repo,
		catalog: p.Catalog,
		orders:  p.Orders,
		tuning:  p.Tuning,
	}
}

func (s *Service) ProductOrders(ctx context.Context, id string) (domain.OrderHistory, error) {
	product, err := s.lookupProduct(ctx, id)
	if err != nil {
		return domain.OrderHistory{}, err
	}

	rows, err := s.orders.ListByProduct(ctx, s.db, product.ID)
	if err != nil {
		return domain.OrderHistory{}, err
	}

	return domain.OrderHistory{
		ProductID:   product.ID,
		ProductName: product.Name,
		TotalOrders: len(rows),
		Orders:      rows,
	}, nil
}

func (s *Service) ProductCustomers(ctx context.Context, id string) (domain.ProductCustomersResponse, error) {
	product, err := s.lookupProduct(ctx, id)
	if err != nil {
		return domain.ProductCustomersResponse{}, err
	}

	customers, err := s.repo.CustomersFor(ctx, s.db, product.ID)
	if err != nil {
		return domain.ProductCustomersResponse{}, err
	}
	if customers == nil {
		customers = []domain.ProductCustomer{}
	}

	return domain.ProductCustomersResponse{
		ProductID:      product.ID,
		ProductName:    product.Name,
		TotalCustomers: len(customers),
		Customers:      customers,
	}, nil
}

// ProductSalesStats returns zeroes for a product that exists but has
// never been ordered. Only an unknown product id is an error.
func (s *Service) ProductSalesStats(ctx context.Context, id string) (domain.SalesStats, error) {
	product, err := s.lookupProduct(ctx, id)
	if err != nil {
		return domain.SalesStats{}, err
	}

	row, err := s.repo.StatsFor(ctx, s.db, product.ID)
	if err != nil {
		return domain.SalesStats{}, err
	}

	var average float64
	if row.OrderCount > 0 {
		average = decimal.NewFromInt(row.TotalQuantity).
			Div(decimal.NewFromInt(row.OrderCount)).
			Round(2).
			InexactFloat64()
	}

	return domain.SalesStats{
		ProductID:            product.ID,
		ProductName:          product.Name,
		CurrentStock:         product.Stock,
		TotalQuantitySold:    row.TotalQuantity,
		TotalRevenue:         row.TotalRevenue,
		OrderCount:           row.OrderCount,
		AverageOrderQuantity: average,
	}, nil
}

func (s *Service) PopularProducts(ctx context.Context, rawLimit string) ([]domain.PopularProduct, error) {
	tuning := s.tuning.Get()

	limit := tuning.PopularDefaultLimit
	if rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			return nil, domain.ErrInvalidLimit
		}
		limit = parsed
	}
	if limit > tuning.PopularMaxLimit {
		limit = tuning.PopularMaxLimit
	}

	products, err := s.repo.Popular(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.PopularProduct{}
	}
	return products, nil
}

func (s *Service) lookupProduct(ctx context.Context, id string) (*catalogdomain.Product, error) {
	productID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || productID == 0 {
		return nil, domain.ErrInvalidID
	}

	product, err := s.catalog.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}
