package service

import (
	"context"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/clock"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	"github.com/smallbiznis/storefront/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Catalog   catalogdomain.Repository
	Customers customerdomain.Repository
	Clock     clock.Clock
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	catalog   catalogdomain.Repository
	customers customerdomain.Repository
	clock     clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("order.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		catalog:   p.Catalog,
		customers: p.Customers,
		clock:     p.Clock,
	}
}

// Place records an order with a fresh price snapshot per line item. The
// whole order is rejected when any referenced customer or product is
// missing, nothing is written partially.
func (s *Service) Place(ctx context.Context, req domain.PlaceRequest) (domain.OrderResponse, error) {
	if req.CustomerID == 0 {
		return domain.OrderResponse{}, domain.ErrUnknownCustomer
	}
	if len(req.Items) == 0 {
		return domain.OrderResponse{}, domain.ErrEmptyItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.OrderResponse{}, domain.ErrInvalidQuantity
		}
	}

	var resp domain.OrderResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := s.customers.FindByID(ctx, tx, req.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrUnknownCustomer
		}

		now := s.clock.Now()
		order := domain.Order{
			ID:          s.genID.Generate().Int64(),
			CustomerID:  customer.ID,
			OrderDate:   now,
			OrderStatus: domain.StatusPending,
			OrderAmount: decimal.Zero,
			CreatedAt:   now,
		}

		items := make([]domain.OrderItem, 0, len(req.Items))
		views := make([]domain.ItemView, 0, len(req.Items))
		for _, line := range req.Items {
			product, err := s.catalog.FindByID(ctx, tx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrUnknownProduct
			}

			item := domain.OrderItem{
				ID:        s.genID.Generate().Int64(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			}
			items = append(items, item)
			views = append(views, domain.ItemView{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			order.OrderAmount = order.OrderAmount.Add(lineTotal)
		}

		if err := s.repo.InsertOrder(ctx, tx, &order); err != nil {
			return err
		}
		if err := s.repo.InsertItems(ctx, tx, items); err != nil {
			return err
		}

		resp = domain.OrderResponse{Order: order, Items: views}
		return nil
	})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	s.log.Info("order placed",
		zap.Int64("order_id", resp.ID),
		zap.Int64("customer_id", resp.CustomerID),
		zap.Int("items", len(resp.Items)),
		zap.String("amount", resp.OrderAmount.String()),
	)
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.OrderResponse, error) {
	orderID, err := parseID(id)
	if err != nil {
		return domain.OrderResponse{}, domain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	if order == nil {
		return domain.OrderResponse{}, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, order.ID)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	return domain.OrderResponse{Order: *order, Items: items}, nil
}

func (s *Service) OrdersForProduct(ctx context.Context, productID int64) ([]domain.ProductOrderRow, error) {
	return s.repo.ListByProduct(ctx, s.db, productID)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
