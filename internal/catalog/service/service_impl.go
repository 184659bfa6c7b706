package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Tuning *config.CatalogConfigHolder
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	tuning *config.CatalogConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("catalog.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		tuning: p.Tuning,
	}
}

// flagLowStock marks products whose stock sits below the configured
// threshold. The flag is computed at read time so threshold changes
// picked up by the config watcher apply without touching rows.
func (s *Service) flagLowStock(p *domain.Product) {
	p.LowStock = p.Stock < s.tuning.Get().LowStockThreshold
}

func (s *Service) flagLowStockAll(products []domain.Product) {
	for i := range products {
		s.flagLowStock(&products[i])
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return domain.Product{}, domain.ErrInvalidCategory
	}

	if req.Price.IsNegative() {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if req.Stock < 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          s.genID.Generate().Int64(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Price:       req.Price,
		Stock:       req.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}
	s.flagLowStock(&product)

	s.log.Info("product created",
		zap.Int64("product_id", product.ID),
		zap.String("category", product.Category),
	)
	return product, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (domain.Product, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Product{}, err
	}

	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	s.flagLowStock(product)
	return *product, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Product, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return domain.Product{}, domain.ErrInvalidCategory
	}
	if req.Price.IsNegative() {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if req.Stock < 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}

	product := domain.Product{
		ID:          id,
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Price:       req.Price,
		Stock:       req.Stock,
		UpdatedAt:   time.Now().UTC(),
	}

	rows, err := s.repo.Replace(ctx, s.db, &product)
	if err != nil {
		return domain.Product{}, err
	}
	if rows == 0 {
		return domain.Product{}, domain.ErrNotFound
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Product{}, err
	}
	if updated == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	s.flagLowStock(updated)
	return *updated, nil
}

// Delete removes a product only when no order item references it. The check
// and the delete share one transaction, and the RESTRICT foreign key on
// order_items backs the check against concurrent order placement.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		refs, err := s.repo.CountOrderItems(ctx, tx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrProductInUse
		}

		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return domain.ErrProductInUse
		}
		return err
	}

	s.log.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	s.flagLowStockAll(products)
	return products, nil
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domain.ErrInvalidCategory
	}

	products, err := s.repo.ListByCategory(ctx, s.db, category)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrNotFound
	}
	s.flagLowStockAll(products)
	return products, nil
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyQuery
	}

	products, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrNotFound
	}
	s.flagLowStockAll(products)
	return products, nil
}

func (s *Service) parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
