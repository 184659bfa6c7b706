package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/auth/password"
	"github.com/smallbiznis/storefront/internal/customer/domain"
	"github.com/smallbiznis/storefront/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 6

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	if len(req.Password) < minPasswordLen {
		return domain.Customer{}, domain.ErrInvalidPassword
	}

	// Fast path for a friendlier error. The unique index on email is the
	// authoritative guard against concurrent registrations.
	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.Customer{}, err
	}
	if existing != nil {
		return domain.Customer{}, domain.ErrEmailExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.Customer{}, err
	}

	customer := domain.Customer{
		ID:           s.genID.Generate().Int64(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrEmailExists
		}
		return domain.Customer{}, err
	}

	s.log.Info("customer registered", zap.Int64("customer_id", customer.ID))
	return customer, nil
}

func (s *Service) Authenticate(ctx context.Context, req domain.LoginRequest) (domain.Customer, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return domain.Customer{}, domain.ErrInvalidCredentials
	}

	customer, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil || !password.Verify(req.Password, customer.PasswordHash) {
		return domain.Customer{}, domain.ErrInvalidCredentials
	}

	return *customer, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *customer, nil
}

func (s *Service) parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
