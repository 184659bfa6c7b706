package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/customer/domain"
	"github.com/smallbiznis/storefront/internal/customer/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newCustomerService(t *testing.T, name string) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	assert.NoError(t, err)

	db.Exec(`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		CONSTRAINT uq_customers_email UNIQUE (email)
	)`)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestRegister(t *testing.T) {
	svc := newCustomerService(t, "customer_register")
	ctx := context.Background()

	resp, err := svc.Register(ctx, domain.RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "enigma-engine",
	})
	assert.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Ada Lovelace", resp.Name)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.NotEmpty(t, resp.PasswordHash)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, domain.RegisterRequest{
			Name:     "Ada Again",
			Email:    "ada@example.com",
			Password: "another-pass",
		})
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})

	t.Run("email comparison is case sensitive", func(t *testing.T) {
		_, err := svc.Register(ctx, domain.RegisterRequest{
			Name:     "Ada Capitalized",
			Email:    "Ada@example.com",
			Password: "another-pass",
		})
		assert.NoError(t, err)
	})
}

func TestRegisterValidation(t *testing.T) {
	svc := newCustomerService(t, "customer_register_validation")
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.RegisterRequest
		want error
	}{
		{"blank name", domain.RegisterRequest{Name: "  ", Email: "a@b.com", Password: "secret-1"}, domain.ErrInvalidName},
		{"bad email", domain.RegisterRequest{Name: "A", Email: "not-an-email", Password: "secret-1"}, domain.ErrInvalidEmail},
		{"short password", domain.RegisterRequest{Name: "A", Email: "a@b.com", Password: "abc"}, domain.ErrInvalidPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	svc := newCustomerService(t, "customer_register_race")
	ctx := context.Background()

	const attempts = 2
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, domain.RegisterRequest{
				Name:     "Racer",
				Email:    "race@example.com",
				Password: "race-pass",
			})
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrEmailExists):
			conflict++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflict)
}

func TestAuthenticate(t *testing.T) {
	svc := newCustomerService(t, "customer_authenticate")
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Name:     "Grace Hopper",
		Email:    "grace@example.com",
		Password: "cobol-forever",
	})
	assert.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Authenticate(ctx, domain.LoginRequest{
			Email:    "grace@example.com",
			Password: "cobol-forever",
		})
		assert.NoError(t, err)
		assert.Equal(t, "grace@example.com", resp.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, domain.LoginRequest{
			Email:    "grace@example.com",
			Password: "fortran-forever",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, domain.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever-pass",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestGetByID(t *testing.T) {
	svc := newCustomerService(t, "customer_get_by_id")
	ctx := context.Background()

	created, err := svc.Register(ctx, domain.RegisterRequest{
		Name:     "Alan Turing",
		Email:    "alan@example.com",
		Password: "bombe-pass",
	})
	assert.NoError(t, err)

	t.Run("existing customer", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, domain.GetCustomerRequest{ID: formatID(created.ID)})
		assert.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, domain.GetCustomerRequest{ID: "999999"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, domain.GetCustomerRequest{ID: "abc"})
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
