package domain

import (
	"context"
	"errors"
)

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

type LoginRequest struct {
	Email    string
	Password string
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	Register(context.Context, RegisterRequest) (Customer, error)
	Authenticate(context.Context, LoginRequest) (Customer, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
}

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidID          = errors.New("invalid_id")
	ErrEmailExists        = errors.New("email_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotFound           = errors.New("not_found")
)
