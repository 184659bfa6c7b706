package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
)

type registerCustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginCustomerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) RegisterCustomer(c *gin.Context) {
	var req registerCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Register(c.Request.Context(), customerdomain.RegisterRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// LoginCustomer requires the X-Client-ID header so the caller can be
// identified before any credential work happens.
func (s *Server) LoginCustomer(c *gin.Context) {
	client := clientID(c)
	if client == "" {
		AbortWithError(c, missingClientIDError())
		return
	}

	var req loginCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Authenticate(c.Request.Context(), customerdomain.LoginRequest{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp, "client_id": client})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.customerSvc.GetByID(c.Request.Context(), customerdomain.GetCustomerRequest{
		ID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCustomerValidationError(err error) bool {
	switch err {
	case customerdomain.ErrInvalidName,
		customerdomain.ErrInvalidEmail,
		customerdomain.ErrInvalidPassword,
		customerdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
