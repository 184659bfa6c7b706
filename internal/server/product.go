package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
)

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.Create(c.Request.Context(), catalogdomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	resp, err := s.catalogSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.Update(c.Request.Context(), catalogdomain.UpdateRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.catalogSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ListProducts(c *gin.Context) {
	resp, err := s.catalogSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProductsByCategory(c *gin.Context) {
	resp, err := s.catalogSvc.ListByCategory(c.Request.Context(), strings.TrimSpace(c.Param("category")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SearchProducts(c *gin.Context) {
	resp, err := s.catalogSvc.SearchByName(c.Request.Context(), strings.TrimSpace(c.Query("name")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCatalogValidationError(err error) bool {
	switch err {
	case catalogdomain.ErrInvalidName,
		catalogdomain.ErrInvalidCategory,
		catalogdomain.ErrInvalidPrice,
		catalogdomain.ErrInvalidStock,
		catalogdomain.ErrInvalidID,
		catalogdomain.ErrEmptyQuery:
		return true
	default:
		return false
	}
}
