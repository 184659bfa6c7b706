package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/smallbiznis/storefront/internal/analytics/domain"
)

func (s *Server) ProductOrders(c *gin.Context) {
	resp, err := s.analyticsSvc.ProductOrders(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ProductCustomers(c *gin.Context) {
	resp, err := s.analyticsSvc.ProductCustomers(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ProductSalesStats(c *gin.Context) {
	resp, err := s.analyticsSvc.ProductSalesStats(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PopularProducts(c *gin.Context) {
	resp, err := s.analyticsSvc.PopularProducts(c.Request.Context(), strings.TrimSpace(c.Query("limit")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isAnalyticsValidationError(err error) bool {
	switch err {
	case analyticsdomain.ErrInvalidID,
		analyticsdomain.ErrInvalidLimit:
		return true
	default:
		return false
	}
}
