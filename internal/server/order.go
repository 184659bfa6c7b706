package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/providers/pdf"
)

type placeOrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type placeOrderRequest struct {
	CustomerID int64            `json:"customer_id"`
	Items      []placeOrderItem `json:"items"`
}

func (s *Server) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]orderdomain.PlaceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderdomain.PlaceItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	resp, err := s.orderSvc.Place(c.Request.Context(), orderdomain.PlaceRequest{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) OrderReceipt(c *gin.Context) {
	order, err := s.orderSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	customer, err := s.customerSvc.GetByID(c.Request.Context(), customerdomain.GetCustomerRequest{
		ID: strconv.FormatInt(order.CustomerID, 10),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.ReceiptData{
		OrderNumber:   fmt.Sprintf("%d", order.ID),
		OrderDate:     order.OrderDate.Format(time.DateOnly),
		OrderStatus:   order.OrderStatus,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Total:         order.OrderAmount.StringFixed(2),
	}
	for _, item := range order.Items {
		amount := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		data.Items = append(data.Items, pdf.ReceiptItem{
			Description: item.ProductName,
			Qty:         item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Amount:      amount.StringFixed(2),
		})
	}

	reader, err := s.pdfProvider.GenerateReceipt(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", order.ID))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func isOrderValidationError(err error) bool {
	switch err {
	case orderdomain.ErrInvalidID,
		orderdomain.ErrEmptyItems,
		orderdomain.ErrInvalidQuantity,
		orderdomain.ErrUnknownCustomer,
		orderdomain.ErrUnknownProduct:
		return true
	default:
		return false
	}
}
