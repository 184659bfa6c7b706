package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

type ReceiptItem struct {
	Description string
	Qty         int
	UnitPrice   string
	Amount      string
}

type ReceiptData struct {
	OrderNumber   string
	OrderDate     string
	OrderStatus   string
	CustomerName  string
	CustomerEmail string

	Items []ReceiptItem
	Total string
}

type Provider interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error)
}

type PDFProvider struct{}

func NewProvider() Provider {
	return &PDFProvider{}
}

var Module = fx.Module("providers.pdf",
	fx.Provide(NewProvider),
)
