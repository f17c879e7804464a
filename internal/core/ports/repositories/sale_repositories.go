package repositories

import (
	"context"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
)

// ListSalesFilter narrows sale listings.
type ListSalesFilter struct {
	CustomerID    *string
	PaymentStatus *domain.PaymentStatus
}

// SaleReader defines read operations for sale documents
type SaleReader interface {
	// FindSaleByID retrieves a sale header by its ID.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindSaleDetails retrieves all line items of a sale.
	FindSaleDetails(ctx context.Context, saleID string) ([]domain.SaleDetail, error)

	// FindSales retrieves a paginated, filtered list of sales, newest first.
	FindSales(ctx context.Context, filter ListSalesFilter, limit int, offset int) ([]domain.Sale, error)
}

// SaleWriter defines write operations for sale documents
type SaleWriter interface {
	// SaveSale persists the header, its line items and the out movements in
	// one transaction. Stock leaves at creation: any insufficient line aborts
	// the whole transaction. The document number is generated from the daily
	// counter inside the same transaction; the returned sale carries it.
	SaveSale(ctx context.Context, sale domain.Sale, details []domain.SaleDetail, effects []domain.StockEffect) (*domain.Sale, error)

	// UpdateSale updates the payment status and notes of a sale, conditional
	// on the header still holding the from status. Payment changes never
	// move stock.
	UpdateSale(ctx context.Context, sale domain.Sale, from domain.PaymentStatus) error

	// DeleteSale removes a payment-pending sale and its line items, applying
	// the compensating in movements in the same transaction. A sale that left
	// pending state fails with a conflict.
	DeleteSale(ctx context.Context, saleID string, effects []domain.StockEffect, actorID string) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
