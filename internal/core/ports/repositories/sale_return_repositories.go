package repositories

import (
	"context"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
)

// ListSaleReturnsFilter narrows sale return listings.
type ListSaleReturnsFilter struct {
	SaleID *string
	Status *domain.ReturnStatus
}

// SaleReturnReader defines read operations for sale return documents
type SaleReturnReader interface {
	// FindSaleReturnByID retrieves a return header by its ID.
	FindSaleReturnByID(ctx context.Context, returnID string) (*domain.SaleReturn, error)

	// FindSaleReturnDetails retrieves all line items of a return.
	FindSaleReturnDetails(ctx context.Context, returnID string) ([]domain.SaleReturnDetail, error)

	// FindSaleReturns retrieves a paginated, filtered list of returns, newest first.
	FindSaleReturns(ctx context.Context, filter ListSaleReturnsFilter, limit int, offset int) ([]domain.SaleReturn, error)

	// SumReturnedQuantities sums line quantities per product across all
	// non-rejected returns of a sale, used for the over-return check.
	SumReturnedQuantities(ctx context.Context, saleID string) (map[string]int64, error)
}

// SaleReturnWriter defines write operations for sale return documents
type SaleReturnWriter interface {
	// SaveSaleReturn persists the header, its line items and any stock effects
	// in one transaction. The document number is generated from the daily
	// counter inside the same transaction; the returned document carries it.
	SaveSaleReturn(ctx context.Context, ret domain.SaleReturn, details []domain.SaleReturnDetail, effects []domain.StockEffect, policy domain.ShortfallPolicy) (*domain.SaleReturn, error)

	// UpdateSaleReturnStatus updates the header status and reason and applies
	// the accompanying stock effects in one transaction. The write is
	// conditional on the header still holding the from status; a concurrent
	// transition surfaces as ErrConflict with no effects applied.
	UpdateSaleReturnStatus(ctx context.Context, ret domain.SaleReturn, from domain.ReturnStatus, effects []domain.StockEffect, policy domain.ShortfallPolicy) error

	// DeleteSaleReturn removes a pending return and its line items. A return
	// that left pending state fails with a conflict.
	DeleteSaleReturn(ctx context.Context, returnID string) error
}

// SaleReturnRepositoryFacade combines all sale-return-related repository interfaces
type SaleReturnRepositoryFacade interface {
	SaleReturnReader
	SaleReturnWriter
}
