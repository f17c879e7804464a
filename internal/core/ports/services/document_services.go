package services

import (
	"context"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
)

// PurchaseSvcFacade defines the service surface for purchase documents.
type PurchaseSvcFacade interface {
	// CreatePurchase validates the payload, computes totals and persists the
	// document, line items and any stock-in effects in one transaction.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Purchase, error)

	// GetPurchaseByID retrieves a purchase with its line items.
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPurchases retrieves a paginated, filtered list of purchases.
	ListPurchases(ctx context.Context, params dto.ListPurchasesParams) ([]domain.Purchase, error)

	// UpdatePurchase applies a status transition with its stock effects, or a
	// plain notes update. Transitions outside the state machine fail with
	// ErrConflict.
	UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest, requestingUserID string) (*domain.Purchase, error)

	// DeletePurchase removes a still-pending purchase.
	DeletePurchase(ctx context.Context, purchaseID string) error
}

// SaleSvcFacade defines the service surface for sale documents.
type SaleSvcFacade interface {
	// CreateSale validates the payload, computes totals and persists the
	// document, line items and the out movements in one transaction. Any
	// insufficient line aborts the whole transaction.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error)

	// GetSaleByID retrieves a sale with its line items.
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves a paginated, filtered list of sales.
	ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error)

	// UpdateSale updates payment status and notes; never moves stock.
	UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, requestingUserID string) (*domain.Sale, error)

	// DeleteSale removes a payment-pending sale, restoring its stock with
	// compensating in movements.
	DeleteSale(ctx context.Context, saleID string, requestingUserID string) error
}

// SaleReturnSvcFacade defines the service surface for sale return documents.
type SaleReturnSvcFacade interface {
	// CreateSaleReturn validates return lines against the original sale,
	// enforces the over-return limit and persists the document, line items
	// and any stock-in effects in one transaction.
	CreateSaleReturn(ctx context.Context, req dto.CreateSaleReturnRequest, creatorUserID string) (*domain.SaleReturn, error)

	// GetSaleReturnByID retrieves a return with its line items.
	GetSaleReturnByID(ctx context.Context, returnID string) (*domain.SaleReturn, error)

	// ListSaleReturns retrieves a paginated, filtered list of returns.
	ListSaleReturns(ctx context.Context, params dto.ListSaleReturnsParams) ([]domain.SaleReturn, error)

	// UpdateSaleReturn applies a status transition with its stock effects, or
	// a plain reason update.
	UpdateSaleReturn(ctx context.Context, returnID string, req dto.UpdateSaleReturnRequest, requestingUserID string) (*domain.SaleReturn, error)

	// DeleteSaleReturn removes a still-pending return.
	DeleteSaleReturn(ctx context.Context, returnID string) error
}
