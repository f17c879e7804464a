package repositories

import (
	"context"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
)

// ListPurchasesFilter narrows purchase listings.
type ListPurchasesFilter struct {
	SupplierID *string
	Status     *domain.PurchaseStatus
}

// PurchaseReader defines read operations for purchase documents
type PurchaseReader interface {
	// FindPurchaseByID retrieves a purchase header by its ID.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// FindPurchaseDetails retrieves all line items of a purchase.
	FindPurchaseDetails(ctx context.Context, purchaseID string) ([]domain.PurchaseDetail, error)

	// FindPurchases retrieves a paginated, filtered list of purchases, newest first.
	FindPurchases(ctx context.Context, filter ListPurchasesFilter, limit int, offset int) ([]domain.Purchase, error)
}

// PurchaseWriter defines write operations for purchase documents
type PurchaseWriter interface {
	// SavePurchase persists the header, its line items and any stock effects
	// in one transaction. The document number is generated from the daily
	// counter inside the same transaction; the returned purchase carries it.
	SavePurchase(ctx context.Context, purchase domain.Purchase, details []domain.PurchaseDetail, effects []domain.StockEffect, policy domain.ShortfallPolicy) (*domain.Purchase, error)

	// UpdatePurchaseStatus updates the header status and notes and applies the
	// accompanying stock effects in one transaction. The write is conditional
	// on the header still holding the from status; a concurrent transition
	// surfaces as ErrConflict with no effects applied.
	UpdatePurchaseStatus(ctx context.Context, purchase domain.Purchase, from domain.PurchaseStatus, effects []domain.StockEffect, policy domain.ShortfallPolicy) error

	// DeletePurchase removes a pending purchase and its line items. A purchase
	// that left pending state fails with a conflict; the status check and the
	// delete share one transaction.
	DeletePurchase(ctx context.Context, purchaseID string) error
}

// PurchaseRepositoryFacade combines all purchase-related repository interfaces
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}
