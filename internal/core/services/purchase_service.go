package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
	"github.com/pharmindo/pharmacy_inventory_app/internal/middleware"
)

// purchaseService coordinates purchase documents: it validates requests,
// computes totals and the stock effects for the requested status, and hands
// everything to the repository for one atomic commit.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// CreatePurchase validates the payload, computes totals and persists the
// document. Creating directly as received applies an in movement per line in
// the same transaction and copies batch metadata onto the product.
func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown purchase status %q", apperrors.ErrValidation, req.Status)
	}
	if _, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID); err != nil {
		return nil, fmt.Errorf("supplier %s: %w", req.SupplierID, err)
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, uniqueStrings(productIDs))
	if err != nil {
		logger.Error("Failed to fetch products for purchase", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	for _, id := range productIDs {
		if _, ok := products[id]; !ok {
			return nil, fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
		}
	}

	now := time.Now().UTC()
	purchaseID := uuid.NewString()
	purchaseDate := now
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	// Line items processed strictly in input order.
	totalAmount := decimal.Zero
	details := make([]domain.PurchaseDetail, len(req.Items))
	effects := make([]domain.StockEffect, 0, len(req.Items))
	for i, item := range req.Items {
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative for product %s", apperrors.ErrValidation, item.ProductID)
		}
		lineDiscount := derefDecimal(item.DiscountAmount)
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)).Sub(lineDiscount).Round(2)
		totalAmount = totalAmount.Add(lineTotal)

		details[i] = domain.PurchaseDetail{
			DetailID:       uuid.NewString(),
			PurchaseID:     purchaseID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice.Round(2),
			DiscountAmount: lineDiscount,
			TotalPrice:     lineTotal,
			BatchNumber:    item.BatchNumber,
			ExpiryDate:     item.ExpiryDate,
			AuditFields:    audit,
		}

		if req.Status == domain.PurchaseReceived {
			effects = append(effects, domain.StockEffect{
				ProductID:          item.ProductID,
				MovementType:       domain.MovementIn,
				Quantity:           item.Quantity,
				Reference:          domain.PurchaseRef(purchaseID),
				BatchNumber:        item.BatchNumber,
				ExpiryDate:         item.ExpiryDate,
				UpdateProductBatch: item.BatchNumber != "" || item.ExpiryDate != nil,
			})
		}
	}

	headerDiscount := derefDecimal(req.DiscountAmount)
	headerTax := derefDecimal(req.TaxAmount)
	purchase := domain.Purchase{
		PurchaseID:     purchaseID,
		SupplierID:     req.SupplierID,
		UserID:         creatorUserID,
		PurchaseDate:   purchaseDate,
		TotalAmount:    totalAmount,
		DiscountAmount: headerDiscount,
		TaxAmount:      headerTax,
		FinalAmount:    totalAmount.Sub(headerDiscount).Add(headerTax).Round(2),
		Status:         req.Status,
		Notes:          req.Notes,
		AuditFields:    audit,
	}

	saved, err := s.purchaseRepo.SavePurchase(ctx, purchase, details, effects, domain.AbortOnShortfall)
	if err != nil {
		logger.Error("Failed to save purchase", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}
	saved.Details = details

	logger.Info("Purchase created",
		slog.String("purchase_id", saved.PurchaseID),
		slog.String("purchase_number", saved.PurchaseNumber),
		slog.String("status", string(saved.Status)))
	return saved, nil
}

// GetPurchaseByID retrieves a purchase with its line items.
func (s *purchaseService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	details, err := s.purchaseRepo.FindPurchaseDetails(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchase details: %w", err)
	}
	purchase.Details = details
	return purchase, nil
}

// ListPurchases retrieves a paginated, filtered list of purchases.
func (s *purchaseService) ListPurchases(ctx context.Context, params dto.ListPurchasesParams) ([]domain.Purchase, error) {
	filter := portsrepo.ListPurchasesFilter{SupplierID: params.SupplierID}
	if params.Status != nil {
		st := domain.PurchaseStatus(*params.Status)
		filter.Status = &st
	}
	purchases, err := s.purchaseRepo.FindPurchases(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

// UpdatePurchase applies a status transition with its stock effects, or a
// plain notes update when the status is absent or unchanged.
func (s *purchaseService) UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest, requestingUserID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}

	now := time.Now().UTC()
	from := purchase.Status
	var effects []domain.StockEffect
	policy := domain.AbortOnShortfall

	if req.Status != nil && *req.Status != purchase.Status {
		next := *req.Status
		if !purchase.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: purchase cannot transition from %s to %s", apperrors.ErrConflict, purchase.Status, next)
		}

		details, err := s.purchaseRepo.FindPurchaseDetails(ctx, purchaseID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch purchase details: %w", err)
		}

		switch {
		case purchase.Status == domain.PurchasePending && next == domain.PurchaseReceived:
			for _, d := range details {
				effects = append(effects, domain.StockEffect{
					ProductID:    d.ProductID,
					MovementType: domain.MovementIn,
					Quantity:     d.Quantity,
					Reference:    domain.PurchaseRef(purchaseID),
					BatchNumber:  d.BatchNumber,
					ExpiryDate:   d.ExpiryDate,
				})
			}
		case purchase.Status == domain.PurchaseReceived && next == domain.PurchaseCancelled:
			// Reversal keeps the shipped behavior: lines whose stock already
			// left through sales are skipped rather than failing the cancel.
			policy = domain.SkipOnShortfall
			for _, d := range details {
				effects = append(effects, domain.StockEffect{
					ProductID:    d.ProductID,
					MovementType: domain.MovementOut,
					Quantity:     d.Quantity,
					Reference:    domain.PurchaseRef(purchaseID),
				})
			}
		}
		// pending -> cancelled moves no stock.
		purchase.Status = next
	}

	if req.Notes != nil {
		purchase.Notes = *req.Notes
	}
	purchase.LastUpdatedAt = now
	purchase.LastUpdatedBy = requestingUserID

	if err := s.purchaseRepo.UpdatePurchaseStatus(ctx, *purchase, from, effects, policy); err != nil {
		logger.Error("Failed to update purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("failed to update purchase: %w", err)
	}

	details, err := s.purchaseRepo.FindPurchaseDetails(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchase details: %w", err)
	}
	purchase.Details = details

	logger.Info("Purchase updated", slog.String("purchase_id", purchaseID), slog.String("status", string(purchase.Status)))
	return purchase, nil
}

// DeletePurchase removes a still-pending purchase. Pending purchases never
// moved stock, so deletion has no ledger effect.
func (s *purchaseService) DeletePurchase(ctx context.Context, purchaseID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	if purchase.Status != domain.PurchasePending {
		return fmt.Errorf("%w: cannot delete purchase with status: %s", apperrors.ErrConflict, purchase.Status)
	}

	if err := s.purchaseRepo.DeletePurchase(ctx, purchaseID); err != nil {
		logger.Error("Failed to delete purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	logger.Info("Purchase deleted", slog.String("purchase_id", purchaseID))
	return nil
}

// uniqueStrings returns input with duplicates removed, preserving order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, s := range input {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			result = append(result, s)
		}
	}
	return result
}
