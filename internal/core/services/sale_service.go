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

// saleService coordinates sale documents. Stock leaves at creation time, so
// every create carries an out effect per line and the repository aborts the
// whole transaction on the first insufficient line.
type saleService struct {
	saleRepo     portsrepo.SaleRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewSaleService creates a new sale service.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CreateSale validates the payload, computes totals and persists the sale.
// The stock decrement happens per line, in input order, inside the repository
// transaction.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}
	if !req.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, req.PaymentStatus)
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID); err != nil {
			return nil, fmt.Errorf("customer %s: %w", *req.CustomerID, err)
		}
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, uniqueStrings(productIDs))
	if err != nil {
		logger.Error("Failed to fetch products for sale", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	for _, id := range productIDs {
		if _, ok := products[id]; !ok {
			return nil, fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
		}
	}

	now := time.Now().UTC()
	saleID := uuid.NewString()
	saleDate := now
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	totalAmount := decimal.Zero
	details := make([]domain.SaleDetail, len(req.Items))
	effects := make([]domain.StockEffect, len(req.Items))
	for i, item := range req.Items {
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative for product %s", apperrors.ErrValidation, item.ProductID)
		}
		lineDiscount := derefDecimal(item.DiscountAmount)
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)).Sub(lineDiscount).Round(2)
		totalAmount = totalAmount.Add(lineTotal)

		details[i] = domain.SaleDetail{
			DetailID:       uuid.NewString(),
			SaleID:         saleID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice.Round(2),
			DiscountAmount: lineDiscount,
			TotalPrice:     lineTotal,
			BatchNumber:    item.BatchNumber,
			ExpiryDate:     item.ExpiryDate,
			AuditFields:    audit,
		}
		effects[i] = domain.StockEffect{
			ProductID:    item.ProductID,
			MovementType: domain.MovementOut,
			Quantity:     item.Quantity,
			Reference:    domain.SaleRef(saleID),
			BatchNumber:  item.BatchNumber,
			ExpiryDate:   item.ExpiryDate,
		}
	}

	headerDiscount := derefDecimal(req.DiscountAmount)
	headerTax := derefDecimal(req.TaxAmount)
	sale := domain.Sale{
		SaleID:         saleID,
		CustomerID:     req.CustomerID,
		UserID:         creatorUserID,
		SaleDate:       saleDate,
		TotalAmount:    totalAmount,
		DiscountAmount: headerDiscount,
		TaxAmount:      headerTax,
		FinalAmount:    totalAmount.Sub(headerDiscount).Add(headerTax).Round(2),
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  req.PaymentStatus,
		Notes:          req.Notes,
		AuditFields:    audit,
	}

	saved, err := s.saleRepo.SaveSale(ctx, sale, details, effects)
	if err != nil {
		logger.Warn("Failed to save sale", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}
	saved.Details = details

	logger.Info("Sale created",
		slog.String("sale_id", saved.SaleID),
		slog.String("sale_number", saved.SaleNumber),
		slog.String("payment_status", string(saved.PaymentStatus)))
	return saved, nil
}

// GetSaleByID retrieves a sale with its line items.
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	details, err := s.saleRepo.FindSaleDetails(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sale details: %w", err)
	}
	sale.Details = details
	return sale, nil
}

// ListSales retrieves a paginated, filtered list of sales.
func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error) {
	filter := portsrepo.ListSalesFilter{CustomerID: params.CustomerID}
	if params.PaymentStatus != nil {
		st := domain.PaymentStatus(*params.PaymentStatus)
		filter.PaymentStatus = &st
	}
	sales, err := s.saleRepo.FindSales(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

// UpdateSale changes payment status and notes. Payment transitions follow
// the explicit table; stock never moves here because it left at creation.
func (s *saleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, requestingUserID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}

	from := sale.PaymentStatus
	if req.PaymentStatus != nil && *req.PaymentStatus != sale.PaymentStatus {
		next := *req.PaymentStatus
		if !sale.PaymentStatus.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: sale payment cannot transition from %s to %s", apperrors.ErrConflict, sale.PaymentStatus, next)
		}
		sale.PaymentStatus = next
	}
	if req.Notes != nil {
		sale.Notes = *req.Notes
	}
	sale.LastUpdatedAt = time.Now().UTC()
	sale.LastUpdatedBy = requestingUserID

	if err := s.saleRepo.UpdateSale(ctx, *sale, from); err != nil {
		logger.Error("Failed to update sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	details, err := s.saleRepo.FindSaleDetails(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sale details: %w", err)
	}
	sale.Details = details
	return sale, nil
}

// DeleteSale removes a payment-pending sale. Creation moved stock out, so
// deletion restores it with a compensating in movement per line.
func (s *saleService) DeleteSale(ctx context.Context, saleID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	if sale.PaymentStatus != domain.PaymentPending {
		return fmt.Errorf("%w: cannot delete sale with payment status: %s", apperrors.ErrConflict, sale.PaymentStatus)
	}

	details, err := s.saleRepo.FindSaleDetails(ctx, saleID)
	if err != nil {
		return fmt.Errorf("failed to fetch sale details: %w", err)
	}

	effects := make([]domain.StockEffect, len(details))
	for i, d := range details {
		effects[i] = domain.StockEffect{
			ProductID:    d.ProductID,
			MovementType: domain.MovementIn,
			Quantity:     d.Quantity,
			Reference:    domain.SaleRef(saleID),
		}
	}

	if err := s.saleRepo.DeleteSale(ctx, saleID, effects, requestingUserID); err != nil {
		logger.Error("Failed to delete sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	logger.Info("Sale deleted, stock restored", slog.String("sale_id", saleID))
	return nil
}
