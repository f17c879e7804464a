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

// saleReturnService coordinates sale return documents. Every return line is
// matched against the original sale line and capped by the quantity not yet
// returned across all non-rejected returns of that sale.
type saleReturnService struct {
	returnRepo portsrepo.SaleReturnRepositoryFacade
	saleRepo   portsrepo.SaleRepositoryFacade
}

// NewSaleReturnService creates a new sale return service.
func NewSaleReturnService(returnRepo portsrepo.SaleReturnRepositoryFacade, saleRepo portsrepo.SaleRepositoryFacade) portssvc.SaleReturnSvcFacade {
	return &saleReturnService{
		returnRepo: returnRepo,
		saleRepo:   saleRepo,
	}
}

var _ portssvc.SaleReturnSvcFacade = (*saleReturnService)(nil)

// CreateSaleReturn validates return lines against the original sale, enforces
// the over-return limit and persists the document. Creating directly as
// approved applies the stock-in movements in the same transaction.
func (s *saleReturnService) CreateSaleReturn(ctx context.Context, req dto.CreateSaleReturnRequest, creatorUserID string) (*domain.SaleReturn, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown return status %q", apperrors.ErrValidation, req.Status)
	}

	sale, err := s.saleRepo.FindSaleByID(ctx, req.SaleID)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", req.SaleID, err)
	}
	saleDetails, err := s.saleRepo.FindSaleDetails(ctx, req.SaleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sale details: %w", err)
	}
	saleLineByProduct := make(map[string]domain.SaleDetail, len(saleDetails))
	for _, d := range saleDetails {
		saleLineByProduct[d.ProductID] = d
	}

	alreadyReturned, err := s.returnRepo.SumReturnedQuantities(ctx, req.SaleID)
	if err != nil {
		logger.Error("Failed to sum returned quantities", slog.String("error", err.Error()), slog.String("sale_id", req.SaleID))
		return nil, fmt.Errorf("failed to check prior returns: %w", err)
	}

	now := time.Now().UTC()
	returnID := uuid.NewString()
	returnDate := now
	if req.ReturnDate != nil {
		returnDate = *req.ReturnDate
	}
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	// Lines are validated and built strictly in input order.
	totalReturnAmount := decimal.Zero
	details := make([]domain.SaleReturnDetail, len(req.Items))
	effects := make([]domain.StockEffect, 0, len(req.Items))
	for i, item := range req.Items {
		saleLine, ok := saleLineByProduct[item.ProductID]
		if !ok {
			return nil, &apperrors.LineNotFoundError{ProductID: item.ProductID, SaleID: req.SaleID}
		}
		if alreadyReturned[item.ProductID]+item.Quantity > saleLine.Quantity {
			return nil, &apperrors.OverReturnError{
				ProductID: item.ProductID,
				Sold:      saleLine.Quantity,
				Returned:  alreadyReturned[item.ProductID],
				Requested: item.Quantity,
			}
		}
		// Repeated lines for one product share the cap across the request.
		alreadyReturned[item.ProductID] += item.Quantity

		// Unit price always comes from the original sale line.
		lineTotal := saleLine.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)).Round(2)
		totalReturnAmount = totalReturnAmount.Add(lineTotal)

		details[i] = domain.SaleReturnDetail{
			DetailID:    uuid.NewString(),
			ReturnID:    returnID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   saleLine.UnitPrice,
			TotalPrice:  lineTotal,
			Reason:      item.Reason,
			AuditFields: audit,
		}

		if req.Status == domain.ReturnApproved {
			effects = append(effects, domain.StockEffect{
				ProductID:    item.ProductID,
				MovementType: domain.MovementIn,
				Quantity:     item.Quantity,
				Reference:    domain.ReturnRef(returnID),
			})
		}
	}

	ret := domain.SaleReturn{
		ReturnID:          returnID,
		SaleID:            req.SaleID,
		CustomerID:        sale.CustomerID,
		UserID:            creatorUserID,
		ReturnDate:        returnDate,
		TotalReturnAmount: totalReturnAmount,
		Reason:            req.Reason,
		Status:            req.Status,
		AuditFields:       audit,
	}

	saved, err := s.returnRepo.SaveSaleReturn(ctx, ret, details, effects, domain.AbortOnShortfall)
	if err != nil {
		logger.Error("Failed to save sale return", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save sale return: %w", err)
	}
	saved.Details = details

	logger.Info("Sale return created",
		slog.String("return_id", saved.ReturnID),
		slog.String("return_number", saved.ReturnNumber),
		slog.String("status", string(saved.Status)))
	return saved, nil
}

// GetSaleReturnByID retrieves a return with its line items.
func (s *saleReturnService) GetSaleReturnByID(ctx context.Context, returnID string) (*domain.SaleReturn, error) {
	ret, err := s.returnRepo.FindSaleReturnByID(ctx, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale return %s: %w", returnID, err)
	}
	details, err := s.returnRepo.FindSaleReturnDetails(ctx, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch return details: %w", err)
	}
	ret.Details = details
	return ret, nil
}

// ListSaleReturns retrieves a paginated, filtered list of returns.
func (s *saleReturnService) ListSaleReturns(ctx context.Context, params dto.ListSaleReturnsParams) ([]domain.SaleReturn, error) {
	filter := portsrepo.ListSaleReturnsFilter{SaleID: params.SaleID}
	if params.Status != nil {
		st := domain.ReturnStatus(*params.Status)
		filter.Status = &st
	}
	returns, err := s.returnRepo.FindSaleReturns(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sale returns: %w", err)
	}
	return returns, nil
}

// UpdateSaleReturn applies a status transition with its stock effects, or a
// plain reason update when the status is absent or unchanged.
func (s *saleReturnService) UpdateSaleReturn(ctx context.Context, returnID string, req dto.UpdateSaleReturnRequest, requestingUserID string) (*domain.SaleReturn, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ret, err := s.returnRepo.FindSaleReturnByID(ctx, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale return %s: %w", returnID, err)
	}

	from := ret.Status
	var effects []domain.StockEffect
	policy := domain.AbortOnShortfall

	if req.Status != nil && *req.Status != ret.Status {
		next := *req.Status
		if !ret.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: sale return cannot transition from %s to %s", apperrors.ErrConflict, ret.Status, next)
		}

		details, err := s.returnRepo.FindSaleReturnDetails(ctx, returnID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch return details: %w", err)
		}

		switch {
		case ret.Status == domain.ReturnPending && next == domain.ReturnApproved:
			for _, d := range details {
				effects = append(effects, domain.StockEffect{
					ProductID:    d.ProductID,
					MovementType: domain.MovementIn,
					Quantity:     d.Quantity,
					Reference:    domain.ReturnRef(returnID),
				})
			}
		case ret.Status == domain.ReturnApproved && next == domain.ReturnRejected:
			// Reversal keeps the shipped behavior: lines whose stock already
			// left again are skipped rather than failing the rejection.
			policy = domain.SkipOnShortfall
			for _, d := range details {
				effects = append(effects, domain.StockEffect{
					ProductID:    d.ProductID,
					MovementType: domain.MovementOut,
					Quantity:     d.Quantity,
					Reference:    domain.ReturnRef(returnID),
				})
			}
		}
		// pending -> rejected moves no stock.
		ret.Status = next
	}

	if req.Reason != nil {
		ret.Reason = *req.Reason
	}
	ret.LastUpdatedAt = time.Now().UTC()
	ret.LastUpdatedBy = requestingUserID

	if err := s.returnRepo.UpdateSaleReturnStatus(ctx, *ret, from, effects, policy); err != nil {
		logger.Error("Failed to update sale return", slog.String("error", err.Error()), slog.String("return_id", returnID))
		return nil, fmt.Errorf("failed to update sale return: %w", err)
	}

	details, err := s.returnRepo.FindSaleReturnDetails(ctx, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch return details: %w", err)
	}
	ret.Details = details

	logger.Info("Sale return updated", slog.String("return_id", returnID), slog.String("status", string(ret.Status)))
	return ret, nil
}

// DeleteSaleReturn removes a still-pending return. Pending returns never moved
// stock, so deletion has no ledger effect.
func (s *saleReturnService) DeleteSaleReturn(ctx context.Context, returnID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	ret, err := s.returnRepo.FindSaleReturnByID(ctx, returnID)
	if err != nil {
		return fmt.Errorf("failed to find sale return %s: %w", returnID, err)
	}
	if ret.Status != domain.ReturnPending {
		return fmt.Errorf("%w: cannot delete sale return with status: %s", apperrors.ErrConflict, ret.Status)
	}

	if err := s.returnRepo.DeleteSaleReturn(ctx, returnID); err != nil {
		logger.Error("Failed to delete sale return", slog.String("error", err.Error()), slog.String("return_id", returnID))
		return fmt.Errorf("failed to delete sale return: %w", err)
	}
	logger.Info("Sale return deleted", slog.String("return_id", returnID))
	return nil
}
