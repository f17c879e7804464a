package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
	"github.com/pharmindo/pharmacy_inventory_app/internal/middleware"
)

// movementService provides the manual entry point into the stock ledger and
// read access to it. Document-driven movements are written by the document
// services; this one covers direct in/out corrections and absolute adjustments.
type movementService struct {
	movementRepo portsrepo.MovementRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
}

// NewMovementService creates a new movement service.
func NewMovementService(movementRepo portsrepo.MovementRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade) portssvc.MovementSvcFacade {
	return &movementService{
		movementRepo: movementRepo,
		productRepo:  productRepo,
	}
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// CreateMovement records a manual movement. For type adjustment the caller
// supplies the absolute target stock; the repository computes the signed
// difference under the product row lock so concurrent writers cannot skew it.
func (s *movementService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest, actorUserID string) (*domain.StockMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.productRepo.FindProductByID(ctx, req.ProductID); err != nil {
		return nil, fmt.Errorf("product %s: %w", req.ProductID, err)
	}

	var targetStock *int64
	if req.MovementType == domain.MovementAdjustment {
		if req.NewStockAmount == nil {
			return nil, fmt.Errorf("%w: newStockAmount is required for adjustment movements", apperrors.ErrValidation)
		}
		targetStock = req.NewStockAmount
	}

	now := time.Now().UTC()
	movementDate := now
	if req.MovementDate != nil {
		movementDate = *req.MovementDate
	}

	movement := domain.StockMovement{
		MovementID:   uuid.NewString(),
		ProductID:    req.ProductID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Reference:    domain.ManualRef(),
		BatchNumber:  req.BatchNumber,
		ExpiryDate:   req.ExpiryDate,
		Notes:        req.Notes,
		UserID:       actorUserID,
		MovementDate: movementDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	applied, err := s.movementRepo.ApplyMovement(ctx, movement, targetStock)
	if err != nil {
		logger.Warn("Failed to apply manual movement", slog.String("error", err.Error()), slog.String("product_id", req.ProductID))
		return nil, fmt.Errorf("failed to apply movement: %w", err)
	}

	logger.Info("Manual stock movement recorded",
		slog.String("movement_id", applied.MovementID),
		slog.String("product_id", applied.ProductID),
		slog.String("movement_type", string(applied.MovementType)),
		slog.Int64("quantity", applied.Quantity))
	return applied, nil
}

func (s *movementService) GetMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}
	return movement, nil
}

func (s *movementService) ListMovements(ctx context.Context, params dto.ListMovementsParams) ([]domain.StockMovement, error) {
	filter := portsrepo.ListMovementsFilter{ProductID: params.ProductID}
	if params.MovementType != nil {
		mt := domain.MovementType(*params.MovementType)
		filter.MovementType = &mt
	}
	if params.ReferenceKind != nil {
		rk := domain.ReferenceKind(*params.ReferenceKind)
		filter.ReferenceKind = &rk
	}

	movements, err := s.movementRepo.FindMovements(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// UpdateMovementNotes amends the notes of a movement. Every other field of a
// ledger row is immutable.
func (s *movementService) UpdateMovementNotes(ctx context.Context, movementID string, req dto.UpdateMovementRequest, requestingUserID string) (*domain.StockMovement, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}

	if req.Notes == nil {
		return movement, nil
	}

	now := time.Now().UTC()
	if err := s.movementRepo.UpdateMovementNotes(ctx, movementID, *req.Notes, requestingUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update movement notes: %w", err)
	}
	movement.Notes = *req.Notes
	movement.LastUpdatedAt = now
	movement.LastUpdatedBy = requestingUserID
	return movement, nil
}

// DeleteMovement always refuses: the ledger is the audit trail.
func (s *movementService) DeleteMovement(ctx context.Context, movementID string) error {
	return fmt.Errorf("stock movements cannot be deleted to maintain data integrity: %w", apperrors.ErrForbidden)
}
