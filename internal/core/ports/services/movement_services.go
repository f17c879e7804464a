package services

import (
	"context"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
)

// MovementSvcFacade defines the service surface for the stock ledger.
type MovementSvcFacade interface {
	// CreateMovement records a manual movement and applies its stock delta
	// atomically. Out movements that would underflow fail with
	// ErrInsufficientStock.
	CreateMovement(ctx context.Context, req dto.CreateMovementRequest, actorUserID string) (*domain.StockMovement, error)

	// GetMovementByID retrieves a movement by ID.
	GetMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error)

	// ListMovements retrieves a paginated, filtered list of movements, newest first.
	ListMovements(ctx context.Context, params dto.ListMovementsParams) ([]domain.StockMovement, error)

	// UpdateMovementNotes amends the notes of a movement. Nothing else on a
	// movement is mutable.
	UpdateMovementNotes(ctx context.Context, movementID string, req dto.UpdateMovementRequest, requestingUserID string) (*domain.StockMovement, error)

	// DeleteMovement always fails with ErrForbidden: the ledger is append-only.
	DeleteMovement(ctx context.Context, movementID string) error
}
