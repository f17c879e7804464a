package repositories

import (
	"context"
	"time"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
)

// ListMovementsFilter narrows movement listings.
type ListMovementsFilter struct {
	ProductID     *string
	MovementType  *domain.MovementType
	ReferenceKind *domain.ReferenceKind
}

// MovementReader defines read operations for the stock ledger
type MovementReader interface {
	// FindMovementByID retrieves a specific movement by its ID.
	FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error)

	// FindMovements retrieves a paginated, filtered list of movements, newest first.
	FindMovements(ctx context.Context, filter ListMovementsFilter, limit int, offset int) ([]domain.StockMovement, error)
}

// MovementWriter defines write operations for the stock ledger. The ledger is
// append-only: rows are inserted by ApplyMovement or by document repositories,
// and only notes may change afterwards. There is deliberately no delete method.
type MovementWriter interface {
	// ApplyMovement atomically applies a manual movement: it locks the product
	// row, verifies sufficiency for out movements, adjusts stock and inserts
	// the ledger row. When targetStock is non-nil the movement is an absolute
	// adjustment: the repository computes the difference against current stock
	// under lock and stores the movement normalized to in/out with the absolute
	// difference as quantity. The persisted movement is returned.
	ApplyMovement(ctx context.Context, movement domain.StockMovement, targetStock *int64) (*domain.StockMovement, error)

	// UpdateMovementNotes amends the free-text notes of a movement.
	UpdateMovementNotes(ctx context.Context, movementID string, notes string, updatedBy string, updatedAt time.Time) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
