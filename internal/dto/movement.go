package dto

import (
	"time"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
)

// CreateMovementRequest defines the data needed to record a manual stock
// movement. For movement type adjustment the caller supplies NewStockAmount,
// the absolute target stock; the recorded movement is normalized to in/out
// with the computed difference as quantity.
type CreateMovementRequest struct {
	ProductID      string              `json:"productID" binding:"required"`
	MovementType   domain.MovementType `json:"movementType" binding:"required,oneof=in out adjustment"`
	Quantity       int64               `json:"quantity" binding:"required,min=1"`
	NewStockAmount *int64              `json:"newStockAmount" binding:"omitempty,min=0"`
	BatchNumber    string              `json:"batchNumber" binding:"max=255"`
	ExpiryDate     *time.Time          `json:"expiryDate"`
	Notes          string              `json:"notes"`
	MovementDate   *time.Time          `json:"movementDate"`
}

// UpdateMovementRequest defines the data allowed for amending a movement.
// Movements are audit records: only notes may change.
type UpdateMovementRequest struct {
	Notes *string `json:"notes"`
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	Limit         int     `form:"limit,default=20"`
	Offset        int     `form:"offset,default=0"`
	ProductID     *string `form:"productID"`
	MovementType  *string `form:"movementType" binding:"omitempty,oneof=in out adjustment"`
	ReferenceKind *string `form:"referenceType" binding:"omitempty,oneof=sale purchase return adjustment"`
}

// MovementResponse defines the data returned for a stock movement.
type MovementResponse struct {
	MovementID    string              `json:"movementID"`
	ProductID     string              `json:"productID"`
	MovementType  domain.MovementType `json:"movementType"`
	Quantity      int64               `json:"quantity"`
	ReferenceType string              `json:"referenceType"`
	ReferenceID   *string             `json:"referenceID,omitempty"`
	BatchNumber   string              `json:"batchNumber"`
	ExpiryDate    *time.Time          `json:"expiryDate,omitempty"`
	Notes         string              `json:"notes"`
	UserID        string              `json:"userID"`
	MovementDate  time.Time           `json:"movementDate"`
}

// ToMovementResponse converts a domain.StockMovement to MovementResponse DTO
func ToMovementResponse(m *domain.StockMovement) MovementResponse {
	return MovementResponse{
		MovementID:    m.MovementID,
		ProductID:     m.ProductID,
		MovementType:  m.MovementType,
		Quantity:      m.Quantity,
		ReferenceType: string(m.Reference.Kind),
		ReferenceID:   m.Reference.ID,
		BatchNumber:   m.BatchNumber,
		ExpiryDate:    m.ExpiryDate,
		Notes:         m.Notes,
		UserID:        m.UserID,
		MovementDate:  m.MovementDate,
	}
}

// ListMovementsResponse wraps the list of movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
}

// ToListMovementsResponse converts a slice of domain.StockMovement to ListMovementsResponse DTO
func ToListMovementsResponse(movements []domain.StockMovement) ListMovementsResponse {
	res := make([]MovementResponse, len(movements))
	for i, m := range movements {
		res[i] = ToMovementResponse(&m)
	}
	return ListMovementsResponse{Movements: res}
}
