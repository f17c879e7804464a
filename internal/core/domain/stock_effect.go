package domain

import "time"

// ShortfallPolicy decides what happens when an out-direction effect finds less
// stock than it needs while a document operation is being applied.
type ShortfallPolicy int

const (
	// AbortOnShortfall fails the whole enclosing transaction. Used by sale
	// creation and manual out movements.
	AbortOnShortfall ShortfallPolicy = iota
	// SkipOnShortfall leaves the short line's stock untouched and records no
	// movement for it, but lets the rest of the operation proceed. This is the
	// shipped behavior of purchase cancellation and return rejection.
	SkipOnShortfall
)

// StockEffect is one planned stock mutation computed by a document service and
// executed by the repository inside the document's transaction. Effects are
// applied strictly in slice order.
type StockEffect struct {
	ProductID    string
	MovementType MovementType // MovementIn or MovementOut
	Quantity     int64        // Positive
	Reference    MovementRef
	BatchNumber  string
	ExpiryDate   *time.Time
	// UpdateProductBatch copies BatchNumber/ExpiryDate onto the product row,
	// used when receiving purchase lines that carry batch metadata.
	UpdateProductBatch bool
}

// ToMovement materializes the ledger entry for an effect.
func (e StockEffect) ToMovement(movementID, userID string, now time.Time) StockMovement {
	return StockMovement{
		MovementID:   movementID,
		ProductID:    e.ProductID,
		MovementType: e.MovementType,
		Quantity:     e.Quantity,
		Reference:    e.Reference,
		BatchNumber:  e.BatchNumber,
		ExpiryDate:   e.ExpiryDate,
		UserID:       userID,
		MovementDate: now,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}
