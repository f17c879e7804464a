package domain

import "time"

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

// ReferenceKind names the kind of business event that caused a movement.
type ReferenceKind string

const (
	RefSale       ReferenceKind = "sale"
	RefPurchase   ReferenceKind = "purchase"
	RefReturn     ReferenceKind = "return"
	RefAdjustment ReferenceKind = "adjustment"
)

// MovementRef is the tagged reference from a movement back to the document
// that caused it. Manual adjustments carry no document, so ID is nil exactly
// when Kind == RefAdjustment originated outside a document.
type MovementRef struct {
	Kind ReferenceKind `json:"kind"`
	ID   *string       `json:"id,omitempty"`
}

// SaleRef references the sale that caused a movement.
func SaleRef(saleID string) MovementRef {
	return MovementRef{Kind: RefSale, ID: &saleID}
}

// PurchaseRef references the purchase that caused a movement.
func PurchaseRef(purchaseID string) MovementRef {
	return MovementRef{Kind: RefPurchase, ID: &purchaseID}
}

// ReturnRef references the sale return that caused a movement.
func ReturnRef(returnID string) MovementRef {
	return MovementRef{Kind: RefReturn, ID: &returnID}
}

// ManualRef marks a movement entered directly, with no parent document.
func ManualRef() MovementRef {
	return MovementRef{Kind: RefAdjustment}
}

// StockMovement is one immutable ledger entry: a single stock delta and its
// cause. Only Notes may be amended after creation; deletion is always refused.
type StockMovement struct {
	MovementID   string       `json:"movementID"` // Primary Key (UUID)
	ProductID    string       `json:"productID"`
	MovementType MovementType `json:"movementType"`
	Quantity     int64        `json:"quantity"` // Always positive; direction is MovementType
	Reference    MovementRef  `json:"reference"`
	BatchNumber  string       `json:"batchNumber"`
	ExpiryDate   *time.Time   `json:"expiryDate"`
	Notes        string       `json:"notes"`
	UserID       string       `json:"userID"` // Acting operator
	MovementDate time.Time    `json:"movementDate"`
	AuditFields
}

// SignedQuantity is the movement's effect on stock: positive for in, negative
// for out. Adjustment rows are normalized to in/out before persistence, so the
// default branch is unreachable for stored movements.
func (m StockMovement) SignedQuantity() int64 {
	switch m.MovementType {
	case MovementIn:
		return m.Quantity
	case MovementOut:
		return -m.Quantity
	default:
		return 0
	}
}
