package models

import "time"

// MovementType indicates the direction of a stock movement row.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// StockMovement represents one immutable stock ledger row. ReferenceType and
// ReferenceID record the document that caused the movement; manual adjustments
// have a nil ReferenceID.
type StockMovement struct {
	MovementID    string       `db:"movement_id"`
	ProductID     string       `db:"product_id"`
	MovementType  MovementType `db:"movement_type"`
	Quantity      int64        `db:"quantity"`
	ReferenceType string       `db:"reference_type"`
	ReferenceID   *string      `db:"reference_id"`
	BatchNumber   string       `db:"batch_number"`
	ExpiryDate    *time.Time   `db:"expiry_date"`
	Notes         string       `db:"notes"`
	UserID        string       `db:"user_id"`
	MovementDate  time.Time    `db:"movement_date"`
	AuditFields
}
