package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnStatus indicates the state of a sale return document.
type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "pending"
	ReturnApproved ReturnStatus = "approved"
	ReturnRejected ReturnStatus = "rejected"
)

// SaleReturn represents a sale return document row.
type SaleReturn struct {
	ReturnID          string          `db:"return_id"`
	ReturnNumber      string          `db:"return_number"`
	SaleID            string          `db:"sale_id"`
	CustomerID        *string         `db:"customer_id"` // Nullable FK
	UserID            string          `db:"user_id"`
	ReturnDate        time.Time       `db:"return_date"`
	TotalReturnAmount decimal.Decimal `db:"total_return_amount"`
	Reason            string          `db:"reason"`
	Status            ReturnStatus    `db:"status"`
	AuditFields
}

// SaleReturnDetail represents a sale return line item row.
type SaleReturnDetail struct {
	DetailID   string          `db:"detail_id"`
	ReturnID   string          `db:"return_id"`
	ProductID  string          `db:"product_id"`
	Quantity   int64           `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price"`
	Reason     string          `db:"reason"`
	AuditFields
}
