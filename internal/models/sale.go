package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how a sale was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// PaymentStatus indicates the payment state of a sale.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Sale represents a sale document row.
type Sale struct {
	SaleID         string          `db:"sale_id"`
	SaleNumber     string          `db:"sale_number"`
	CustomerID     *string         `db:"customer_id"` // Nullable FK
	UserID         string          `db:"user_id"`
	SaleDate       time.Time       `db:"sale_date"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	FinalAmount    decimal.Decimal `db:"final_amount"`
	PaymentMethod  PaymentMethod   `db:"payment_method"`
	PaymentStatus  PaymentStatus   `db:"payment_status"`
	Notes          string          `db:"notes"`
	AuditFields
}

// SaleDetail represents a sale line item row.
type SaleDetail struct {
	DetailID       string          `db:"detail_id"`
	SaleID         string          `db:"sale_id"`
	ProductID      string          `db:"product_id"`
	Quantity       int64           `db:"quantity"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	TotalPrice     decimal.Decimal `db:"total_price"`
	BatchNumber    string          `db:"batch_number"`
	ExpiryDate     *time.Time      `db:"expiry_date"`
	AuditFields
}
