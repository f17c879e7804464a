package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus indicates the state of a purchase document.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseReceived  PurchaseStatus = "received"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

// Purchase represents a purchase document row.
type Purchase struct {
	PurchaseID     string          `db:"purchase_id"`
	PurchaseNumber string          `db:"purchase_number"`
	SupplierID     string          `db:"supplier_id"`
	UserID         string          `db:"user_id"`
	PurchaseDate   time.Time       `db:"purchase_date"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	FinalAmount    decimal.Decimal `db:"final_amount"`
	Status         PurchaseStatus  `db:"status"`
	Notes          string          `db:"notes"`
	AuditFields
}

// PurchaseDetail represents a purchase line item row.
type PurchaseDetail struct {
	DetailID       string          `db:"detail_id"`
	PurchaseID     string          `db:"purchase_id"`
	ProductID      string          `db:"product_id"`
	Quantity       int64           `db:"quantity"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	TotalPrice     decimal.Decimal `db:"total_price"`
	BatchNumber    string          `db:"batch_number"`
	ExpiryDate     *time.Time      `db:"expiry_date"`
	AuditFields
}
