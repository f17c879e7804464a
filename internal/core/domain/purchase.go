package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus is the state of a purchase document.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseReceived  PurchaseStatus = "received"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

// purchaseTransitions is the explicit transition table. Any transition not
// listed here is rejected with a conflict.
var purchaseTransitions = map[PurchaseStatus][]PurchaseStatus{
	PurchasePending:  {PurchaseReceived, PurchaseCancelled},
	PurchaseReceived: {PurchaseCancelled},
}

// CanTransitionTo reports whether the status machine allows moving to next.
func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	for _, allowed := range purchaseTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known purchase statuses.
func (s PurchaseStatus) Valid() bool {
	switch s {
	case PurchasePending, PurchaseReceived, PurchaseCancelled:
		return true
	}
	return false
}

// Purchase is a stock-in document: goods bought from a supplier. Stock enters
// when the document is (or becomes) received, never while pending.
type Purchase struct {
	PurchaseID     string          `json:"purchaseID"` // Primary Key (UUID)
	PurchaseNumber string          `json:"purchaseNumber"`
	SupplierID     string          `json:"supplierID"`
	UserID         string          `json:"userID"`
	PurchaseDate   time.Time       `json:"purchaseDate"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	Status         PurchaseStatus  `json:"status"`
	Notes          string          `json:"notes"`
	AuditFields
	Details []PurchaseDetail `json:"details,omitempty"`
}

// PurchaseDetail is one line item of a purchase.
type PurchaseDetail struct {
	DetailID       string          `json:"detailID"` // Primary Key (UUID)
	PurchaseID     string          `json:"purchaseID"`
	ProductID      string          `json:"productID"`
	Quantity       int64           `json:"quantity"` // >= 1
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalPrice     decimal.Decimal `json:"totalPrice"` // unit_price*quantity - discount
	BatchNumber    string          `json:"batchNumber"`
	ExpiryDate     *time.Time      `json:"expiryDate"`
	AuditFields
}
