package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentTransfer
}

// PaymentStatus is the payment state of a sale. Stock leaves at creation time
// regardless of payment status; status changes never move stock.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentCancelled},
	PaymentPaid:    {PaymentCancelled},
}

// CanTransitionTo reports whether the payment status machine allows moving to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// Sale is a stock-out document: goods leaving at point of sale. Each line
// decrements stock at creation; deleting a still-pending sale restores it.
type Sale struct {
	SaleID         string          `json:"saleID"` // Primary Key (UUID)
	SaleNumber     string          `json:"saleNumber"`
	CustomerID     *string         `json:"customerID"` // Nullable, walk-in sales have none
	UserID         string          `json:"userID"`
	SaleDate       time.Time       `json:"saleDate"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	Notes          string          `json:"notes"`
	AuditFields
	Details []SaleDetail `json:"details,omitempty"`
}

// SaleDetail is one line item of a sale.
type SaleDetail struct {
	DetailID       string          `json:"detailID"` // Primary Key (UUID)
	SaleID         string          `json:"saleID"`
	ProductID      string          `json:"productID"`
	Quantity       int64           `json:"quantity"` // >= 1
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalPrice     decimal.Decimal `json:"totalPrice"` // unit_price*quantity - discount
	BatchNumber    string          `json:"batchNumber"`
	ExpiryDate     *time.Time      `json:"expiryDate"`
	AuditFields
}
