package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnStatus is the state of a sale return document.
type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "pending"
	ReturnApproved ReturnStatus = "approved"
	ReturnRejected ReturnStatus = "rejected"
)

var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnPending:  {ReturnApproved, ReturnRejected},
	ReturnApproved: {ReturnRejected},
}

// CanTransitionTo reports whether the return status machine allows moving to next.
func (s ReturnStatus) CanTransitionTo(next ReturnStatus) bool {
	for _, allowed := range returnTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known return statuses.
func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnPending, ReturnApproved, ReturnRejected:
		return true
	}
	return false
}

// SaleReturn is goods coming back against an earlier sale. Stock re-enters
// when the return is (or becomes) approved; rejecting an approved return takes
// it back out.
type SaleReturn struct {
	ReturnID          string          `json:"returnID"` // Primary Key (UUID)
	ReturnNumber      string          `json:"returnNumber"`
	SaleID            string          `json:"saleID"`
	CustomerID        *string         `json:"customerID"` // Copied from the sale
	UserID            string          `json:"userID"`
	ReturnDate        time.Time       `json:"returnDate"`
	TotalReturnAmount decimal.Decimal `json:"totalReturnAmount"`
	Reason            string          `json:"reason"`
	Status            ReturnStatus    `json:"status"`
	AuditFields
	Details []SaleReturnDetail `json:"details,omitempty"`
}

// SaleReturnDetail is one line item of a sale return. UnitPrice is always the
// original sale line's price, never re-entered by the caller.
type SaleReturnDetail struct {
	DetailID   string          `json:"detailID"` // Primary Key (UUID)
	ReturnID   string          `json:"returnID"`
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"` // >= 1
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Reason     string          `json:"reason"`
	AuditFields
}
