package dto

import (
	"time"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseItemRequest defines one line item of a purchase creation payload.
type PurchaseItemRequest struct {
	ProductID      string           `json:"productID" binding:"required"`
	Quantity       int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice      decimal.Decimal  `json:"unitPrice" binding:"required"`
	DiscountAmount *decimal.Decimal `json:"discountAmount"`
	BatchNumber    string           `json:"batchNumber"`
	ExpiryDate     *time.Time       `json:"expiryDate"`
}

// CreatePurchaseRequest defines the data needed to create a purchase document.
// Status may be any valid initial status; creating directly as received applies
// the stock-in movements in the same transaction.
type CreatePurchaseRequest struct {
	SupplierID     string                `json:"supplierID" binding:"required"`
	PurchaseDate   *time.Time            `json:"purchaseDate"`
	Status         domain.PurchaseStatus `json:"status" binding:"required,oneof=pending received cancelled"`
	DiscountAmount *decimal.Decimal      `json:"discountAmount"`
	TaxAmount      *decimal.Decimal      `json:"taxAmount"`
	Notes          string                `json:"notes"`
	Items          []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseRequest defines the data allowed for a purchase status update.
type UpdatePurchaseRequest struct {
	Status *domain.PurchaseStatus `json:"status" binding:"omitempty,oneof=pending received cancelled"`
	Notes  *string                `json:"notes"`
}

// ListPurchasesParams defines query parameters for listing purchases.
type ListPurchasesParams struct {
	Limit      int     `form:"limit,default=20"`
	Offset     int     `form:"offset,default=0"`
	SupplierID *string `form:"supplierID"`
	Status     *string `form:"status" binding:"omitempty,oneof=pending received cancelled"`
}

// PurchaseDetailResponse defines the data returned for a purchase line item.
type PurchaseDetailResponse struct {
	DetailID       string          `json:"detailID"`
	ProductID      string          `json:"productID"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	BatchNumber    string          `json:"batchNumber"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
}

// PurchaseResponse defines the data returned for a purchase document.
type PurchaseResponse struct {
	PurchaseID     string                   `json:"purchaseID"`
	PurchaseNumber string                   `json:"purchaseNumber"`
	SupplierID     string                   `json:"supplierID"`
	UserID         string                   `json:"userID"`
	PurchaseDate   time.Time                `json:"purchaseDate"`
	TotalAmount    decimal.Decimal          `json:"totalAmount"`
	DiscountAmount decimal.Decimal          `json:"discountAmount"`
	TaxAmount      decimal.Decimal          `json:"taxAmount"`
	FinalAmount    decimal.Decimal          `json:"finalAmount"`
	Status         domain.PurchaseStatus    `json:"status"`
	Notes          string                   `json:"notes"`
	CreatedAt      time.Time                `json:"createdAt"`
	Details        []PurchaseDetailResponse `json:"details,omitempty"`
}

// ToPurchaseDetailResponse converts a domain.PurchaseDetail to PurchaseDetailResponse DTO
func ToPurchaseDetailResponse(d *domain.PurchaseDetail) PurchaseDetailResponse {
	return PurchaseDetailResponse{
		DetailID:       d.DetailID,
		ProductID:      d.ProductID,
		Quantity:       d.Quantity,
		UnitPrice:      d.UnitPrice,
		DiscountAmount: d.DiscountAmount,
		TotalPrice:     d.TotalPrice,
		BatchNumber:    d.BatchNumber,
		ExpiryDate:     d.ExpiryDate,
	}
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse DTO
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	details := make([]PurchaseDetailResponse, len(p.Details))
	for i, d := range p.Details {
		details[i] = ToPurchaseDetailResponse(&d)
	}
	return PurchaseResponse{
		PurchaseID:     p.PurchaseID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		UserID:         p.UserID,
		PurchaseDate:   p.PurchaseDate,
		TotalAmount:    p.TotalAmount,
		DiscountAmount: p.DiscountAmount,
		TaxAmount:      p.TaxAmount,
		FinalAmount:    p.FinalAmount,
		Status:         p.Status,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		Details:        details,
	}
}

// ListPurchasesResponse wraps the list of purchases.
type ListPurchasesResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
}

// ToListPurchasesResponse converts a slice of domain.Purchase to ListPurchasesResponse DTO
func ToListPurchasesResponse(purchases []domain.Purchase) ListPurchasesResponse {
	res := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		res[i] = ToPurchaseResponse(&p)
	}
	return ListPurchasesResponse{Purchases: res}
}
