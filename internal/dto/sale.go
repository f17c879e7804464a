package dto

import (
	"time"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleItemRequest defines one line item of a sale creation payload.
type SaleItemRequest struct {
	ProductID      string           `json:"productID" binding:"required"`
	Quantity       int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice      decimal.Decimal  `json:"unitPrice" binding:"required"`
	DiscountAmount *decimal.Decimal `json:"discountAmount"`
	BatchNumber    string           `json:"batchNumber"`
	ExpiryDate     *time.Time       `json:"expiryDate"`
}

// CreateSaleRequest defines the data needed to create a sale document.
// Stock leaves at creation regardless of the initial payment status.
type CreateSaleRequest struct {
	CustomerID     *string              `json:"customerID"` // Walk-in sales omit this
	SaleDate       *time.Time           `json:"saleDate"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash transfer"`
	PaymentStatus  domain.PaymentStatus `json:"paymentStatus" binding:"required,oneof=pending paid cancelled"`
	DiscountAmount *decimal.Decimal     `json:"discountAmount"`
	TaxAmount      *decimal.Decimal     `json:"taxAmount"`
	Notes          string               `json:"notes"`
	Items          []SaleItemRequest    `json:"items" binding:"required,min=1,dive"`
}

// UpdateSaleRequest defines the data allowed for a sale update. Only the
// payment status and notes are mutable after creation.
type UpdateSaleRequest struct {
	PaymentStatus *domain.PaymentStatus `json:"paymentStatus" binding:"omitempty,oneof=pending paid cancelled"`
	Notes         *string               `json:"notes"`
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	Limit         int     `form:"limit,default=20"`
	Offset        int     `form:"offset,default=0"`
	CustomerID    *string `form:"customerID"`
	PaymentStatus *string `form:"paymentStatus" binding:"omitempty,oneof=pending paid cancelled"`
}

// SaleDetailResponse defines the data returned for a sale line item.
type SaleDetailResponse struct {
	DetailID       string          `json:"detailID"`
	ProductID      string          `json:"productID"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	BatchNumber    string          `json:"batchNumber"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
}

// SaleResponse defines the data returned for a sale document.
type SaleResponse struct {
	SaleID         string               `json:"saleID"`
	SaleNumber     string               `json:"saleNumber"`
	CustomerID     *string              `json:"customerID,omitempty"`
	UserID         string               `json:"userID"`
	SaleDate       time.Time            `json:"saleDate"`
	TotalAmount    decimal.Decimal      `json:"totalAmount"`
	DiscountAmount decimal.Decimal      `json:"discountAmount"`
	TaxAmount      decimal.Decimal      `json:"taxAmount"`
	FinalAmount    decimal.Decimal      `json:"finalAmount"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod"`
	PaymentStatus  domain.PaymentStatus `json:"paymentStatus"`
	Notes          string               `json:"notes"`
	CreatedAt      time.Time            `json:"createdAt"`
	Details        []SaleDetailResponse `json:"details,omitempty"`
}

// ToSaleDetailResponse converts a domain.SaleDetail to SaleDetailResponse DTO
func ToSaleDetailResponse(d *domain.SaleDetail) SaleDetailResponse {
	return SaleDetailResponse{
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

// ToSaleResponse converts a domain.Sale to SaleResponse DTO
func ToSaleResponse(s *domain.Sale) SaleResponse {
	details := make([]SaleDetailResponse, len(s.Details))
	for i, d := range s.Details {
		details[i] = ToSaleDetailResponse(&d)
	}
	return SaleResponse{
		SaleID:         s.SaleID,
		SaleNumber:     s.SaleNumber,
		CustomerID:     s.CustomerID,
		UserID:         s.UserID,
		SaleDate:       s.SaleDate,
		TotalAmount:    s.TotalAmount,
		DiscountAmount: s.DiscountAmount,
		TaxAmount:      s.TaxAmount,
		FinalAmount:    s.FinalAmount,
		PaymentMethod:  s.PaymentMethod,
		PaymentStatus:  s.PaymentStatus,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		Details:        details,
	}
}

// ListSalesResponse wraps the list of sales.
type ListSalesResponse struct {
	Sales []SaleResponse `json:"sales"`
}

// ToListSalesResponse converts a slice of domain.Sale to ListSalesResponse DTO
func ToListSalesResponse(sales []domain.Sale) ListSalesResponse {
	res := make([]SaleResponse, len(sales))
	for i, s := range sales {
		res[i] = ToSaleResponse(&s)
	}
	return ListSalesResponse{Sales: res}
}
