package dto

import (
	"time"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleReturnItemRequest defines one line item of a return creation payload.
// Unit prices are never accepted here: they come from the original sale line.
type SaleReturnItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	Reason    string `json:"reason"`
}

// CreateSaleReturnRequest defines the data needed to create a sale return.
// Creating directly as approved applies the stock-in movements in the same
// transaction.
type CreateSaleReturnRequest struct {
	SaleID     string                  `json:"saleID" binding:"required"`
	ReturnDate *time.Time              `json:"returnDate"`
	Reason     string                  `json:"reason"`
	Status     domain.ReturnStatus     `json:"status" binding:"required,oneof=pending approved rejected"`
	Items      []SaleReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSaleReturnRequest defines the data allowed for a return status update.
type UpdateSaleReturnRequest struct {
	Status *domain.ReturnStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	Reason *string              `json:"reason"`
}

// ListSaleReturnsParams defines query parameters for listing sale returns.
type ListSaleReturnsParams struct {
	Limit  int     `form:"limit,default=20"`
	Offset int     `form:"offset,default=0"`
	SaleID *string `form:"saleID"`
	Status *string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// SaleReturnDetailResponse defines the data returned for a return line item.
type SaleReturnDetailResponse struct {
	DetailID   string          `json:"detailID"`
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Reason     string          `json:"reason"`
}

// SaleReturnResponse defines the data returned for a sale return document.
type SaleReturnResponse struct {
	ReturnID          string                     `json:"returnID"`
	ReturnNumber      string                     `json:"returnNumber"`
	SaleID            string                     `json:"saleID"`
	CustomerID        *string                    `json:"customerID,omitempty"`
	UserID            string                     `json:"userID"`
	ReturnDate        time.Time                  `json:"returnDate"`
	TotalReturnAmount decimal.Decimal            `json:"totalReturnAmount"`
	Reason            string                     `json:"reason"`
	Status            domain.ReturnStatus        `json:"status"`
	CreatedAt         time.Time                  `json:"createdAt"`
	Details           []SaleReturnDetailResponse `json:"details,omitempty"`
}

// ToSaleReturnDetailResponse converts a domain.SaleReturnDetail to SaleReturnDetailResponse DTO
func ToSaleReturnDetailResponse(d *domain.SaleReturnDetail) SaleReturnDetailResponse {
	return SaleReturnDetailResponse{
		DetailID:   d.DetailID,
		ProductID:  d.ProductID,
		Quantity:   d.Quantity,
		UnitPrice:  d.UnitPrice,
		TotalPrice: d.TotalPrice,
		Reason:     d.Reason,
	}
}

// ToSaleReturnResponse converts a domain.SaleReturn to SaleReturnResponse DTO
func ToSaleReturnResponse(r *domain.SaleReturn) SaleReturnResponse {
	details := make([]SaleReturnDetailResponse, len(r.Details))
	for i, d := range r.Details {
		details[i] = ToSaleReturnDetailResponse(&d)
	}
	return SaleReturnResponse{
		ReturnID:          r.ReturnID,
		ReturnNumber:      r.ReturnNumber,
		SaleID:            r.SaleID,
		CustomerID:        r.CustomerID,
		UserID:            r.UserID,
		ReturnDate:        r.ReturnDate,
		TotalReturnAmount: r.TotalReturnAmount,
		Reason:            r.Reason,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
		Details:           details,
	}
}

// ListSaleReturnsResponse wraps the list of sale returns.
type ListSaleReturnsResponse struct {
	Returns []SaleReturnResponse `json:"returns"`
}

// ToListSaleReturnsResponse converts a slice of domain.SaleReturn to ListSaleReturnsResponse DTO
func ToListSaleReturnsResponse(returns []domain.SaleReturn) ListSaleReturnsResponse {
	res := make([]SaleReturnResponse, len(returns))
	for i, r := range returns {
		res[i] = ToSaleReturnResponse(&r)
	}
	return ListSaleReturnsResponse{Returns: res}
}
