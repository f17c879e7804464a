package dto

import (
	"time"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a product. Stock here
// is the opening quantity; afterwards stock only changes through movements.
type CreateProductRequest struct {
	Code           string          `json:"code" binding:"required,max=100"`
	Name           string          `json:"name" binding:"required,max=255"`
	GenericName    string          `json:"genericName"`
	CategoryID     *string         `json:"categoryID"`
	SupplierID     *string         `json:"supplierID"`
	Unit           string          `json:"unit" binding:"required,max=50"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Stock          int64           `json:"stock" binding:"min=0"`
	MinimumStock   int64           `json:"minimumStock" binding:"min=0"`
	ExpiryDate     *time.Time      `json:"expiryDate"`
	BatchNumber    string          `json:"batchNumber"`
	Description    string          `json:"description"`
	IsPrescription bool            `json:"isPrescription"`
	IsActive       *bool           `json:"isActive"` // Defaults to true when omitted
}

// UpdateProductRequest defines the data allowed for updating a product.
// There is intentionally no stock field: stock changes go through movements.
type UpdateProductRequest struct {
	Code           *string          `json:"code" binding:"omitempty,max=100"`
	Name           *string          `json:"name" binding:"omitempty,max=255"`
	GenericName    *string          `json:"genericName"`
	CategoryID     *string          `json:"categoryID"`
	SupplierID     *string          `json:"supplierID"`
	Unit           *string          `json:"unit" binding:"omitempty,max=50"`
	Price          *decimal.Decimal `json:"price"`
	MinimumStock   *int64           `json:"minimumStock" binding:"omitempty,min=0"`
	ExpiryDate     *time.Time       `json:"expiryDate"`
	BatchNumber    *string          `json:"batchNumber"`
	Description    *string          `json:"description"`
	IsPrescription *bool            `json:"isPrescription"`
	IsActive       *bool            `json:"isActive"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit      int     `form:"limit,default=20"`
	Offset     int     `form:"offset,default=0"`
	Search     string  `form:"search"`
	CategoryID *string `form:"categoryID"`
	SupplierID *string `form:"supplierID"`
	ActiveOnly bool    `form:"activeOnly"`
	LowStock   bool    `form:"lowStock"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID      string          `json:"productID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	GenericName    string          `json:"genericName"`
	CategoryID     *string         `json:"categoryID,omitempty"`
	SupplierID     *string         `json:"supplierID,omitempty"`
	Unit           string          `json:"unit"`
	Price          decimal.Decimal `json:"price"`
	Stock          int64           `json:"stock"`
	MinimumStock   int64           `json:"minimumStock"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
	BatchNumber    string          `json:"batchNumber"`
	Description    string          `json:"description"`
	IsPrescription bool            `json:"isPrescription"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ProductID,
		Code:           p.Code,
		Name:           p.Name,
		GenericName:    p.GenericName,
		CategoryID:     p.CategoryID,
		SupplierID:     p.SupplierID,
		Unit:           p.Unit,
		Price:          p.Price,
		Stock:          p.Stock,
		MinimumStock:   p.MinimumStock,
		ExpiryDate:     p.ExpiryDate,
		BatchNumber:    p.BatchNumber,
		Description:    p.Description,
		IsPrescription: p.IsPrescription,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		LastUpdatedAt:  p.LastUpdatedAt,
	}
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToListProductsResponse converts a slice of domain.Product to ListProductsResponse DTO
func ToListProductsResponse(products []domain.Product) ListProductsResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = ToProductResponse(&p)
	}
	return ListProductsResponse{Products: res}
}
