package services

import (
	"context"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
)

// ProductReaderSvc defines read operations for product data
type ProductReaderSvc interface {
	// GetProductByID retrieves a product by ID.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated, filtered list of products.
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for product data. Stock is only
// settable at creation; afterwards it belongs to the movement operations.
type ProductWriterSvc interface {
	// CreateProduct creates a new product with its opening stock.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// UpdateProduct updates a product's descriptive fields.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error)

	// DeleteProduct removes a product; fails with a conflict while sale or
	// purchase line items still reference it.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
