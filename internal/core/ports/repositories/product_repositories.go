package repositories

import (
	"context"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
)

// ListProductsFilter narrows product listings.
type ListProductsFilter struct {
	Search     string  // Matches code, name or generic name
	CategoryID *string
	SupplierID *string
	ActiveOnly bool
	LowStock   bool // Only products at or below their minimum stock
}

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a specific product by its ID.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductByCode retrieves a product by its unique code.
	FindProductByCode(ctx context.Context, code string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products keyed by ID.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// FindProducts retrieves a paginated, filtered list of products.
	FindProducts(ctx context.Context, filter ListProductsFilter, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data.
// None of these methods touch the stock column after creation; stock changes
// only through movement-producing document operations.
type ProductWriter interface {
	// SaveProduct persists a new product, including its initial stock.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates an existing product's descriptive fields.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product. Fails with a conflict while sale or
	// purchase line items still reference it; the check and the delete share
	// one transaction.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
