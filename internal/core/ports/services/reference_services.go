package services

import (
	"context"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
)

// CategorySvcFacade defines the service surface for product categories.
type CategorySvcFacade interface {
	// CreateCategory creates a new category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)

	// GetCategoryByID retrieves a category by ID.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves a paginated list of categories.
	ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error)

	// UpdateCategory updates a category.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error)

	// DeleteCategory removes a category; fails with a conflict while products
	// still reference it.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// SupplierSvcFacade defines the service surface for suppliers.
type SupplierSvcFacade interface {
	// CreateSupplier creates a new supplier.
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)

	// GetSupplierByID retrieves a supplier by ID.
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// ListSuppliers retrieves a paginated list of suppliers.
	ListSuppliers(ctx context.Context, params dto.ListSuppliersParams) ([]domain.Supplier, error)

	// UpdateSupplier updates a supplier.
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, requestingUserID string) (*domain.Supplier, error)

	// DeleteSupplier removes a supplier; fails with a conflict while products
	// or purchases still reference it.
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// CustomerSvcFacade defines the service surface for customers.
type CustomerSvcFacade interface {
	// CreateCustomer creates a new customer.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// GetCustomerByID retrieves a customer by ID.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)

	// UpdateCustomer updates a customer.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)

	// DeleteCustomer removes a customer; fails with a conflict while sales
	// still reference it.
	DeleteCustomer(ctx context.Context, customerID string) error
}
