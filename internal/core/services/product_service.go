package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
	"github.com/pharmindo/pharmacy_inventory_app/internal/middleware"
)

// productService manages products. It owns every product field except stock,
// which after creation belongs to the movement-producing document operations.
type productService struct {
	productRepo  portsrepo.ProductRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) checkReferences(ctx context.Context, categoryID, supplierID *string) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID); err != nil {
			return fmt.Errorf("category %s: %w", *categoryID, err)
		}
	}
	if supplierID != nil {
		if _, err := s.supplierRepo.FindSupplierByID(ctx, *supplierID); err != nil {
			return fmt.Errorf("supplier %s: %w", *supplierID, err)
		}
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.productRepo.FindProductByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check product code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: product code %s is already taken", apperrors.ErrDuplicate, req.Code)
	}

	if err := s.checkReferences(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:      uuid.NewString(),
		Code:           req.Code,
		Name:           req.Name,
		GenericName:    req.GenericName,
		CategoryID:     req.CategoryID,
		SupplierID:     req.SupplierID,
		Unit:           req.Unit,
		Price:          req.Price.Round(2),
		Stock:          req.Stock,
		MinimumStock:   req.MinimumStock,
		ExpiryDate:     req.ExpiryDate,
		BatchNumber:    req.BatchNumber,
		Description:    req.Description,
		IsPrescription: req.IsPrescription,
		IsActive:       isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("code", product.Code))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	filter := portsrepo.ListProductsFilter{
		Search:     params.Search,
		CategoryID: params.CategoryID,
		SupplierID: params.SupplierID,
		ActiveOnly: params.ActiveOnly,
		LowStock:   params.LowStock,
	}
	products, err := s.productRepo.FindProducts(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	if req.Code != nil && *req.Code != product.Code {
		existing, err := s.productRepo.FindProductByCode(ctx, *req.Code)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check product code: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: product code %s is already taken", apperrors.ErrDuplicate, *req.Code)
		}
		product.Code = *req.Code
	}
	if err := s.checkReferences(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.GenericName != nil {
		product.GenericName = *req.GenericName
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.SupplierID != nil {
		product.SupplierID = req.SupplierID
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
		}
		product.Price = req.Price.Round(2)
	}
	if req.MinimumStock != nil {
		product.MinimumStock = *req.MinimumStock
	}
	if req.ExpiryDate != nil {
		product.ExpiryDate = req.ExpiryDate
	}
	if req.BatchNumber != nil {
		product.BatchNumber = *req.BatchNumber
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.IsPrescription != nil {
		product.IsPrescription = *req.IsPrescription
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = requestingUserID

	// UpdateProduct never writes the stock column.
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	// Sale and purchase line items referencing the product block the delete;
	// the repository runs that check inside the delete transaction.
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		logger.Warn("Failed to delete product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// derefDecimal returns the pointed-to decimal rounded to 2 places, or zero.
func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return d.Round(2)
}
