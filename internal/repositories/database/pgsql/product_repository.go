package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
	"github.com/pharmindo/pharmacy_inventory_app/internal/utils/mapping"
)

const productColumns = `product_id, code, name, generic_name, category_id, supplier_id, unit, price, stock, minimum_stock, expiry_date, batch_number, description, is_prescription, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProductRow(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Code,
		&m.Name,
		&m.GenericName,
		&m.CategoryID,
		&m.SupplierID,
		&m.Unit,
		&m.Price,
		&m.Stock,
		&m.MinimumStock,
		&m.ExpiryDate,
		&m.BatchNumber,
		&m.Description,
		&m.IsPrescription,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	modelProduct := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelProduct.ProductID,
		modelProduct.Code,
		modelProduct.Name,
		modelProduct.GenericName,
		modelProduct.CategoryID,
		modelProduct.SupplierID,
		modelProduct.Unit,
		modelProduct.Price,
		modelProduct.Stock,
		modelProduct.MinimumStock,
		modelProduct.ExpiryDate,
		modelProduct.BatchNumber,
		modelProduct.Description,
		modelProduct.IsPrescription,
		modelProduct.IsActive,
		modelProduct.CreatedAt,
		modelProduct.CreatedBy,
		modelProduct.LastUpdatedAt,
		modelProduct.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("product with code %s already exists: %w", product.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	modelProduct, err := scanProductRow(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	domainProduct := mapping.ToDomainProduct(*modelProduct)
	return &domainProduct, nil
}

func (r *PgxProductRepository) FindProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1;`
	modelProduct, err := scanProductRow(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by code: %w", err)
	}

	domainProduct := mapping.ToDomainProduct(*modelProduct)
	return &domainProduct, nil
}

func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product)
	for rows.Next() {
		modelProduct, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products[modelProduct.ProductID] = mapping.ToDomainProduct(*modelProduct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

func (r *PgxProductRepository) FindProducts(ctx context.Context, filter portsrepo.ListProductsFilter, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	conditions := []string{}
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		idx := strconv.Itoa(len(args))
		conditions = append(conditions, "(code ILIKE $"+idx+" OR name ILIKE $"+idx+" OR generic_name ILIKE $"+idx+")")
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, "category_id = $"+strconv.Itoa(len(args)))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		conditions = append(conditions, "supplier_id = $"+strconv.Itoa(len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if filter.LowStock {
		conditions = append(conditions, "stock <= minimum_stock")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY name LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts := []models.Product{}
	for rows.Next() {
		modelProduct, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		modelProducts = append(modelProducts, *modelProduct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

// UpdateProduct updates descriptive fields only. Stock is deliberately absent
// from the SET list; it changes exclusively through stock movements.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	modelProduct := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET code = $2, name = $3, generic_name = $4, category_id = $5, supplier_id = $6, unit = $7,
		    price = $8, minimum_stock = $9, expiry_date = $10, batch_number = $11, description = $12,
		    is_prescription = $13, is_active = $14, last_updated_at = $15, last_updated_by = $16
		WHERE product_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelProduct.ProductID,
		modelProduct.Code,
		modelProduct.Name,
		modelProduct.GenericName,
		modelProduct.CategoryID,
		modelProduct.SupplierID,
		modelProduct.Unit,
		modelProduct.Price,
		modelProduct.MinimumStock,
		modelProduct.ExpiryDate,
		modelProduct.BatchNumber,
		modelProduct.Description,
		modelProduct.IsPrescription,
		modelProduct.IsActive,
		modelProduct.LastUpdatedAt,
		modelProduct.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("product with code %s already exists: %w", product.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product. The line-item reference checks share the
// delete transaction so a concurrent sale or purchase cannot slip between
// check and delete.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var saleLineCount, purchaseLineCount int64
	countQuery := `
		SELECT
			(SELECT COUNT(*) FROM sale_details WHERE product_id = $1),
			(SELECT COUNT(*) FROM purchase_details WHERE product_id = $1);
	`
	if err := tx.QueryRow(ctx, countQuery, productID).Scan(&saleLineCount, &purchaseLineCount); err != nil {
		return fmt.Errorf("failed to count references for product %s: %w", productID, err)
	}
	if saleLineCount > 0 || purchaseLineCount > 0 {
		return fmt.Errorf("%w: product is referenced by %d sale line(s) and %d purchase line(s)", apperrors.ErrConflict, saleLineCount, purchaseLineCount)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
