package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
	"github.com/pharmindo/pharmacy_inventory_app/internal/utils/mapping"
)

type PgxSupplierRepository struct {
	BaseRepository
}

func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSupplierRepository implements portsrepo.SupplierRepositoryFacade
var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	modelSupplier := mapping.ToModelSupplier(supplier)
	query := `
		INSERT INTO suppliers (supplier_id, name, contact_person, email, phone, address, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSupplier.SupplierID,
		modelSupplier.Name,
		modelSupplier.ContactPerson,
		modelSupplier.Email,
		modelSupplier.Phone,
		modelSupplier.Address,
		modelSupplier.IsActive,
		modelSupplier.CreatedAt,
		modelSupplier.CreatedBy,
		modelSupplier.LastUpdatedAt,
		modelSupplier.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}
	return nil
}

func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `
		SELECT supplier_id, name, contact_person, email, phone, address, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM suppliers
		WHERE supplier_id = $1;
	`
	var modelSupplier models.Supplier
	err := r.Pool.QueryRow(ctx, query, supplierID).Scan(
		&modelSupplier.SupplierID,
		&modelSupplier.Name,
		&modelSupplier.ContactPerson,
		&modelSupplier.Email,
		&modelSupplier.Phone,
		&modelSupplier.Address,
		&modelSupplier.IsActive,
		&modelSupplier.CreatedAt,
		&modelSupplier.CreatedBy,
		&modelSupplier.LastUpdatedAt,
		&modelSupplier.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by ID %s: %w", supplierID, err)
	}

	domainSupplier := mapping.ToDomainSupplier(modelSupplier)
	return &domainSupplier, nil
}

func (r *PgxSupplierRepository) FindSuppliers(ctx context.Context, limit int, offset int) ([]domain.Supplier, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT supplier_id, name, contact_person, email, phone, address, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM suppliers
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	modelSuppliers := []models.Supplier{}
	for rows.Next() {
		var m models.Supplier
		err := rows.Scan(
			&m.SupplierID,
			&m.Name,
			&m.ContactPerson,
			&m.Email,
			&m.Phone,
			&m.Address,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		modelSuppliers = append(modelSuppliers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier rows: %w", err)
	}

	return mapping.ToDomainSupplierSlice(modelSuppliers), nil
}

func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	modelSupplier := mapping.ToModelSupplier(supplier)
	query := `
		UPDATE suppliers
		SET name = $2, contact_person = $3, email = $4, phone = $5, address = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE supplier_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelSupplier.SupplierID,
		modelSupplier.Name,
		modelSupplier.ContactPerson,
		modelSupplier.Email,
		modelSupplier.Phone,
		modelSupplier.Address,
		modelSupplier.IsActive,
		modelSupplier.LastUpdatedAt,
		modelSupplier.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier %s: %w", supplier.SupplierID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSupplier removes a supplier. Both reference checks share the delete
// transaction.
func (r *PgxSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var productCount, purchaseCount int64
	countQuery := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE supplier_id = $1),
			(SELECT COUNT(*) FROM purchases WHERE supplier_id = $1);
	`
	if err := tx.QueryRow(ctx, countQuery, supplierID).Scan(&productCount, &purchaseCount); err != nil {
		return fmt.Errorf("failed to count references for supplier %s: %w", supplierID, err)
	}
	if productCount > 0 || purchaseCount > 0 {
		return fmt.Errorf("%w: supplier is referenced by %d product(s) and %d purchase(s)", apperrors.ErrConflict, productCount, purchaseCount)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM suppliers WHERE supplier_id = $1;`, supplierID)
	if err != nil {
		return fmt.Errorf("failed to delete supplier %s: %w", supplierID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
