package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
	"github.com/pharmindo/pharmacy_inventory_app/internal/utils/mapping"
)

const movementColumns = `movement_id, product_id, movement_type, quantity, reference_type, reference_id, batch_number, expiry_date, notes, user_id, movement_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxMovementRepository struct {
	BaseRepository
}

func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

func scanMovementRow(row pgx.Row) (*models.StockMovement, error) {
	var m models.StockMovement
	err := row.Scan(
		&m.MovementID,
		&m.ProductID,
		&m.MovementType,
		&m.Quantity,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.BatchNumber,
		&m.ExpiryDate,
		&m.Notes,
		&m.UserID,
		&m.MovementDate,
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

// ApplyMovement applies one manual movement under a product row lock. When
// targetStock is set the movement is an absolute adjustment: the difference
// against the locked stock decides direction and quantity, so a concurrent
// writer can never make the stored movement inconsistent with the stock it
// produced.
func (r *PgxMovementRepository) ApplyMovement(ctx context.Context, movement domain.StockMovement, targetStock *int64) (*domain.StockMovement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	products, err := lockProductsForUpdate(ctx, tx, []string{movement.ProductID})
	if err != nil {
		return nil, err
	}
	locked := products[movement.ProductID]

	var newStock int64
	switch {
	case targetStock != nil:
		// Absolute adjustment, normalized to in/out with the difference.
		newStock = *targetStock
		difference := newStock - locked.stock
		if difference >= 0 {
			movement.MovementType = domain.MovementIn
			movement.Quantity = difference
		} else {
			movement.MovementType = domain.MovementOut
			movement.Quantity = -difference
		}
	case movement.MovementType == domain.MovementIn:
		newStock = locked.stock + movement.Quantity
	case movement.MovementType == domain.MovementOut:
		if locked.stock < movement.Quantity {
			return nil, &apperrors.InsufficientStockError{
				ProductID:   locked.productID,
				ProductName: locked.name,
				Available:   locked.stock,
				Requested:   movement.Quantity,
			}
		}
		newStock = locked.stock - movement.Quantity
	default:
		return nil, fmt.Errorf("%w: adjustment movement requires a target stock amount", apperrors.ErrValidation)
	}

	updateQuery := `
		UPDATE products
		SET stock = $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, movement.ProductID, newStock, movement.LastUpdatedAt, movement.UserID); err != nil {
		return nil, fmt.Errorf("failed to update stock for product %s: %w", movement.ProductID, err)
	}

	if err := insertMovementTx(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE movement_id = $1;`
	modelMovement, err := scanMovementRow(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movement by ID %s: %w", movementID, err)
	}

	domainMovement := mapping.ToDomainStockMovement(*modelMovement)
	return &domainMovement, nil
}

func (r *PgxMovementRepository) FindMovements(ctx context.Context, filter portsrepo.ListMovementsFilter, limit int, offset int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	conditions := []string{}
	args := []any{}
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		conditions = append(conditions, "product_id = $"+strconv.Itoa(len(args)))
	}
	if filter.MovementType != nil {
		args = append(args, string(*filter.MovementType))
		conditions = append(conditions, "movement_type = $"+strconv.Itoa(len(args)))
	}
	if filter.ReferenceKind != nil {
		args = append(args, string(*filter.ReferenceKind))
		conditions = append(conditions, "reference_type = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + movementColumns + ` FROM stock_movements`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY movement_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	modelMovements := []models.StockMovement{}
	for rows.Next() {
		modelMovement, err := scanMovementRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock movement row: %w", err)
		}
		modelMovements = append(modelMovements, *modelMovement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movement rows: %w", err)
	}

	return mapping.ToDomainStockMovementSlice(modelMovements), nil
}

// UpdateMovementNotes amends notes only. Every other column of a ledger row is
// immutable once written.
func (r *PgxMovementRepository) UpdateMovementNotes(ctx context.Context, movementID string, notes string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE stock_movements
		SET notes = $2, last_updated_at = $3, last_updated_by = $4
		WHERE movement_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, movementID, notes, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update notes for movement %s: %w", movementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
