package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/utils/mapping"
)

// lockedProduct carries the product fields read under a row lock while stock
// effects are applied.
type lockedProduct struct {
	productID string
	name      string
	stock     int64
}

// lockProductsForUpdate locks the product rows for the given IDs and returns
// their current stock. Must be called within a transaction. All requested
// products must exist.
func lockProductsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]*lockedProduct, error) {
	if len(productIDs) == 0 {
		return map[string]*lockedProduct{}, nil
	}

	query := `
		SELECT product_id, name, stock
		FROM products
		WHERE product_id = ANY($1)
		FOR UPDATE;
	`

	rows, err := tx.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products for update: %w", err)
	}
	defer rows.Close()

	products := make(map[string]*lockedProduct)
	for rows.Next() {
		var p lockedProduct
		if err := rows.Scan(&p.productID, &p.name, &p.stock); err != nil {
			return nil, fmt.Errorf("failed to scan locked product row: %w", err)
		}
		products[p.productID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked product rows: %w", err)
	}

	if len(products) != len(uniqueIDs(productIDs)) {
		missing := []string{}
		for _, id := range uniqueIDs(productIDs) {
			if _, found := products[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some products requested for update lock were not found", "missing_products", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested products, missing: %v", apperrors.ErrNotFound, missing)
	}

	return products, nil
}

// applyStockEffects locks the affected product rows, then applies each effect
// in input order: sufficiency check for out movements, stock update, optional
// batch propagation and one ledger row per applied effect. With
// SkipOnShortfall an insufficient out line is skipped instead of failing the
// transaction. Must be called within a transaction.
func applyStockEffects(ctx context.Context, tx pgx.Tx, effects []domain.StockEffect, policy domain.ShortfallPolicy, userID string, now time.Time) error {
	if len(effects) == 0 {
		return nil
	}

	productIDs := make([]string, 0, len(effects))
	for _, e := range effects {
		productIDs = append(productIDs, e.ProductID)
	}

	products, err := lockProductsForUpdate(ctx, tx, uniqueIDs(productIDs))
	if err != nil {
		return err
	}

	for _, effect := range effects {
		locked := products[effect.ProductID]

		if effect.MovementType == domain.MovementOut && locked.stock < effect.Quantity {
			if policy == domain.SkipOnShortfall {
				slog.WarnContext(ctx, "Skipping stock effect on shortfall",
					"product_id", effect.ProductID, "available", locked.stock, "requested", effect.Quantity)
				continue
			}
			return &apperrors.InsufficientStockError{
				ProductID:   locked.productID,
				ProductName: locked.name,
				Available:   locked.stock,
				Requested:   effect.Quantity,
			}
		}

		switch effect.MovementType {
		case domain.MovementIn:
			locked.stock += effect.Quantity
		case domain.MovementOut:
			locked.stock -= effect.Quantity
		default:
			return fmt.Errorf("%w: stock effect has movement type %s", apperrors.ErrInternal, effect.MovementType)
		}

		if effect.UpdateProductBatch {
			updateQuery := `
				UPDATE products
				SET stock = $2, batch_number = $3, expiry_date = $4, last_updated_at = $5, last_updated_by = $6
				WHERE product_id = $1;
			`
			_, err = tx.Exec(ctx, updateQuery, effect.ProductID, locked.stock, effect.BatchNumber, effect.ExpiryDate, now, userID)
		} else {
			updateQuery := `
				UPDATE products
				SET stock = $2, last_updated_at = $3, last_updated_by = $4
				WHERE product_id = $1;
			`
			_, err = tx.Exec(ctx, updateQuery, effect.ProductID, locked.stock, now, userID)
		}
		if err != nil {
			return fmt.Errorf("failed to update stock for product %s: %w", effect.ProductID, err)
		}

		movement := effect.ToMovement(uuid.NewString(), userID, now)
		if err := insertMovementTx(ctx, tx, movement); err != nil {
			return err
		}
	}

	return nil
}

// insertMovementTx appends one row to the stock movement ledger. Must be
// called within a transaction.
func insertMovementTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	modelMovement := mapping.ToModelStockMovement(movement)
	query := `
		INSERT INTO stock_movements (
			movement_id, product_id, movement_type, quantity, reference_type, reference_id,
			batch_number, expiry_date, notes, user_id, movement_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		modelMovement.MovementID,
		modelMovement.ProductID,
		modelMovement.MovementType,
		modelMovement.Quantity,
		modelMovement.ReferenceType,
		modelMovement.ReferenceID,
		modelMovement.BatchNumber,
		modelMovement.ExpiryDate,
		modelMovement.Notes,
		modelMovement.UserID,
		modelMovement.MovementDate,
		modelMovement.CreatedAt,
		modelMovement.CreatedBy,
		modelMovement.LastUpdatedAt,
		modelMovement.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement %s: %w", modelMovement.MovementID, err)
	}
	return nil
}

// uniqueIDs removes duplicates while keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
