package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
	"github.com/pharmindo/pharmacy_inventory_app/internal/utils/mapping"
)

const purchaseColumns = `purchase_id, purchase_number, supplier_id, user_id, purchase_date, total_amount, discount_amount, tax_amount, final_amount, status, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxPurchaseRepository struct {
	BaseRepository
}

func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPurchaseRepository implements portsrepo.PurchaseRepositoryFacade
var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

func scanPurchaseRow(row pgx.Row) (*models.Purchase, error) {
	var m models.Purchase
	err := row.Scan(
		&m.PurchaseID,
		&m.PurchaseNumber,
		&m.SupplierID,
		&m.UserID,
		&m.PurchaseDate,
		&m.TotalAmount,
		&m.DiscountAmount,
		&m.TaxAmount,
		&m.FinalAmount,
		&m.Status,
		&m.Notes,
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

// SavePurchase persists the header, its line items and any stock effects in
// one transaction. The purchase number comes from the daily counter inside the
// same transaction.
func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, details []domain.PurchaseDetail, effects []domain.StockEffect, policy domain.ShortfallPolicy) (*domain.Purchase, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, purchasePrefix, purchase.PurchaseDate)
	if err != nil {
		return nil, err
	}
	purchase.PurchaseNumber = number

	modelPurchase := mapping.ToModelPurchase(purchase)
	headerQuery := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelPurchase.PurchaseID,
		modelPurchase.PurchaseNumber,
		modelPurchase.SupplierID,
		modelPurchase.UserID,
		modelPurchase.PurchaseDate,
		modelPurchase.TotalAmount,
		modelPurchase.DiscountAmount,
		modelPurchase.TaxAmount,
		modelPurchase.FinalAmount,
		modelPurchase.Status,
		modelPurchase.Notes,
		modelPurchase.CreatedAt,
		modelPurchase.CreatedBy,
		modelPurchase.LastUpdatedAt,
		modelPurchase.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert purchase %s: %w", modelPurchase.PurchaseID, err)
	}

	batch := &pgx.Batch{}
	detailQuery := `
		INSERT INTO purchase_details (detail_id, purchase_id, product_id, quantity, unit_price, discount_amount, total_price, batch_number, expiry_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, detail := range details {
		modelDetail := mapping.ToModelPurchaseDetail(detail)
		batch.Queue(detailQuery,
			modelDetail.DetailID,
			modelDetail.PurchaseID,
			modelDetail.ProductID,
			modelDetail.Quantity,
			modelDetail.UnitPrice,
			modelDetail.DiscountAmount,
			modelDetail.TotalPrice,
			modelDetail.BatchNumber,
			modelDetail.ExpiryDate,
			modelDetail.CreatedAt,
			modelDetail.CreatedBy,
			modelDetail.LastUpdatedAt,
			modelDetail.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("failed to insert purchase details for %s: %w", modelPurchase.PurchaseID, err)
	}

	if err := applyStockEffects(ctx, tx, effects, policy, purchase.CreatedBy, purchase.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_id = $1;`
	modelPurchase, err := scanPurchaseRow(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by ID %s: %w", purchaseID, err)
	}

	domainPurchase := mapping.ToDomainPurchase(*modelPurchase)
	return &domainPurchase, nil
}

func (r *PgxPurchaseRepository) FindPurchaseDetails(ctx context.Context, purchaseID string) ([]domain.PurchaseDetail, error) {
	query := `
		SELECT detail_id, purchase_id, product_id, quantity, unit_price, discount_amount, total_price, batch_number, expiry_date, created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_details
		WHERE purchase_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase details for %s: %w", purchaseID, err)
	}
	defer rows.Close()

	modelDetails := []models.PurchaseDetail{}
	for rows.Next() {
		var m models.PurchaseDetail
		err := rows.Scan(
			&m.DetailID,
			&m.PurchaseID,
			&m.ProductID,
			&m.Quantity,
			&m.UnitPrice,
			&m.DiscountAmount,
			&m.TotalPrice,
			&m.BatchNumber,
			&m.ExpiryDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase detail row: %w", err)
		}
		modelDetails = append(modelDetails, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase detail rows: %w", err)
	}

	return mapping.ToDomainPurchaseDetailSlice(modelDetails), nil
}

func (r *PgxPurchaseRepository) FindPurchases(ctx context.Context, filter portsrepo.ListPurchasesFilter, limit int, offset int) ([]domain.Purchase, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	conditions := []string{}
	args := []any{}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		conditions = append(conditions, "supplier_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + purchaseColumns + ` FROM purchases`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY purchase_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	modelPurchases := []models.Purchase{}
	for rows.Next() {
		modelPurchase, err := scanPurchaseRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		modelPurchases = append(modelPurchases, *modelPurchase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase rows: %w", err)
	}

	return mapping.ToDomainPurchaseSlice(modelPurchases), nil
}

// UpdatePurchaseStatus writes the new status and notes and applies the
// accompanying stock effects in one transaction. The UPDATE is predicated on
// the status the transition was decided against, so a concurrent transition
// that already moved the document makes this one a Conflict instead of
// applying its stock effects a second time.
func (r *PgxPurchaseRepository) UpdatePurchaseStatus(ctx context.Context, purchase domain.Purchase, from domain.PurchaseStatus, effects []domain.StockEffect, policy domain.ShortfallPolicy) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE purchases
		SET status = $2, notes = $3, last_updated_at = $4, last_updated_by = $5
		WHERE purchase_id = $1 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, query,
		purchase.PurchaseID,
		string(purchase.Status),
		purchase.Notes,
		purchase.LastUpdatedAt,
		purchase.LastUpdatedBy,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update purchase %s: %w", purchase.PurchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase %s is no longer %s", apperrors.ErrConflict, purchase.PurchaseID, from)
	}

	if err := applyStockEffects(ctx, tx, effects, policy, purchase.LastUpdatedBy, purchase.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeletePurchase removes a pending purchase and its lines. The status check
// locks the header row so a concurrent receive cannot race the delete.
func (r *PgxPurchaseRepository) DeletePurchase(ctx context.Context, purchaseID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.PurchaseStatus
	statusQuery := `SELECT status FROM purchases WHERE purchase_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, statusQuery, purchaseID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock purchase %s: %w", purchaseID, err)
	}
	if status != models.PurchasePending {
		return fmt.Errorf("%w: cannot delete purchase with status: %s", apperrors.ErrConflict, status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_details WHERE purchase_id = $1;`, purchaseID); err != nil {
		return fmt.Errorf("failed to delete purchase details for %s: %w", purchaseID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM purchases WHERE purchase_id = $1;`, purchaseID); err != nil {
		return fmt.Errorf("failed to delete purchase %s: %w", purchaseID, err)
	}

	return r.Commit(ctx, tx)
}
