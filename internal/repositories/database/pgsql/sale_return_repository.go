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

const saleReturnColumns = `return_id, return_number, sale_id, customer_id, user_id, return_date, total_return_amount, reason, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxSaleReturnRepository struct {
	BaseRepository
}

func newPgxSaleReturnRepository(pool *pgxpool.Pool) portsrepo.SaleReturnRepositoryFacade {
	return &PgxSaleReturnRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSaleReturnRepository implements portsrepo.SaleReturnRepositoryFacade
var _ portsrepo.SaleReturnRepositoryFacade = (*PgxSaleReturnRepository)(nil)

func scanSaleReturnRow(row pgx.Row) (*models.SaleReturn, error) {
	var m models.SaleReturn
	err := row.Scan(
		&m.ReturnID,
		&m.ReturnNumber,
		&m.SaleID,
		&m.CustomerID,
		&m.UserID,
		&m.ReturnDate,
		&m.TotalReturnAmount,
		&m.Reason,
		&m.Status,
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

// SaveSaleReturn persists the header, its line items and any stock effects in
// one transaction. The return number comes from the daily counter inside the
// same transaction.
func (r *PgxSaleReturnRepository) SaveSaleReturn(ctx context.Context, ret domain.SaleReturn, details []domain.SaleReturnDetail, effects []domain.StockEffect, policy domain.ShortfallPolicy) (*domain.SaleReturn, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, returnPrefix, ret.ReturnDate)
	if err != nil {
		return nil, err
	}
	ret.ReturnNumber = number

	modelReturn := mapping.ToModelSaleReturn(ret)
	headerQuery := `
		INSERT INTO sale_returns (` + saleReturnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelReturn.ReturnID,
		modelReturn.ReturnNumber,
		modelReturn.SaleID,
		modelReturn.CustomerID,
		modelReturn.UserID,
		modelReturn.ReturnDate,
		modelReturn.TotalReturnAmount,
		modelReturn.Reason,
		modelReturn.Status,
		modelReturn.CreatedAt,
		modelReturn.CreatedBy,
		modelReturn.LastUpdatedAt,
		modelReturn.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale return %s: %w", modelReturn.ReturnID, err)
	}

	batch := &pgx.Batch{}
	detailQuery := `
		INSERT INTO sale_return_details (detail_id, return_id, product_id, quantity, unit_price, total_price, reason, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, detail := range details {
		modelDetail := mapping.ToModelSaleReturnDetail(detail)
		batch.Queue(detailQuery,
			modelDetail.DetailID,
			modelDetail.ReturnID,
			modelDetail.ProductID,
			modelDetail.Quantity,
			modelDetail.UnitPrice,
			modelDetail.TotalPrice,
			modelDetail.Reason,
			modelDetail.CreatedAt,
			modelDetail.CreatedBy,
			modelDetail.LastUpdatedAt,
			modelDetail.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("failed to insert sale return details for %s: %w", modelReturn.ReturnID, err)
	}

	if err := applyStockEffects(ctx, tx, effects, policy, ret.CreatedBy, ret.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *PgxSaleReturnRepository) FindSaleReturnByID(ctx context.Context, returnID string) (*domain.SaleReturn, error) {
	query := `SELECT ` + saleReturnColumns + ` FROM sale_returns WHERE return_id = $1;`
	modelReturn, err := scanSaleReturnRow(r.Pool.QueryRow(ctx, query, returnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale return by ID %s: %w", returnID, err)
	}

	domainReturn := mapping.ToDomainSaleReturn(*modelReturn)
	return &domainReturn, nil
}

func (r *PgxSaleReturnRepository) FindSaleReturnDetails(ctx context.Context, returnID string) ([]domain.SaleReturnDetail, error) {
	query := `
		SELECT detail_id, return_id, product_id, quantity, unit_price, total_price, reason, created_at, created_by, last_updated_at, last_updated_by
		FROM sale_return_details
		WHERE return_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale return details for %s: %w", returnID, err)
	}
	defer rows.Close()

	modelDetails := []models.SaleReturnDetail{}
	for rows.Next() {
		var m models.SaleReturnDetail
		err := rows.Scan(
			&m.DetailID,
			&m.ReturnID,
			&m.ProductID,
			&m.Quantity,
			&m.UnitPrice,
			&m.TotalPrice,
			&m.Reason,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale return detail row: %w", err)
		}
		modelDetails = append(modelDetails, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale return detail rows: %w", err)
	}

	return mapping.ToDomainSaleReturnDetailSlice(modelDetails), nil
}

func (r *PgxSaleReturnRepository) FindSaleReturns(ctx context.Context, filter portsrepo.ListSaleReturnsFilter, limit int, offset int) ([]domain.SaleReturn, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	conditions := []string{}
	args := []any{}
	if filter.SaleID != nil {
		args = append(args, *filter.SaleID)
		conditions = append(conditions, "sale_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + saleReturnColumns + ` FROM sale_returns`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY return_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale returns: %w", err)
	}
	defer rows.Close()

	modelReturns := []models.SaleReturn{}
	for rows.Next() {
		modelReturn, err := scanSaleReturnRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale return row: %w", err)
		}
		modelReturns = append(modelReturns, *modelReturn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale return rows: %w", err)
	}

	return mapping.ToDomainSaleReturnSlice(modelReturns), nil
}

// SumReturnedQuantities sums line quantities per product across all
// non-rejected returns of a sale.
func (r *PgxSaleReturnRepository) SumReturnedQuantities(ctx context.Context, saleID string) (map[string]int64, error) {
	query := `
		SELECT d.product_id, COALESCE(SUM(d.quantity), 0)
		FROM sale_return_details d
		JOIN sale_returns sr ON sr.return_id = d.return_id
		WHERE sr.sale_id = $1 AND sr.status <> $2
		GROUP BY d.product_id;
	`
	rows, err := r.Pool.Query(ctx, query, saleID, string(models.ReturnRejected))
	if err != nil {
		return nil, fmt.Errorf("failed to sum returned quantities for sale %s: %w", saleID, err)
	}
	defer rows.Close()

	sums := make(map[string]int64)
	for rows.Next() {
		var productID string
		var quantity int64
		if err := rows.Scan(&productID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan returned quantity row: %w", err)
		}
		sums[productID] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating returned quantity rows: %w", err)
	}

	return sums, nil
}

// UpdateSaleReturnStatus writes the new status and reason and applies the
// accompanying stock effects in one transaction. The UPDATE is predicated on
// the status the transition was decided against, so a concurrent transition
// that already moved the document makes this one a Conflict instead of
// applying its stock effects a second time.
func (r *PgxSaleReturnRepository) UpdateSaleReturnStatus(ctx context.Context, ret domain.SaleReturn, from domain.ReturnStatus, effects []domain.StockEffect, policy domain.ShortfallPolicy) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE sale_returns
		SET status = $2, reason = $3, last_updated_at = $4, last_updated_by = $5
		WHERE return_id = $1 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, query,
		ret.ReturnID,
		string(ret.Status),
		ret.Reason,
		ret.LastUpdatedAt,
		ret.LastUpdatedBy,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update sale return %s: %w", ret.ReturnID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale return %s is no longer %s", apperrors.ErrConflict, ret.ReturnID, from)
	}

	if err := applyStockEffects(ctx, tx, effects, policy, ret.LastUpdatedBy, ret.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteSaleReturn removes a pending return and its lines. The status check
// locks the header row so a concurrent approval cannot race the delete.
func (r *PgxSaleReturnRepository) DeleteSaleReturn(ctx context.Context, returnID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.ReturnStatus
	statusQuery := `SELECT status FROM sale_returns WHERE return_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, statusQuery, returnID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock sale return %s: %w", returnID, err)
	}
	if status != models.ReturnPending {
		return fmt.Errorf("%w: cannot delete sale return with status: %s", apperrors.ErrConflict, status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_return_details WHERE return_id = $1;`, returnID); err != nil {
		return fmt.Errorf("failed to delete sale return details for %s: %w", returnID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sale_returns WHERE return_id = $1;`, returnID); err != nil {
		return fmt.Errorf("failed to delete sale return %s: %w", returnID, err)
	}

	return r.Commit(ctx, tx)
}
