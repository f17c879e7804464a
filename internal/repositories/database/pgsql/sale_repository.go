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

const saleColumns = `sale_id, sale_number, customer_id, user_id, sale_date, total_amount, discount_amount, tax_amount, final_amount, payment_method, payment_status, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryFacade
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func scanSaleRow(row pgx.Row) (*models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.SaleNumber,
		&m.CustomerID,
		&m.UserID,
		&m.SaleDate,
		&m.TotalAmount,
		&m.DiscountAmount,
		&m.TaxAmount,
		&m.FinalAmount,
		&m.PaymentMethod,
		&m.PaymentStatus,
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

// SaveSale persists the header, its line items and the out movements in one
// transaction. Stock leaves at creation; any insufficient line aborts the
// whole transaction.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, details []domain.SaleDetail, effects []domain.StockEffect) (*domain.Sale, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, salePrefix, sale.SaleDate)
	if err != nil {
		return nil, err
	}
	sale.SaleNumber = number

	modelSale := mapping.ToModelSale(sale)
	headerQuery := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelSale.SaleID,
		modelSale.SaleNumber,
		modelSale.CustomerID,
		modelSale.UserID,
		modelSale.SaleDate,
		modelSale.TotalAmount,
		modelSale.DiscountAmount,
		modelSale.TaxAmount,
		modelSale.FinalAmount,
		modelSale.PaymentMethod,
		modelSale.PaymentStatus,
		modelSale.Notes,
		modelSale.CreatedAt,
		modelSale.CreatedBy,
		modelSale.LastUpdatedAt,
		modelSale.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale %s: %w", modelSale.SaleID, err)
	}

	batch := &pgx.Batch{}
	detailQuery := `
		INSERT INTO sale_details (detail_id, sale_id, product_id, quantity, unit_price, discount_amount, total_price, batch_number, expiry_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, detail := range details {
		modelDetail := mapping.ToModelSaleDetail(detail)
		batch.Queue(detailQuery,
			modelDetail.DetailID,
			modelDetail.SaleID,
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
		return nil, fmt.Errorf("failed to insert sale details for %s: %w", modelSale.SaleID, err)
	}

	if err := applyStockEffects(ctx, tx, effects, domain.AbortOnShortfall, sale.CreatedBy, sale.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`
	modelSale, err := scanSaleRow(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}

	domainSale := mapping.ToDomainSale(*modelSale)
	return &domainSale, nil
}

func (r *PgxSaleRepository) FindSaleDetails(ctx context.Context, saleID string) ([]domain.SaleDetail, error) {
	query := `
		SELECT detail_id, sale_id, product_id, quantity, unit_price, discount_amount, total_price, batch_number, expiry_date, created_at, created_by, last_updated_at, last_updated_by
		FROM sale_details
		WHERE sale_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale details for %s: %w", saleID, err)
	}
	defer rows.Close()

	modelDetails := []models.SaleDetail{}
	for rows.Next() {
		var m models.SaleDetail
		err := rows.Scan(
			&m.DetailID,
			&m.SaleID,
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
			return nil, fmt.Errorf("failed to scan sale detail row: %w", err)
		}
		modelDetails = append(modelDetails, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale detail rows: %w", err)
	}

	return mapping.ToDomainSaleDetailSlice(modelDetails), nil
}

func (r *PgxSaleRepository) FindSales(ctx context.Context, filter portsrepo.ListSalesFilter, limit int, offset int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	conditions := []string{}
	args := []any{}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conditions = append(conditions, "customer_id = $"+strconv.Itoa(len(args)))
	}
	if filter.PaymentStatus != nil {
		args = append(args, string(*filter.PaymentStatus))
		conditions = append(conditions, "payment_status = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY sale_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	modelSales := []models.Sale{}
	for rows.Next() {
		modelSale, err := scanSaleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		modelSales = append(modelSales, *modelSale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
	}

	return mapping.ToDomainSaleSlice(modelSales), nil
}

// UpdateSale writes payment status and notes, predicated on the status the
// change was decided against. Payment changes never move stock.
func (r *PgxSaleRepository) UpdateSale(ctx context.Context, sale domain.Sale, from domain.PaymentStatus) error {
	query := `
		UPDATE sales
		SET payment_status = $2, notes = $3, last_updated_at = $4, last_updated_by = $5
		WHERE sale_id = $1 AND payment_status = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		sale.SaleID,
		string(sale.PaymentStatus),
		sale.Notes,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update sale %s: %w", sale.SaleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s is no longer %s", apperrors.ErrConflict, sale.SaleID, from)
	}
	return nil
}

// DeleteSale removes a payment-pending sale and its lines, applying the
// compensating in movements in the same transaction. The status check locks
// the header row so a concurrent payment cannot race the delete.
func (r *PgxSaleRepository) DeleteSale(ctx context.Context, saleID string, effects []domain.StockEffect, actorID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var paymentStatus models.PaymentStatus
	statusQuery := `SELECT payment_status FROM sales WHERE sale_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, statusQuery, saleID).Scan(&paymentStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock sale %s: %w", saleID, err)
	}
	if paymentStatus != models.PaymentPending {
		return fmt.Errorf("%w: cannot delete sale with payment status: %s", apperrors.ErrConflict, paymentStatus)
	}

	if err := applyStockEffects(ctx, tx, effects, domain.AbortOnShortfall, actorID, time.Now().UTC()); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_details WHERE sale_id = $1;`, saleID); err != nil {
		return fmt.Errorf("failed to delete sale details for %s: %w", saleID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID); err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", saleID, err)
	}

	return r.Commit(ctx, tx)
}
