package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
	"github.com/pharmindo/pharmacy_inventory_app/internal/utils/mapping"
)

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	modelCustomer := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, customer_code, name, phone, email, address, birth_date, gender, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCustomer.CustomerID,
		modelCustomer.CustomerCode,
		modelCustomer.Name,
		modelCustomer.Phone,
		modelCustomer.Email,
		modelCustomer.Address,
		modelCustomer.BirthDate,
		modelCustomer.Gender,
		modelCustomer.CreatedAt,
		modelCustomer.CreatedBy,
		modelCustomer.LastUpdatedAt,
		modelCustomer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("customer with code %s already exists: %w", customer.CustomerCode, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, customer_code, name, phone, email, address, birth_date, gender, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE customer_id = $1;
	`
	return r.scanCustomerRow(ctx, query, customerID)
}

func (r *PgxCustomerRepository) FindCustomerByCode(ctx context.Context, customerCode string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, customer_code, name, phone, email, address, birth_date, gender, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE customer_code = $1;
	`
	return r.scanCustomerRow(ctx, query, customerCode)
}

func (r *PgxCustomerRepository) scanCustomerRow(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	var modelCustomer models.Customer
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&modelCustomer.CustomerID,
		&modelCustomer.CustomerCode,
		&modelCustomer.Name,
		&modelCustomer.Phone,
		&modelCustomer.Email,
		&modelCustomer.Address,
		&modelCustomer.BirthDate,
		&modelCustomer.Gender,
		&modelCustomer.CreatedAt,
		&modelCustomer.CreatedBy,
		&modelCustomer.LastUpdatedAt,
		&modelCustomer.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	domainCustomer := mapping.ToDomainCustomer(modelCustomer)
	return &domainCustomer, nil
}

func (r *PgxCustomerRepository) FindCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT customer_id, customer_code, name, phone, email, address, birth_date, gender, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	modelCustomers := []models.Customer{}
	for rows.Next() {
		var m models.Customer
		err := rows.Scan(
			&m.CustomerID,
			&m.CustomerCode,
			&m.Name,
			&m.Phone,
			&m.Email,
			&m.Address,
			&m.BirthDate,
			&m.Gender,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		modelCustomers = append(modelCustomers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}

	return mapping.ToDomainCustomerSlice(modelCustomers), nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	modelCustomer := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET customer_code = $2, name = $3, phone = $4, email = $5, address = $6, birth_date = $7, gender = $8, last_updated_at = $9, last_updated_by = $10
		WHERE customer_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelCustomer.CustomerID,
		modelCustomer.CustomerCode,
		modelCustomer.Name,
		modelCustomer.Phone,
		modelCustomer.Email,
		modelCustomer.Address,
		modelCustomer.BirthDate,
		modelCustomer.Gender,
		modelCustomer.LastUpdatedAt,
		modelCustomer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("customer with code %s already exists: %w", customer.CustomerCode, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer. The sales reference check shares the
// delete transaction.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var saleCount int64
	countQuery := `SELECT COUNT(*) FROM sales WHERE customer_id = $1;`
	if err := tx.QueryRow(ctx, countQuery, customerID).Scan(&saleCount); err != nil {
		return fmt.Errorf("failed to count sales for customer %s: %w", customerID, err)
	}
	if saleCount > 0 {
		return fmt.Errorf("%w: customer is referenced by %d sale(s)", apperrors.ErrConflict, saleCount)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
