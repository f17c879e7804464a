package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgx-backed repositories and returns them
// bundled in a RepositoryProvider.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		CategoryRepo:   newPgxCategoryRepository(dbPool),
		SupplierRepo:   newPgxSupplierRepository(dbPool),
		CustomerRepo:   newPgxCustomerRepository(dbPool),
		ProductRepo:    newPgxProductRepository(dbPool),
		MovementRepo:   newPgxMovementRepository(dbPool),
		PurchaseRepo:   newPgxPurchaseRepository(dbPool),
		SaleRepo:       newPgxSaleRepository(dbPool),
		SaleReturnRepo: newPgxSaleReturnRepository(dbPool),
	}
}
