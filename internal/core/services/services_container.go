package services

import (
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Supplier = NewSupplierService(repos.SupplierRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Product = NewProductService(repos.ProductRepo, repos.CategoryRepo, repos.SupplierRepo)
	container.Movement = NewMovementService(repos.MovementRepo, repos.ProductRepo)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo, repos.ProductRepo, repos.SupplierRepo)
	container.Sale = NewSaleService(repos.SaleRepo, repos.ProductRepo, repos.CustomerRepo)
	container.SaleReturn = NewSaleReturnService(repos.SaleReturnRepo, repos.SaleRepo)

	return container
}
