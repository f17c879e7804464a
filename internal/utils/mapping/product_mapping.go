package mapping

import (
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:      d.ProductID,
		Code:           d.Code,
		Name:           d.Name,
		GenericName:    d.GenericName,
		CategoryID:     d.CategoryID,
		SupplierID:     d.SupplierID,
		Unit:           d.Unit,
		Price:          d.Price,
		Stock:          d.Stock,
		MinimumStock:   d.MinimumStock,
		ExpiryDate:     d.ExpiryDate,
		BatchNumber:    d.BatchNumber,
		Description:    d.Description,
		IsPrescription: d.IsPrescription,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:      m.ProductID,
		Code:           m.Code,
		Name:           m.Name,
		GenericName:    m.GenericName,
		CategoryID:     m.CategoryID,
		SupplierID:     m.SupplierID,
		Unit:           m.Unit,
		Price:          m.Price,
		Stock:          m.Stock,
		MinimumStock:   m.MinimumStock,
		ExpiryDate:     m.ExpiryDate,
		BatchNumber:    m.BatchNumber,
		Description:    m.Description,
		IsPrescription: m.IsPrescription,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to a slice of domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
