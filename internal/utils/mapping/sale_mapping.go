package mapping

import (
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:         d.SaleID,
		SaleNumber:     d.SaleNumber,
		CustomerID:     d.CustomerID,
		UserID:         d.UserID,
		SaleDate:       d.SaleDate,
		TotalAmount:    d.TotalAmount,
		DiscountAmount: d.DiscountAmount,
		TaxAmount:      d.TaxAmount,
		FinalAmount:    d.FinalAmount,
		PaymentMethod:  models.PaymentMethod(d.PaymentMethod),
		PaymentStatus:  models.PaymentStatus(d.PaymentStatus),
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:         m.SaleID,
		SaleNumber:     m.SaleNumber,
		CustomerID:     m.CustomerID,
		UserID:         m.UserID,
		SaleDate:       m.SaleDate,
		TotalAmount:    m.TotalAmount,
		DiscountAmount: m.DiscountAmount,
		TaxAmount:      m.TaxAmount,
		FinalAmount:    m.FinalAmount,
		PaymentMethod:  domain.PaymentMethod(m.PaymentMethod),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleSlice converts a slice of model Sales to a slice of domain Sales
func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}

// ToModelSaleDetail converts a domain SaleDetail to a model SaleDetail
func ToModelSaleDetail(d domain.SaleDetail) models.SaleDetail {
	return models.SaleDetail{
		DetailID:       d.DetailID,
		SaleID:         d.SaleID,
		ProductID:      d.ProductID,
		Quantity:       d.Quantity,
		UnitPrice:      d.UnitPrice,
		DiscountAmount: d.DiscountAmount,
		TotalPrice:     d.TotalPrice,
		BatchNumber:    d.BatchNumber,
		ExpiryDate:     d.ExpiryDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSaleDetail converts a model SaleDetail to a domain SaleDetail
func ToDomainSaleDetail(m models.SaleDetail) domain.SaleDetail {
	return domain.SaleDetail{
		DetailID:       m.DetailID,
		SaleID:         m.SaleID,
		ProductID:      m.ProductID,
		Quantity:       m.Quantity,
		UnitPrice:      m.UnitPrice,
		DiscountAmount: m.DiscountAmount,
		TotalPrice:     m.TotalPrice,
		BatchNumber:    m.BatchNumber,
		ExpiryDate:     m.ExpiryDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleDetailSlice converts a slice of model SaleDetails to a slice of domain SaleDetails
func ToDomainSaleDetailSlice(ms []models.SaleDetail) []domain.SaleDetail {
	ds := make([]domain.SaleDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleDetail(m)
	}
	return ds
}
