package mapping

import (
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
)

// ToModelPurchase converts a domain Purchase to a model Purchase
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:     d.PurchaseID,
		PurchaseNumber: d.PurchaseNumber,
		SupplierID:     d.SupplierID,
		UserID:         d.UserID,
		PurchaseDate:   d.PurchaseDate,
		TotalAmount:    d.TotalAmount,
		DiscountAmount: d.DiscountAmount,
		TaxAmount:      d.TaxAmount,
		FinalAmount:    d.FinalAmount,
		Status:         models.PurchaseStatus(d.Status),
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase to a domain Purchase
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:     m.PurchaseID,
		PurchaseNumber: m.PurchaseNumber,
		SupplierID:     m.SupplierID,
		UserID:         m.UserID,
		PurchaseDate:   m.PurchaseDate,
		TotalAmount:    m.TotalAmount,
		DiscountAmount: m.DiscountAmount,
		TaxAmount:      m.TaxAmount,
		FinalAmount:    m.FinalAmount,
		Status:         domain.PurchaseStatus(m.Status),
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseSlice converts a slice of model Purchases to a slice of domain Purchases
func ToDomainPurchaseSlice(ms []models.Purchase) []domain.Purchase {
	ds := make([]domain.Purchase, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchase(m)
	}
	return ds
}

// ToModelPurchaseDetail converts a domain PurchaseDetail to a model PurchaseDetail
func ToModelPurchaseDetail(d domain.PurchaseDetail) models.PurchaseDetail {
	return models.PurchaseDetail{
		DetailID:       d.DetailID,
		PurchaseID:     d.PurchaseID,
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

// ToDomainPurchaseDetail converts a model PurchaseDetail to a domain PurchaseDetail
func ToDomainPurchaseDetail(m models.PurchaseDetail) domain.PurchaseDetail {
	return domain.PurchaseDetail{
		DetailID:       m.DetailID,
		PurchaseID:     m.PurchaseID,
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

// ToDomainPurchaseDetailSlice converts a slice of model PurchaseDetails to a slice of domain PurchaseDetails
func ToDomainPurchaseDetailSlice(ms []models.PurchaseDetail) []domain.PurchaseDetail {
	ds := make([]domain.PurchaseDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchaseDetail(m)
	}
	return ds
}
