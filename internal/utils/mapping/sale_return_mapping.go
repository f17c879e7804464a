package mapping

import (
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
)

// ToModelSaleReturn converts a domain SaleReturn to a model SaleReturn
func ToModelSaleReturn(d domain.SaleReturn) models.SaleReturn {
	return models.SaleReturn{
		ReturnID:          d.ReturnID,
		ReturnNumber:      d.ReturnNumber,
		SaleID:            d.SaleID,
		CustomerID:        d.CustomerID,
		UserID:            d.UserID,
		ReturnDate:        d.ReturnDate,
		TotalReturnAmount: d.TotalReturnAmount,
		Reason:            d.Reason,
		Status:            models.ReturnStatus(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSaleReturn converts a model SaleReturn to a domain SaleReturn
func ToDomainSaleReturn(m models.SaleReturn) domain.SaleReturn {
	return domain.SaleReturn{
		ReturnID:          m.ReturnID,
		ReturnNumber:      m.ReturnNumber,
		SaleID:            m.SaleID,
		CustomerID:        m.CustomerID,
		UserID:            m.UserID,
		ReturnDate:        m.ReturnDate,
		TotalReturnAmount: m.TotalReturnAmount,
		Reason:            m.Reason,
		Status:            domain.ReturnStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleReturnSlice converts a slice of model SaleReturns to a slice of domain SaleReturns
func ToDomainSaleReturnSlice(ms []models.SaleReturn) []domain.SaleReturn {
	ds := make([]domain.SaleReturn, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleReturn(m)
	}
	return ds
}

// ToModelSaleReturnDetail converts a domain SaleReturnDetail to a model SaleReturnDetail
func ToModelSaleReturnDetail(d domain.SaleReturnDetail) models.SaleReturnDetail {
	return models.SaleReturnDetail{
		DetailID:    d.DetailID,
		ReturnID:    d.ReturnID,
		ProductID:   d.ProductID,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		TotalPrice:  d.TotalPrice,
		Reason:      d.Reason,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSaleReturnDetail converts a model SaleReturnDetail to a domain SaleReturnDetail
func ToDomainSaleReturnDetail(m models.SaleReturnDetail) domain.SaleReturnDetail {
	return domain.SaleReturnDetail{
		DetailID:    m.DetailID,
		ReturnID:    m.ReturnID,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
		Reason:      m.Reason,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleReturnDetailSlice converts a slice of model SaleReturnDetails to a slice of domain SaleReturnDetails
func ToDomainSaleReturnDetailSlice(ms []models.SaleReturnDetail) []domain.SaleReturnDetail {
	ds := make([]domain.SaleReturnDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleReturnDetail(m)
	}
	return ds
}
