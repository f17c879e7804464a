package mapping

import (
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/pharmindo/pharmacy_inventory_app/internal/models"
)

// ToModelStockMovement converts a domain StockMovement to a model StockMovement
func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	return models.StockMovement{
		MovementID:    d.MovementID,
		ProductID:     d.ProductID,
		MovementType:  models.MovementType(d.MovementType),
		Quantity:      d.Quantity,
		ReferenceType: string(d.Reference.Kind),
		ReferenceID:   d.Reference.ID,
		BatchNumber:   d.BatchNumber,
		ExpiryDate:    d.ExpiryDate,
		Notes:         d.Notes,
		UserID:        d.UserID,
		MovementDate:  d.MovementDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockMovement converts a model StockMovement to a domain StockMovement
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID:   m.MovementID,
		ProductID:    m.ProductID,
		MovementType: domain.MovementType(m.MovementType),
		Quantity:     m.Quantity,
		Reference: domain.MovementRef{
			Kind: domain.ReferenceKind(m.ReferenceType),
			ID:   m.ReferenceID,
		},
		BatchNumber:  m.BatchNumber,
		ExpiryDate:   m.ExpiryDate,
		Notes:        m.Notes,
		UserID:       m.UserID,
		MovementDate: m.MovementDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockMovementSlice converts a slice of model StockMovements to a slice of domain StockMovements
func ToDomainStockMovementSlice(ms []models.StockMovement) []domain.StockMovement {
	ds := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockMovement(m)
	}
	return ds
}
