package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the stock account for one sellable item. Stock is the single
// source of truth for on-hand quantity and is mutated only through ledger-backed
// movement operations; product CRUD never writes it after creation.
type Product struct {
	ProductID      string          `json:"productID"` // Primary Key (UUID)
	Code           string          `json:"code"`      // Unique human-entered code
	Name           string          `json:"name"`
	GenericName    string          `json:"genericName"`
	CategoryID     *string         `json:"categoryID"`
	SupplierID     *string         `json:"supplierID"`
	Unit           string          `json:"unit"` // e.g. pcs, box, bottle
	Price          decimal.Decimal `json:"price"`
	Stock          int64           `json:"stock"` // Never negative
	MinimumStock   int64           `json:"minimumStock"`
	ExpiryDate     *time.Time      `json:"expiryDate"`
	BatchNumber    string          `json:"batchNumber"`
	Description    string          `json:"description"`
	IsPrescription bool            `json:"isPrescription"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
