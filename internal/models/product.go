package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable item row. Stock is only ever written through
// movement-producing transactions, never by plain product updates.
type Product struct {
	ProductID      string          `db:"product_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	GenericName    string          `db:"generic_name"`
	CategoryID     *string         `db:"category_id"` // Nullable FK
	SupplierID     *string         `db:"supplier_id"` // Nullable FK
	Unit           string          `db:"unit"`
	Price          decimal.Decimal `db:"price"`
	Stock          int64           `db:"stock"`
	MinimumStock   int64           `db:"minimum_stock"`
	ExpiryDate     *time.Time      `db:"expiry_date"`
	BatchNumber    string          `db:"batch_number"`
	Description    string          `db:"description"`
	IsPrescription bool            `db:"is_prescription"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
