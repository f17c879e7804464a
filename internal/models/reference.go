package models

import "time"

// Category represents a product category row.
type Category struct {
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}

// Supplier represents a supplier row.
type Supplier struct {
	SupplierID    string `db:"supplier_id"`
	Name          string `db:"name"`
	ContactPerson string `db:"contact_person"`
	Email         string `db:"email"`
	Phone         string `db:"phone"`
	Address       string `db:"address"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}

// Customer represents a customer row.
type Customer struct {
	CustomerID   string     `db:"customer_id"`
	CustomerCode string     `db:"customer_code"`
	Name         string     `db:"name"`
	Phone        string     `db:"phone"`
	Email        string     `db:"email"`
	Address      string     `db:"address"`
	BirthDate    *time.Time `db:"birth_date"`
	Gender       string     `db:"gender"` // "L" or "P"
	AuditFields
}
