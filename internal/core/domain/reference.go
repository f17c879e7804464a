package domain

import "time"

// Category groups products for browsing and reporting.
type Category struct {
	CategoryID  string `json:"categoryID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// Supplier is a purchasing counterpart. Deletion is blocked while products or
// purchases still reference it.
type Supplier struct {
	SupplierID    string `json:"supplierID"` // Primary Key (UUID)
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IsActive      bool   `json:"isActive"`
	AuditFields
}

// Gender codes follow the source data: L (laki-laki) and P (perempuan).
type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

// Customer is a sales counterpart. Deletion is blocked while sales still
// reference it.
type Customer struct {
	CustomerID   string     `json:"customerID"` // Primary Key (UUID)
	CustomerCode string     `json:"customerCode"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Address      string     `json:"address"`
	BirthDate    *time.Time `json:"birthDate"`
	Gender       Gender     `json:"gender"`
	AuditFields
}
