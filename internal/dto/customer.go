package dto

import (
	"time"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a customer.
type CreateCustomerRequest struct {
	CustomerCode string     `json:"customerCode" binding:"required,max=50"`
	Name         string     `json:"name" binding:"required,max=255"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email" binding:"omitempty,email"`
	Address      string     `json:"address"`
	BirthDate    *time.Time `json:"birthDate"`
	Gender       string     `json:"gender" binding:"omitempty,oneof=L P"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
type UpdateCustomerRequest struct {
	Name      *string    `json:"name"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Address   *string    `json:"address"`
	BirthDate *time.Time `json:"birthDate"`
	Gender    *string    `json:"gender" binding:"omitempty,oneof=L P"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID   string     `json:"customerID"`
	CustomerCode string     `json:"customerCode"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Address      string     `json:"address"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Gender       string     `json:"gender"`
	CreatedAt    time.Time  `json:"createdAt"`
	CreatedBy    string     `json:"createdBy"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:   c.CustomerID,
		CustomerCode: c.CustomerCode,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		BirthDate:    c.BirthDate,
		Gender:       string(c.Gender),
		CreatedAt:    c.CreatedAt,
		CreatedBy:    c.CreatedBy,
	}
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToListCustomersResponse converts a slice of domain.Customer to ListCustomersResponse DTO
func ToListCustomersResponse(customers []domain.Customer) ListCustomersResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return ListCustomersResponse{Customers: res}
}
