package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portsrepo "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
	"github.com/pharmindo/pharmacy_inventory_app/internal/middleware"
)

// customerService provides customer management.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.customerRepo.FindCustomerByCode(ctx, req.CustomerCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check customer code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: customer code %s is already taken", apperrors.ErrDuplicate, req.CustomerCode)
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:   uuid.NewString(),
		CustomerCode: req.CustomerCode,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		BirthDate:    req.BirthDate,
		Gender:       domain.Gender(req.Gender),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	customers, err := s.customerRepo.FindCustomers(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.BirthDate != nil {
		customer.BirthDate = req.BirthDate
	}
	if req.Gender != nil {
		customer.Gender = domain.Gender(*req.Gender)
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}

	// Sales referencing the customer block the delete inside the repository
	// transaction.
	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		logger.Warn("Failed to delete customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}
