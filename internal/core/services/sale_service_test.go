package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
)

type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo     *MockSaleRepository
	mockProductRepo  *MockProductRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.SaleSvcFacade
	productA         domain.Product
	productB         domain.Product
	userID           string
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewSaleService(suite.mockSaleRepo, suite.mockProductRepo, suite.mockCustomerRepo)

	suite.userID = uuid.NewString()
	suite.productA = domain.Product{ProductID: uuid.NewString(), Code: "PRD-001", Name: "Paracetamol 500mg", Stock: 50}
	suite.productB = domain.Product{ProductID: uuid.NewString(), Code: "PRD-002", Name: "Amoxicillin 250mg", Stock: 3}
}

func (suite *SaleServiceTestSuite) productsByID() map[string]domain.Product {
	return map[string]domain.Product{
		suite.productA.ProductID: suite.productA,
		suite.productB.ProductID: suite.productB,
	}
}

func (suite *SaleServiceTestSuite) TestCreateSale_BuildsOutEffectsInLineOrder() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPaid,
		Items: []dto.SaleItemRequest{
			{ProductID: suite.productB.ProductID, Quantity: 2, UnitPrice: decimal.NewFromInt(4)},
			{ProductID: suite.productA.ProductID, Quantity: 5, UnitPrice: decimal.NewFromFloat(1.50)},
		},
	}
	suite.mockProductRepo.On("FindProductsByIDs", mock.Anything,
		[]string{suite.productB.ProductID, suite.productA.ProductID}).
		Return(suite.productsByID(), nil).Once()

	suite.mockSaleRepo.On("SaveSale", mock.Anything,
		mock.MatchedBy(func(sale domain.Sale) bool {
			return sale.TotalAmount.Equal(decimal.NewFromFloat(15.50)) &&
				sale.FinalAmount.Equal(decimal.NewFromFloat(15.50)) &&
				sale.PaymentStatus == domain.PaymentPaid
		}),
		mock.AnythingOfType("[]domain.SaleDetail"),
		mock.MatchedBy(func(effects []domain.StockEffect) bool {
			if len(effects) != 2 {
				return false
			}
			return effects[0].ProductID == suite.productB.ProductID &&
				effects[0].MovementType == domain.MovementOut &&
				effects[0].Quantity == 2 &&
				effects[0].Reference.Kind == domain.RefSale &&
				effects[1].ProductID == suite.productA.ProductID &&
				effects[1].Quantity == 5
		}),
	).Return(&domain.Sale{SaleID: uuid.NewString(), SaleNumber: "SL-20250114-0001"}, nil).Once()

	created, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("SL-20250114-0001", created.SaleNumber)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_InsufficientStockSurfaces() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPaid,
		Items: []dto.SaleItemRequest{
			{ProductID: suite.productB.ProductID, Quantity: 10, UnitPrice: decimal.NewFromInt(4)},
		},
	}
	stockErr := &apperrors.InsufficientStockError{
		ProductID:   suite.productB.ProductID,
		ProductName: suite.productB.Name,
		Available:   3,
		Requested:   10,
	}
	suite.mockProductRepo.On("FindProductsByIDs", mock.Anything, []string{suite.productB.ProductID}).
		Return(suite.productsByID(), nil).Once()
	suite.mockSaleRepo.On("SaveSale", mock.Anything,
		mock.AnythingOfType("domain.Sale"),
		mock.AnythingOfType("[]domain.SaleDetail"),
		mock.AnythingOfType("[]domain.StockEffect"),
	).Return(nil, stockErr).Once()

	_, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().Error(err)
	var target *apperrors.InsufficientStockError
	suite.ErrorAs(err, &target)
	suite.Equal(int64(3), target.Available)
}

func (suite *SaleServiceTestSuite) TestCreateSale_UnknownCustomerFails() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.CreateSaleRequest{
		CustomerID:    &customerID,
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPending,
		Items: []dto.SaleItemRequest{
			{ProductID: suite.productA.ProductID, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", mock.Anything, customerID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestUpdateSale_PaidToPendingIsConflict() {
	ctx := context.Background()
	saleID := uuid.NewString()
	paid := domain.Sale{SaleID: saleID, PaymentStatus: domain.PaymentPaid}
	nextStatus := domain.PaymentPending

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, saleID).Return(&paid, nil).Once()

	_, err := suite.service.UpdateSale(ctx, saleID, dto.UpdateSaleRequest{PaymentStatus: &nextStatus}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "UpdateSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestUpdateSale_PendingToPaid() {
	ctx := context.Background()
	saleID := uuid.NewString()
	pending := domain.Sale{SaleID: saleID, PaymentStatus: domain.PaymentPending}
	nextStatus := domain.PaymentPaid

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, saleID).Return(&pending, nil).Once()
	suite.mockSaleRepo.On("UpdateSale", mock.Anything,
		mock.MatchedBy(func(sale domain.Sale) bool { return sale.PaymentStatus == domain.PaymentPaid }),
		domain.PaymentPending,
	).Return(nil).Once()
	suite.mockSaleRepo.On("FindSaleDetails", mock.Anything, saleID).Return([]domain.SaleDetail{}, nil).Once()

	updated, err := suite.service.UpdateSale(ctx, saleID, dto.UpdateSaleRequest{PaymentStatus: &nextStatus}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, updated.PaymentStatus)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeleteSale_RestoresStockPerLine() {
	ctx := context.Background()
	saleID := uuid.NewString()
	pending := domain.Sale{SaleID: saleID, PaymentStatus: domain.PaymentPending}
	details := []domain.SaleDetail{
		{DetailID: uuid.NewString(), SaleID: saleID, ProductID: suite.productA.ProductID, Quantity: 5},
		{DetailID: uuid.NewString(), SaleID: saleID, ProductID: suite.productB.ProductID, Quantity: 2},
	}

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, saleID).Return(&pending, nil).Once()
	suite.mockSaleRepo.On("FindSaleDetails", mock.Anything, saleID).Return(details, nil).Once()
	suite.mockSaleRepo.On("DeleteSale", mock.Anything, saleID,
		mock.MatchedBy(func(effects []domain.StockEffect) bool {
			return len(effects) == 2 &&
				effects[0].MovementType == domain.MovementIn &&
				effects[0].Quantity == 5 &&
				effects[1].Quantity == 2
		}),
		suite.userID,
	).Return(nil).Once()

	err := suite.service.DeleteSale(ctx, saleID, suite.userID)

	suite.Require().NoError(err)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeleteSale_PaidIsRejected() {
	ctx := context.Background()
	saleID := uuid.NewString()
	paid := domain.Sale{SaleID: saleID, PaymentStatus: domain.PaymentPaid}

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, saleID).Return(&paid, nil).Once()

	err := suite.service.DeleteSale(ctx, saleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "DeleteSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
