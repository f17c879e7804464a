package services_test

import (
	"context"
	"fmt"
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

type PurchaseServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo *MockPurchaseRepository
	mockProductRepo  *MockProductRepository
	mockSupplierRepo *MockSupplierRepository
	service          portssvc.PurchaseSvcFacade
	supplier         domain.Supplier
	productA         domain.Product
	productB         domain.Product
	userID           string
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.service = services.NewPurchaseService(suite.mockPurchaseRepo, suite.mockProductRepo, suite.mockSupplierRepo)

	suite.userID = uuid.NewString()
	suite.supplier = domain.Supplier{SupplierID: uuid.NewString(), Name: "PT Kimia Sejahtera", IsActive: true}
	suite.productA = domain.Product{ProductID: uuid.NewString(), Code: "PRD-001", Name: "Paracetamol 500mg", Stock: 50}
	suite.productB = domain.Product{ProductID: uuid.NewString(), Code: "PRD-002", Name: "Amoxicillin 250mg", Stock: 20}
}

func (suite *PurchaseServiceTestSuite) expectLookups(productIDs ...string) {
	suite.mockSupplierRepo.On("FindSupplierByID", mock.Anything, suite.supplier.SupplierID).Return(&suite.supplier, nil).Once()
	productsMap := map[string]domain.Product{
		suite.productA.ProductID: suite.productA,
		suite.productB.ProductID: suite.productB,
	}
	suite.mockProductRepo.On("FindProductsByIDs", mock.Anything, productIDs).Return(productsMap, nil).Once()
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_PendingMovesNoStock() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierID: suite.supplier.SupplierID,
		Status:     domain.PurchasePending,
		Items: []dto.PurchaseItemRequest{
			{ProductID: suite.productA.ProductID, Quantity: 10, UnitPrice: decimal.NewFromFloat(2.50)},
		},
	}
	suite.expectLookups(suite.productA.ProductID)

	suite.mockPurchaseRepo.On("SavePurchase", mock.Anything,
		mock.MatchedBy(func(p domain.Purchase) bool {
			return p.Status == domain.PurchasePending && p.TotalAmount.Equal(decimal.NewFromInt(25))
		}),
		mock.AnythingOfType("[]domain.PurchaseDetail"),
		mock.MatchedBy(func(effects []domain.StockEffect) bool { return len(effects) == 0 }),
		domain.AbortOnShortfall,
	).Return(&domain.Purchase{PurchaseID: uuid.NewString(), PurchaseNumber: "PO-20250114-0001", Status: domain.PurchasePending}, nil).Once()

	created, err := suite.service.CreatePurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("PO-20250114-0001", created.PurchaseNumber)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_ReceivedBuildsInEffectsPerLine() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierID: suite.supplier.SupplierID,
		Status:     domain.PurchaseReceived,
		Items: []dto.PurchaseItemRequest{
			{ProductID: suite.productA.ProductID, Quantity: 10, UnitPrice: decimal.NewFromFloat(2.50), BatchNumber: "B-100"},
			{ProductID: suite.productB.ProductID, Quantity: 4, UnitPrice: decimal.NewFromInt(3)},
		},
	}
	suite.expectLookups(suite.productA.ProductID, suite.productB.ProductID)

	suite.mockPurchaseRepo.On("SavePurchase", mock.Anything,
		mock.AnythingOfType("domain.Purchase"),
		mock.AnythingOfType("[]domain.PurchaseDetail"),
		mock.MatchedBy(func(effects []domain.StockEffect) bool {
			if len(effects) != 2 {
				return false
			}
			first, second := effects[0], effects[1]
			return first.ProductID == suite.productA.ProductID &&
				first.MovementType == domain.MovementIn &&
				first.Quantity == 10 &&
				first.Reference.Kind == domain.RefPurchase &&
				first.UpdateProductBatch &&
				second.ProductID == suite.productB.ProductID &&
				second.Quantity == 4 &&
				!second.UpdateProductBatch
		}),
		domain.AbortOnShortfall,
	).Return(&domain.Purchase{PurchaseID: uuid.NewString(), Status: domain.PurchaseReceived}, nil).Once()

	_, err := suite.service.CreatePurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_UnknownProductFails() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.CreatePurchaseRequest{
		SupplierID: suite.supplier.SupplierID,
		Status:     domain.PurchasePending,
		Items: []dto.PurchaseItemRequest{
			{ProductID: unknownID, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	}
	suite.mockSupplierRepo.On("FindSupplierByID", mock.Anything, suite.supplier.SupplierID).Return(&suite.supplier, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", mock.Anything, []string{unknownID}).Return(map[string]domain.Product{}, nil).Once()

	_, err := suite.service.CreatePurchase(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SavePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestUpdatePurchase_PendingToReceivedAppliesStockIn() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	pending := domain.Purchase{PurchaseID: purchaseID, Status: domain.PurchasePending}
	details := []domain.PurchaseDetail{
		{DetailID: uuid.NewString(), PurchaseID: purchaseID, ProductID: suite.productA.ProductID, Quantity: 10},
	}
	nextStatus := domain.PurchaseReceived

	suite.mockPurchaseRepo.On("FindPurchaseByID", mock.Anything, purchaseID).Return(&pending, nil).Once()
	suite.mockPurchaseRepo.On("FindPurchaseDetails", mock.Anything, purchaseID).Return(details, nil).Twice()
	suite.mockPurchaseRepo.On("UpdatePurchaseStatus", mock.Anything,
		mock.MatchedBy(func(p domain.Purchase) bool { return p.Status == domain.PurchaseReceived }),
		domain.PurchasePending,
		mock.MatchedBy(func(effects []domain.StockEffect) bool {
			return len(effects) == 1 &&
				effects[0].MovementType == domain.MovementIn &&
				effects[0].Quantity == 10 &&
				effects[0].Reference.Kind == domain.RefPurchase &&
				!effects[0].UpdateProductBatch
		}),
		domain.AbortOnShortfall,
	).Return(nil).Once()

	updated, err := suite.service.UpdatePurchase(ctx, purchaseID, dto.UpdatePurchaseRequest{Status: &nextStatus}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PurchaseReceived, updated.Status)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestUpdatePurchase_LostStatusRaceSurfacesConflict() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	pending := domain.Purchase{PurchaseID: purchaseID, Status: domain.PurchasePending}
	details := []domain.PurchaseDetail{
		{DetailID: uuid.NewString(), PurchaseID: purchaseID, ProductID: suite.productA.ProductID, Quantity: 10},
	}
	nextStatus := domain.PurchaseReceived

	suite.mockPurchaseRepo.On("FindPurchaseByID", mock.Anything, purchaseID).Return(&pending, nil).Once()
	suite.mockPurchaseRepo.On("FindPurchaseDetails", mock.Anything, purchaseID).Return(details, nil).Once()
	// The conditional write found the header no longer pending, so a parallel
	// receive already applied the stock-in.
	suite.mockPurchaseRepo.On("UpdatePurchaseStatus", mock.Anything,
		mock.AnythingOfType("domain.Purchase"),
		domain.PurchasePending,
		mock.AnythingOfType("[]domain.StockEffect"),
		domain.AbortOnShortfall,
	).Return(fmt.Errorf("%w: purchase %s is no longer %s", apperrors.ErrConflict, purchaseID, domain.PurchasePending)).Once()

	_, err := suite.service.UpdatePurchase(ctx, purchaseID, dto.UpdatePurchaseRequest{Status: &nextStatus}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestUpdatePurchase_ReceivedToCancelledSkipsShortfalls() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	received := domain.Purchase{PurchaseID: purchaseID, Status: domain.PurchaseReceived}
	details := []domain.PurchaseDetail{
		{DetailID: uuid.NewString(), PurchaseID: purchaseID, ProductID: suite.productA.ProductID, Quantity: 10},
	}
	nextStatus := domain.PurchaseCancelled

	suite.mockPurchaseRepo.On("FindPurchaseByID", mock.Anything, purchaseID).Return(&received, nil).Once()
	suite.mockPurchaseRepo.On("FindPurchaseDetails", mock.Anything, purchaseID).Return(details, nil).Twice()
	suite.mockPurchaseRepo.On("UpdatePurchaseStatus", mock.Anything,
		mock.MatchedBy(func(p domain.Purchase) bool { return p.Status == domain.PurchaseCancelled }),
		domain.PurchaseReceived,
		mock.MatchedBy(func(effects []domain.StockEffect) bool {
			return len(effects) == 1 && effects[0].MovementType == domain.MovementOut && effects[0].Quantity == 10
		}),
		domain.SkipOnShortfall,
	).Return(nil).Once()

	_, err := suite.service.UpdatePurchase(ctx, purchaseID, dto.UpdatePurchaseRequest{Status: &nextStatus}, suite.userID)

	suite.Require().NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestUpdatePurchase_CancelledCannotBeRevived() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	cancelled := domain.Purchase{PurchaseID: purchaseID, Status: domain.PurchaseCancelled}
	nextStatus := domain.PurchaseReceived

	suite.mockPurchaseRepo.On("FindPurchaseByID", mock.Anything, purchaseID).Return(&cancelled, nil).Once()

	_, err := suite.service.UpdatePurchase(ctx, purchaseID, dto.UpdatePurchaseRequest{Status: &nextStatus}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdatePurchaseStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestDeletePurchase_ReceivedIsRejected() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	received := domain.Purchase{PurchaseID: purchaseID, Status: domain.PurchaseReceived}

	suite.mockPurchaseRepo.On("FindPurchaseByID", mock.Anything, purchaseID).Return(&received, nil).Once()

	err := suite.service.DeletePurchase(ctx, purchaseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "DeletePurchase", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestDeletePurchase_PendingSucceeds() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	pending := domain.Purchase{PurchaseID: purchaseID, Status: domain.PurchasePending}

	suite.mockPurchaseRepo.On("FindPurchaseByID", mock.Anything, purchaseID).Return(&pending, nil).Once()
	suite.mockPurchaseRepo.On("DeletePurchase", mock.Anything, purchaseID).Return(nil).Once()

	err := suite.service.DeletePurchase(ctx, purchaseID)

	suite.Require().NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func TestPurchaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
