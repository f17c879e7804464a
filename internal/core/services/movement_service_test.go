package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
)

type MovementServiceTestSuite struct {
	suite.Suite
	mockMovementRepo *MockMovementRepository
	mockProductRepo  *MockProductRepository
	service          portssvc.MovementSvcFacade
	product          domain.Product
	userID           string
}

func (suite *MovementServiceTestSuite) SetupTest() {
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewMovementService(suite.mockMovementRepo, suite.mockProductRepo)

	suite.userID = uuid.NewString()
	suite.product = domain.Product{ProductID: uuid.NewString(), Code: "PRD-001", Name: "Paracetamol 500mg", Stock: 40}
}

func (suite *MovementServiceTestSuite) TestCreateMovement_ManualIn() {
	ctx := context.Background()
	req := dto.CreateMovementRequest{
		ProductID:    suite.product.ProductID,
		MovementType: domain.MovementIn,
		Quantity:     12,
		Notes:        "stock opname correction",
	}
	suite.mockProductRepo.On("FindProductByID", mock.Anything, suite.product.ProductID).Return(&suite.product, nil).Once()
	suite.mockMovementRepo.On("ApplyMovement", mock.Anything,
		mock.MatchedBy(func(m domain.StockMovement) bool {
			return m.ProductID == suite.product.ProductID &&
				m.MovementType == domain.MovementIn &&
				m.Quantity == 12 &&
				m.Reference.Kind == domain.RefAdjustment &&
				m.UserID == suite.userID
		}),
		(*int64)(nil),
	).Return(&domain.StockMovement{MovementID: uuid.NewString(), Quantity: 12, MovementType: domain.MovementIn, ProductID: suite.product.ProductID}, nil).Once()

	applied, err := suite.service.CreateMovement(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(12), applied.Quantity)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestCreateMovement_AdjustmentRequiresTarget() {
	ctx := context.Background()
	req := dto.CreateMovementRequest{
		ProductID:    suite.product.ProductID,
		MovementType: domain.MovementAdjustment,
	}
	suite.mockProductRepo.On("FindProductByID", mock.Anything, suite.product.ProductID).Return(&suite.product, nil).Once()

	_, err := suite.service.CreateMovement(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "ApplyMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestCreateMovement_AdjustmentPassesTargetStock() {
	ctx := context.Background()
	target := int64(25)
	req := dto.CreateMovementRequest{
		ProductID:      suite.product.ProductID,
		MovementType:   domain.MovementAdjustment,
		NewStockAmount: &target,
	}
	suite.mockProductRepo.On("FindProductByID", mock.Anything, suite.product.ProductID).Return(&suite.product, nil).Once()
	// The repository resolves the direction under the row lock; 40 -> 25 is out 15.
	suite.mockMovementRepo.On("ApplyMovement", mock.Anything,
		mock.AnythingOfType("domain.StockMovement"),
		&target,
	).Return(&domain.StockMovement{
		MovementID:   uuid.NewString(),
		ProductID:    suite.product.ProductID,
		MovementType: domain.MovementOut,
		Quantity:     15,
	}, nil).Once()

	applied, err := suite.service.CreateMovement(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.MovementOut, applied.MovementType)
	suite.Equal(int64(15), applied.Quantity)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestCreateMovement_UnknownProduct() {
	ctx := context.Background()
	req := dto.CreateMovementRequest{
		ProductID:    suite.product.ProductID,
		MovementType: domain.MovementIn,
		Quantity:     1,
	}
	suite.mockProductRepo.On("FindProductByID", mock.Anything, suite.product.ProductID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateMovement(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MovementServiceTestSuite) TestUpdateMovementNotes_OnlyNotesChange() {
	ctx := context.Background()
	movementID := uuid.NewString()
	existing := domain.StockMovement{MovementID: movementID, ProductID: suite.product.ProductID, Notes: "old"}
	newNotes := "recount after delivery"

	suite.mockMovementRepo.On("FindMovementByID", mock.Anything, movementID).Return(&existing, nil).Once()
	suite.mockMovementRepo.On("UpdateMovementNotes", mock.Anything, movementID, newNotes, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	updated, err := suite.service.UpdateMovementNotes(ctx, movementID, dto.UpdateMovementRequest{Notes: &newNotes}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newNotes, updated.Notes)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestDeleteMovement_AlwaysForbidden() {
	err := suite.service.DeleteMovement(context.Background(), uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestMovementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MovementServiceTestSuite))
}
