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

type SaleReturnServiceTestSuite struct {
	suite.Suite
	mockReturnRepo *MockSaleReturnRepository
	mockSaleRepo   *MockSaleRepository
	service        portssvc.SaleReturnSvcFacade
	sale           domain.Sale
	saleLine       domain.SaleDetail
	userID         string
}

func (suite *SaleReturnServiceTestSuite) SetupTest() {
	suite.mockReturnRepo = new(MockSaleReturnRepository)
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.service = services.NewSaleReturnService(suite.mockReturnRepo, suite.mockSaleRepo)

	suite.userID = uuid.NewString()
	suite.sale = domain.Sale{SaleID: uuid.NewString(), PaymentStatus: domain.PaymentPaid}
	suite.saleLine = domain.SaleDetail{
		DetailID:  uuid.NewString(),
		SaleID:    suite.sale.SaleID,
		ProductID: uuid.NewString(),
		Quantity:  5,
		UnitPrice: decimal.NewFromFloat(2.50),
	}
}

func (suite *SaleReturnServiceTestSuite) expectSaleLookup(returned map[string]int64) {
	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, suite.sale.SaleID).Return(&suite.sale, nil).Once()
	suite.mockSaleRepo.On("FindSaleDetails", mock.Anything, suite.sale.SaleID).
		Return([]domain.SaleDetail{suite.saleLine}, nil).Once()
	suite.mockReturnRepo.On("SumReturnedQuantities", mock.Anything, suite.sale.SaleID).Return(returned, nil).Once()
}

func (suite *SaleReturnServiceTestSuite) TestCreateSaleReturn_UnitPriceComesFromSaleLine() {
	ctx := context.Background()
	req := dto.CreateSaleReturnRequest{
		SaleID: suite.sale.SaleID,
		Status: domain.ReturnPending,
		Items: []dto.SaleReturnItemRequest{
			{ProductID: suite.saleLine.ProductID, Quantity: 2},
		},
	}
	suite.expectSaleLookup(map[string]int64{})

	suite.mockReturnRepo.On("SaveSaleReturn", mock.Anything,
		mock.MatchedBy(func(ret domain.SaleReturn) bool {
			return ret.SaleID == suite.sale.SaleID &&
				ret.Status == domain.ReturnPending &&
				ret.TotalReturnAmount.Equal(decimal.NewFromInt(5))
		}),
		mock.MatchedBy(func(details []domain.SaleReturnDetail) bool {
			return len(details) == 1 && details[0].UnitPrice.Equal(suite.saleLine.UnitPrice)
		}),
		mock.MatchedBy(func(effects []domain.StockEffect) bool { return len(effects) == 0 }),
		domain.AbortOnShortfall,
	).Return(&domain.SaleReturn{ReturnID: uuid.NewString(), ReturnNumber: "RT-20250114-0001"}, nil).Once()

	created, err := suite.service.CreateSaleReturn(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("RT-20250114-0001", created.ReturnNumber)
	suite.mockReturnRepo.AssertExpectations(suite.T())
}

func (suite *SaleReturnServiceTestSuite) TestCreateSaleReturn_ApprovedBuildsInEffects() {
	ctx := context.Background()
	req := dto.CreateSaleReturnRequest{
		SaleID: suite.sale.SaleID,
		Status: domain.ReturnApproved,
		Items: []dto.SaleReturnItemRequest{
			{ProductID: suite.saleLine.ProductID, Quantity: 3},
		},
	}
	suite.expectSaleLookup(map[string]int64{})

	suite.mockReturnRepo.On("SaveSaleReturn", mock.Anything,
		mock.AnythingOfType("domain.SaleReturn"),
		mock.AnythingOfType("[]domain.SaleReturnDetail"),
		mock.MatchedBy(func(effects []domain.StockEffect) bool {
			return len(effects) == 1 &&
				effects[0].ProductID == suite.saleLine.ProductID &&
				effects[0].MovementType == domain.MovementIn &&
				effects[0].Quantity == 3 &&
				effects[0].Reference.Kind == domain.RefReturn
		}),
		domain.AbortOnShortfall,
	).Return(&domain.SaleReturn{ReturnID: uuid.NewString(), Status: domain.ReturnApproved}, nil).Once()

	_, err := suite.service.CreateSaleReturn(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockReturnRepo.AssertExpectations(suite.T())
}

func (suite *SaleReturnServiceTestSuite) TestCreateSaleReturn_ProductNotOnSale() {
	ctx := context.Background()
	strayProduct := uuid.NewString()
	req := dto.CreateSaleReturnRequest{
		SaleID: suite.sale.SaleID,
		Status: domain.ReturnPending,
		Items: []dto.SaleReturnItemRequest{
			{ProductID: strayProduct, Quantity: 1},
		},
	}
	suite.expectSaleLookup(map[string]int64{})

	_, err := suite.service.CreateSaleReturn(ctx, req, suite.userID)

	suite.Require().Error(err)
	var target *apperrors.LineNotFoundError
	suite.ErrorAs(err, &target)
	suite.Equal(strayProduct, target.ProductID)
	suite.mockReturnRepo.AssertNotCalled(suite.T(), "SaveSaleReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleReturnServiceTestSuite) TestCreateSaleReturn_OverReturnAcrossDocuments() {
	ctx := context.Background()
	req := dto.CreateSaleReturnRequest{
		SaleID: suite.sale.SaleID,
		Status: domain.ReturnPending,
		Items: []dto.SaleReturnItemRequest{
			{ProductID: suite.saleLine.ProductID, Quantity: 4},
		},
	}
	// 2 already returned on a prior document, 2+4 > 5 sold.
	suite.expectSaleLookup(map[string]int64{suite.saleLine.ProductID: 2})

	_, err := suite.service.CreateSaleReturn(ctx, req, suite.userID)

	suite.Require().Error(err)
	var target *apperrors.OverReturnError
	suite.ErrorAs(err, &target)
	suite.Equal(int64(5), target.Sold)
	suite.Equal(int64(2), target.Returned)
	suite.Equal(int64(4), target.Requested)
	suite.mockReturnRepo.AssertNotCalled(suite.T(), "SaveSaleReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleReturnServiceTestSuite) TestCreateSaleReturn_DuplicateLinesShareTheSoldCap() {
	ctx := context.Background()
	req := dto.CreateSaleReturnRequest{
		SaleID: suite.sale.SaleID,
		Status: domain.ReturnPending,
		Items: []dto.SaleReturnItemRequest{
			{ProductID: suite.saleLine.ProductID, Quantity: 3},
			{ProductID: suite.saleLine.ProductID, Quantity: 3},
		},
	}
	// Each line fits on its own, but 3+3 > 5 sold.
	suite.expectSaleLookup(map[string]int64{})

	_, err := suite.service.CreateSaleReturn(ctx, req, suite.userID)

	suite.Require().Error(err)
	var target *apperrors.OverReturnError
	suite.ErrorAs(err, &target)
	suite.Equal(int64(5), target.Sold)
	suite.Equal(int64(3), target.Returned)
	suite.Equal(int64(3), target.Requested)
	suite.mockReturnRepo.AssertNotCalled(suite.T(), "SaveSaleReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleReturnServiceTestSuite) TestUpdateSaleReturn_PendingToApprovedAppliesStockIn() {
	ctx := context.Background()
	returnID := uuid.NewString()
	pending := domain.SaleReturn{ReturnID: returnID, SaleID: suite.sale.SaleID, Status: domain.ReturnPending}
	details := []domain.SaleReturnDetail{
		{DetailID: uuid.NewString(), ReturnID: returnID, ProductID: suite.saleLine.ProductID, Quantity: 2},
	}
	nextStatus := domain.ReturnApproved

	suite.mockReturnRepo.On("FindSaleReturnByID", mock.Anything, returnID).Return(&pending, nil).Once()
	suite.mockReturnRepo.On("FindSaleReturnDetails", mock.Anything, returnID).Return(details, nil).Twice()
	suite.mockReturnRepo.On("UpdateSaleReturnStatus", mock.Anything,
		mock.MatchedBy(func(ret domain.SaleReturn) bool { return ret.Status == domain.ReturnApproved }),
		domain.ReturnPending,
		mock.MatchedBy(func(effects []domain.StockEffect) bool {
			return len(effects) == 1 && effects[0].MovementType == domain.MovementIn && effects[0].Quantity == 2
		}),
		domain.AbortOnShortfall,
	).Return(nil).Once()

	updated, err := suite.service.UpdateSaleReturn(ctx, returnID, dto.UpdateSaleReturnRequest{Status: &nextStatus}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReturnApproved, updated.Status)
	suite.mockReturnRepo.AssertExpectations(suite.T())
}

func (suite *SaleReturnServiceTestSuite) TestUpdateSaleReturn_LostStatusRaceSurfacesConflict() {
	ctx := context.Background()
	returnID := uuid.NewString()
	pending := domain.SaleReturn{ReturnID: returnID, SaleID: suite.sale.SaleID, Status: domain.ReturnPending}
	details := []domain.SaleReturnDetail{
		{DetailID: uuid.NewString(), ReturnID: returnID, ProductID: suite.saleLine.ProductID, Quantity: 2},
	}
	nextStatus := domain.ReturnApproved

	suite.mockReturnRepo.On("FindSaleReturnByID", mock.Anything, returnID).Return(&pending, nil).Once()
	suite.mockReturnRepo.On("FindSaleReturnDetails", mock.Anything, returnID).Return(details, nil).Once()
	// The conditional write found the header no longer pending, so a parallel
	// approval already applied the stock-in.
	suite.mockReturnRepo.On("UpdateSaleReturnStatus", mock.Anything,
		mock.AnythingOfType("domain.SaleReturn"),
		domain.ReturnPending,
		mock.AnythingOfType("[]domain.StockEffect"),
		domain.AbortOnShortfall,
	).Return(fmt.Errorf("%w: sale return %s is no longer %s", apperrors.ErrConflict, returnID, domain.ReturnPending)).Once()

	_, err := suite.service.UpdateSaleReturn(ctx, returnID, dto.UpdateSaleReturnRequest{Status: &nextStatus}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockReturnRepo.AssertExpectations(suite.T())
}

func (suite *SaleReturnServiceTestSuite) TestUpdateSaleReturn_ApprovedToRejectedSkipsShortfalls() {
	ctx := context.Background()
	returnID := uuid.NewString()
	approved := domain.SaleReturn{ReturnID: returnID, SaleID: suite.sale.SaleID, Status: domain.ReturnApproved}
	details := []domain.SaleReturnDetail{
		{DetailID: uuid.NewString(), ReturnID: returnID, ProductID: suite.saleLine.ProductID, Quantity: 2},
	}
	nextStatus := domain.ReturnRejected

	suite.mockReturnRepo.On("FindSaleReturnByID", mock.Anything, returnID).Return(&approved, nil).Once()
	suite.mockReturnRepo.On("FindSaleReturnDetails", mock.Anything, returnID).Return(details, nil).Twice()
	suite.mockReturnRepo.On("UpdateSaleReturnStatus", mock.Anything,
		mock.MatchedBy(func(ret domain.SaleReturn) bool { return ret.Status == domain.ReturnRejected }),
		domain.ReturnApproved,
		mock.MatchedBy(func(effects []domain.StockEffect) bool {
			return len(effects) == 1 && effects[0].MovementType == domain.MovementOut && effects[0].Quantity == 2
		}),
		domain.SkipOnShortfall,
	).Return(nil).Once()

	_, err := suite.service.UpdateSaleReturn(ctx, returnID, dto.UpdateSaleReturnRequest{Status: &nextStatus}, suite.userID)

	suite.Require().NoError(err)
	suite.mockReturnRepo.AssertExpectations(suite.T())
}

func (suite *SaleReturnServiceTestSuite) TestUpdateSaleReturn_RejectedCannotBeApproved() {
	ctx := context.Background()
	returnID := uuid.NewString()
	rejected := domain.SaleReturn{ReturnID: returnID, Status: domain.ReturnRejected}
	nextStatus := domain.ReturnApproved

	suite.mockReturnRepo.On("FindSaleReturnByID", mock.Anything, returnID).Return(&rejected, nil).Once()

	_, err := suite.service.UpdateSaleReturn(ctx, returnID, dto.UpdateSaleReturnRequest{Status: &nextStatus}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockReturnRepo.AssertNotCalled(suite.T(), "UpdateSaleReturnStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleReturnServiceTestSuite) TestDeleteSaleReturn_ApprovedIsRejected() {
	ctx := context.Background()
	returnID := uuid.NewString()
	approved := domain.SaleReturn{ReturnID: returnID, Status: domain.ReturnApproved}

	suite.mockReturnRepo.On("FindSaleReturnByID", mock.Anything, returnID).Return(&approved, nil).Once()

	err := suite.service.DeleteSaleReturn(ctx, returnID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockReturnRepo.AssertNotCalled(suite.T(), "DeleteSaleReturn", mock.Anything, mock.Anything)
}

func TestSaleReturnServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleReturnServiceTestSuite))
}
