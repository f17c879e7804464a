package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
	"github.com/pharmindo/pharmacy_inventory_app/internal/handlers"
	"github.com/pharmindo/pharmacy_inventory_app/internal/platform/config"
)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}
func (m *MockSaleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, requestingUserID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) DeleteSale(ctx context.Context, saleID string, requestingUserID string) error {
	args := m.Called(ctx, saleID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Test Suite ---
type SaleHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockSaleService *MockSaleService
	jwtSecret       string
}

func (suite *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockSaleService = new(MockSaleService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}
	services := &portssvc.ServiceContainer{Sale: suite.mockSaleService}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// generateTestToken creates a dummy JWT for testing.
func (suite *SaleHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pia-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SaleHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SaleHandlerTestSuite) TestCreateSale_Success() {
	userID := uuid.NewString()
	productID := uuid.NewString()
	reqBody := dto.CreateSaleRequest{
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPaid,
		Items: []dto.SaleItemRequest{
			{ProductID: productID, Quantity: 2, UnitPrice: decimal.NewFromInt(5)},
		},
	}
	expected := &domain.Sale{
		SaleID:        uuid.NewString(),
		SaleNumber:    "SL-20250114-0001",
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPaid,
	}

	suite.mockSaleService.On("CreateSale", mock.Anything,
		mock.MatchedBy(func(req dto.CreateSaleRequest) bool {
			return len(req.Items) == 1 && req.Items[0].ProductID == productID
		}),
		userID,
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/sales/", suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.SaleNumber, resp.SaleNumber)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestCreateSale_InsufficientStockReturns400() {
	userID := uuid.NewString()
	productID := uuid.NewString()
	reqBody := dto.CreateSaleRequest{
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPaid,
		Items: []dto.SaleItemRequest{
			{ProductID: productID, Quantity: 10, UnitPrice: decimal.NewFromInt(5)},
		},
	}
	stockErr := &apperrors.InsufficientStockError{
		ProductID:   productID,
		ProductName: "Paracetamol 500mg",
		Available:   3,
		Requested:   10,
	}
	suite.mockSaleService.On("CreateSale", mock.Anything, mock.AnythingOfType("dto.CreateSaleRequest"), userID).
		Return(nil, stockErr).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/sales/", suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Paracetamol 500mg")
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestCreateSale_BindingFailureReturnsFieldMap() {
	userID := uuid.NewString()
	// No items and no payment method.
	w := suite.doJSON(http.MethodPost, "/api/v1/sales/", suite.generateTestToken(userID), map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "fields")
	suite.mockSaleService.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleHandlerTestSuite) TestCreateSale_MissingTokenReturns401() {
	w := suite.doJSON(http.MethodPost, "/api/v1/sales/", "", map[string]any{})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleHandlerTestSuite) TestGetSale_NotFoundReturns404() {
	userID := uuid.NewString()
	saleID := uuid.NewString()
	suite.mockSaleService.On("GetSaleByID", mock.Anything, saleID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/sales/"+saleID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestDeleteSale_ConflictReturns409() {
	userID := uuid.NewString()
	saleID := uuid.NewString()
	suite.mockSaleService.On("DeleteSale", mock.Anything, saleID, userID).
		Return(apperrors.ErrConflict).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/sales/"+saleID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func TestSaleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}
