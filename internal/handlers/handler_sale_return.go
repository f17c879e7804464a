package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
	"github.com/pharmindo/pharmacy_inventory_app/internal/middleware"
)

// saleReturnHandler handles HTTP requests related to sale returns.
type saleReturnHandler struct {
	returnService portssvc.SaleReturnSvcFacade
}

func newSaleReturnHandler(returnService portssvc.SaleReturnSvcFacade) *saleReturnHandler {
	return &saleReturnHandler{returnService: returnService}
}

// registerSaleReturnRoutes registers sale return specific routes.
func registerSaleReturnRoutes(group *gin.RouterGroup, returnService portssvc.SaleReturnSvcFacade) {
	h := newSaleReturnHandler(returnService)

	returns := group.Group("/sale-returns")
	{
		returns.POST("/", h.createSaleReturn)
		returns.GET("/", h.listSaleReturns)
		returns.GET("/:returnID", h.getSaleReturn)
		returns.PUT("/:returnID", h.updateSaleReturn)
		returns.DELETE("/:returnID", h.deleteSaleReturn)
	}
}

// createSaleReturn godoc
// @Summary Create a sale return
// @Description Creates a return against a sale. Every line is matched to the
// @Description original sale line and capped by the quantity not yet returned.
// @Description Creating directly as approved applies the stock-in movements
// @Description atomically.
// @Tags sale-returns
// @Accept json
// @Produce json
// @Param return body dto.CreateSaleReturnRequest true "Sale return"
// @Success 201 {object} dto.SaleReturnResponse
// @Failure 400 {object} ErrorResponse "Validation, unknown line or over-return"
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Security BearerAuth
// @Router /sale-returns [post]
func (h *saleReturnHandler) createSaleReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSaleReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ret, err := h.returnService.CreateSaleReturn(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create sale return")
		return
	}
	logger.Info("Sale return created",
		slog.String("return_id", ret.ReturnID),
		slog.String("return_number", ret.ReturnNumber))
	c.JSON(http.StatusCreated, dto.ToSaleReturnResponse(ret))
}

// listSaleReturns godoc
// @Summary List sale returns
// @Tags sale-returns
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Param saleID query string false "Filter by sale"
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Success 200 {object} dto.ListSaleReturnsResponse
// @Security BearerAuth
// @Router /sale-returns [get]
func (h *saleReturnHandler) listSaleReturns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSaleReturnsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	returns, err := h.returnService.ListSaleReturns(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list sale returns")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSaleReturnsResponse(returns))
}

// getSaleReturn godoc
// @Summary Get a sale return by ID
// @Tags sale-returns
// @Produce json
// @Param returnID path string true "Return ID"
// @Success 200 {object} dto.SaleReturnResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sale-returns/{returnID} [get]
func (h *saleReturnHandler) getSaleReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnID := c.Param("returnID")

	ret, err := h.returnService.GetSaleReturnByID(c.Request.Context(), returnID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve sale return")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleReturnResponse(ret))
}

// updateSaleReturn godoc
// @Summary Update a sale return
// @Description Applies a status transition with its stock effects, or a plain
// @Description reason update. Approving applies stock-in per line; rejecting
// @Description an approved return reverses it.
// @Tags sale-returns
// @Accept json
// @Produce json
// @Param returnID path string true "Return ID"
// @Param return body dto.UpdateSaleReturnRequest true "Fields to update"
// @Success 200 {object} dto.SaleReturnResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not allowed"
// @Security BearerAuth
// @Router /sale-returns/{returnID} [put]
func (h *saleReturnHandler) updateSaleReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnID := c.Param("returnID")

	var req dto.UpdateSaleReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ret, err := h.returnService.UpdateSaleReturn(c.Request.Context(), returnID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update sale return")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleReturnResponse(ret))
}

// deleteSaleReturn godoc
// @Summary Delete a sale return
// @Description Only pending returns can be deleted; they never moved stock.
// @Tags sale-returns
// @Param returnID path string true "Return ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sale-returns/{returnID} [delete]
func (h *saleReturnHandler) deleteSaleReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnID := c.Param("returnID")

	if err := h.returnService.DeleteSaleReturn(c.Request.Context(), returnID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete sale return")
		return
	}
	logger.Info("Sale return deleted", slog.String("return_id", returnID))
	c.Status(http.StatusNoContent)
}
