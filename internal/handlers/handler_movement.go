package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pharmindo/pharmacy_inventory_app/internal/core/ports/services"
	"github.com/pharmindo/pharmacy_inventory_app/internal/dto"
	"github.com/pharmindo/pharmacy_inventory_app/internal/middleware"
)

// movementHandler handles HTTP requests against the stock ledger.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

func newMovementHandler(movementService portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{movementService: movementService}
}

// registerMovementRoutes registers stock movement specific routes.
func registerMovementRoutes(group *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newMovementHandler(movementService)

	movements := group.Group("/stock-movements")
	{
		movements.POST("/", h.createMovement)
		movements.GET("/", h.listMovements)
		movements.GET("/:movementID", h.getMovement)
		movements.PUT("/:movementID", h.updateMovementNotes)
		movements.DELETE("/:movementID", h.deleteMovement)
	}
}

// createMovement godoc
// @Summary Record a manual stock movement
// @Description Records a manual in/out movement or an absolute adjustment.
// @Description Adjustments require newStockAmount; the signed difference is
// @Description computed against the current stock.
// @Tags stock-movements
// @Accept json
// @Produce json
// @Param movement body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse "Validation or insufficient stock"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /stock-movements [post]
func (h *movementHandler) createMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.CreateMovement(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record stock movement")
		return
	}
	logger.Info("Stock movement recorded",
		slog.String("movement_id", movement.MovementID),
		slog.String("product_id", movement.ProductID))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List stock movements
// @Description Newest first. Filterable by product, movement type and
// @Description reference kind.
// @Tags stock-movements
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Param productID query string false "Filter by product"
// @Param movementType query string false "Filter by type" Enums(in, out)
// @Param referenceKind query string false "Filter by cause" Enums(sale, purchase, return, adjustment)
// @Success 200 {object} dto.ListMovementsResponse
// @Security BearerAuth
// @Router /stock-movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	movements, err := h.movementService.ListMovements(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list stock movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementsResponse(movements))
}

// getMovement godoc
// @Summary Get a stock movement by ID
// @Tags stock-movements
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock-movements/{movementID} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	movement, err := h.movementService.GetMovementByID(c.Request.Context(), movementID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve stock movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// updateMovementNotes godoc
// @Summary Amend the notes of a stock movement
// @Description Only notes are mutable; every other field of a ledger entry is
// @Description immutable.
// @Tags stock-movements
// @Accept json
// @Produce json
// @Param movementID path string true "Movement ID"
// @Param movement body dto.UpdateMovementRequest true "Notes"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock-movements/{movementID} [put]
func (h *movementHandler) updateMovementNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.UpdateMovementNotes(c.Request.Context(), movementID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update stock movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// deleteMovement godoc
// @Summary Delete a stock movement
// @Description Always fails with 403: the ledger is append-only.
// @Tags stock-movements
// @Param movementID path string true "Movement ID"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock-movements/{movementID} [delete]
func (h *movementHandler) deleteMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	if err := h.movementService.DeleteMovement(c.Request.Context(), movementID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete stock movement")
		return
	}
	c.Status(http.StatusNoContent)
}
