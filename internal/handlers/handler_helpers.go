package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pharmindo/pharmacy_inventory_app/internal/apperrors"
)

// ErrorResponse is the generic error payload for handlers. Fields carries a
// per-field message map for binding failures.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// bindingErrorResponse converts a request binding failure into a response
// with a per-field error map when the failure came from validation tags.
func bindingErrorResponse(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrorResponse{Error: "Invalid request format"}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			fields[name] = "this field is required"
		case "email":
			fields[name] = "must be a valid email address"
		case "min":
			fields[name] = "must be at least " + fe.Param()
		case "max":
			fields[name] = "must be at most " + fe.Param()
		case "oneof":
			fields[name] = "must be one of: " + fe.Param()
		default:
			fields[name] = "failed validation: " + fe.Tag()
		}
	}
	return ErrorResponse{Error: "Invalid request format", Fields: fields}
}

// respondServiceError maps a service error onto an HTTP status. Business rule
// failures render their own message; everything unexpected becomes a logged 500
// with a generic body.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var stockErr *apperrors.InsufficientStockError
	var overErr *apperrors.OverReturnError
	var lineErr *apperrors.LineNotFoundError

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: stockErr.Error()})
	case errors.As(err, &overErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: overErr.Error()})
	case errors.As(err, &lineErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: lineErr.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
