package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/merchlink/staffing-backend/internal/middleware"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/merchlink/staffing-backend/internal/services"
)

// ErrorResponse is the uniform error body returned by all handlers
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// parseIDParam parses a UUID path parameter, writing the 400 response itself
// on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid " + name + " format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps the typed business errors onto HTTP statuses.
// Anything untyped is an infrastructure failure and stays opaque.
func respondServiceError(c *gin.Context, err error) {
	var verr models.ValidationErrors
	var conflict *models.ScheduleConflictError
	var state *models.StateError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: verr.Error(),
			Fields:  verr,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "schedule_conflict",
			Message: conflict.Error(),
		})
	case errors.As(err, &state):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "invalid_state",
			Message: state.Message,
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// requestContext extracts the audit-relevant request identity
func requestContext(c *gin.Context) services.RequestContext {
	ctx := services.RequestContext{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if userCtx, ok := middleware.GetUserContext(c); ok {
		userID := userCtx.UserID
		ctx.UserID = &userID
	}
	return ctx
}
