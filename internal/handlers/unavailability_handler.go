package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/middleware"
	"github.com/merchlink/staffing-backend/internal/models"
)

// UnavailabilityHandler handles worker day-off HTTP requests
type UnavailabilityHandler struct {
	unavailRepo *database.UnavailabilityRepository
}

// NewUnavailabilityHandler creates a new unavailability handler
func NewUnavailabilityHandler(unavailRepo *database.UnavailabilityRepository) *UnavailabilityHandler {
	return &UnavailabilityHandler{unavailRepo: unavailRepo}
}

// CreateUnavailabilityRequest represents the request to declare a day off
type CreateUnavailabilityRequest struct {
	Day  string  `json:"day" binding:"required"` // "2006-01-02"
	Note *string `json:"note,omitempty"`
}

// Create handles POST /api/v1/unavailabilities (worker only)
func (h *UnavailabilityHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req CreateUnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Day is required",
		})
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Day, time.UTC)
	if err != nil {
		respondServiceError(c, models.ValidationErrors{"day": "must be formatted YYYY-MM-DD"})
		return
	}

	unavail := &models.Unavailability{
		WorkerID: userCtx.UserID,
		Day:      day,
		Note:     req.Note,
	}
	if err := h.unavailRepo.Create(unavail); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"unavailability": unavail})
}

// Delete handles DELETE /api/v1/unavailabilities/:id (worker only)
func (h *UnavailabilityHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userCtx := middleware.MustGetUserContext(c)

	if err := h.unavailRepo.Delete(id, userCtx.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListMine handles GET /api/v1/unavailabilities (worker only)
func (h *UnavailabilityHandler) ListMine(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	items, err := h.unavailRepo.ListByWorker(userCtx.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unavailabilities": items,
		"total":            len(items),
	})
}
