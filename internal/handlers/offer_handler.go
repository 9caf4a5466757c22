package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/middleware"
	"github.com/merchlink/staffing-backend/internal/models"
)

// OfferHandler handles job offer HTTP requests
type OfferHandler struct {
	offerRepo *database.JobOfferRepository
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerRepo *database.JobOfferRepository) *OfferHandler {
	return &OfferHandler{offerRepo: offerRepo}
}

// List handles GET /api/v1/offers
func (h *OfferHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	offers, err := h.offerRepo.ListPublished(limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"offers": offers,
		"total":  len(offers),
	})
}

// Get handles GET /api/v1/offers/:id
func (h *OfferHandler) Get(c *gin.Context) {
	offerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offer, err := h.offerRepo.GetByID(offerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

// Create handles POST /api/v1/offers (recruiter only)
func (h *OfferHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var offer models.JobOffer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if verr := validateOffer(&offer); verr.Any() {
		respondServiceError(c, verr)
		return
	}

	offer.RecruiterID = userCtx.UserID
	if offer.Status == "" {
		offer.Status = models.OfferStatusDraft
	}

	if err := h.offerRepo.Create(&offer); err != nil {
		respondServiceError(c, err)
		return
	}
	if len(offer.Slots) > 0 {
		if err := h.offerRepo.ReplaceSlots(offer.ID, offer.Slots); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"offer": offer})
}

// Update handles PUT /api/v1/offers/:id (recruiter only)
func (h *OfferHandler) Update(c *gin.Context) {
	offerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userCtx := middleware.MustGetUserContext(c)

	existing, err := h.offerRepo.GetByID(offerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if existing.RecruiterID != userCtx.UserID {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Only the offer's recruiter may edit it",
		})
		return
	}

	var offer models.JobOffer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if verr := validateOffer(&offer); verr.Any() {
		respondServiceError(c, verr)
		return
	}

	offer.ID = offerID
	offer.RecruiterID = existing.RecruiterID
	offer.Status = existing.Status

	if err := h.offerRepo.Update(&offer); err != nil {
		respondServiceError(c, err)
		return
	}
	if offer.Slots != nil {
		if err := h.offerRepo.ReplaceSlots(offerID, offer.Slots); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

// UpdateStatusRequest represents an offer status transition request
type UpdateStatusRequest struct {
	Status models.JobOfferStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/v1/offers/:id/status (recruiter only)
func (h *OfferHandler) UpdateStatus(c *gin.Context) {
	offerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userCtx := middleware.MustGetUserContext(c)

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Status is required",
		})
		return
	}

	offer, err := h.offerRepo.GetByID(offerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if offer.RecruiterID != userCtx.UserID {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Only the offer's recruiter may change its status",
		})
		return
	}

	if !offer.CanTransitionTo(req.Status) {
		respondServiceError(c, &models.StateError{
			Message: "offer cannot move from " + string(offer.Status) + " to " + string(req.Status),
		})
		return
	}

	if err := h.offerRepo.UpdateStatus(offerID, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// validateOffer checks the offer's schedule template and rates
func validateOffer(o *models.JobOffer) models.ValidationErrors {
	verr := models.ValidationErrors{}
	if o.Title == "" {
		verr["title"] = "is required"
	}
	if o.HourlyRate <= 0 {
		verr["hourly_rate"] = "must be positive"
	}
	if o.Headcount <= 0 {
		verr["headcount"] = "must be at least 1"
	}
	if o.EndsOn.Before(o.StartsOn) {
		verr["ends_on"] = "must not precede starts_on"
	}
	if len(o.Slots) == 0 && (o.StartTime == "" || o.EndTime == "") {
		verr["start_time"] = "offer needs either slots or a daily time template"
	}
	return verr
}
