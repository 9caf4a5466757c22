package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/middleware"
	"github.com/merchlink/staffing-backend/internal/models"
)

// ApplicationHandler handles job application HTTP requests
type ApplicationHandler struct {
	appRepo   *database.JobApplicationRepository
	offerRepo *database.JobOfferRepository
	userRepo  *database.UserRepository
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(
	appRepo *database.JobApplicationRepository,
	offerRepo *database.JobOfferRepository,
	userRepo *database.UserRepository,
) *ApplicationHandler {
	return &ApplicationHandler{appRepo: appRepo, offerRepo: offerRepo, userRepo: userRepo}
}

// ApplyRequest represents the request to apply to an offer
type ApplyRequest struct {
	JobOfferID uuid.UUID `json:"job_offer_id" binding:"required"`
}

// Apply handles POST /api/v1/applications (worker only). The offer data is
// snapshotted onto the application at this moment and never re-derived.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "job_offer_id is required",
		})
		return
	}

	offer, err := h.offerRepo.GetByID(req.JobOfferID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !offer.IsOpen() {
		respondServiceError(c, &models.StateError{Message: "offer is not open for applications"})
		return
	}

	recruiter, err := h.userRepo.GetUserByID(offer.RecruiterID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	agencyLabel := offer.Company
	if recruiter.AgencyName != nil && *recruiter.AgencyName != "" {
		agencyLabel = *recruiter.AgencyName
	}

	app := &models.JobApplication{
		WorkerID:   userCtx.UserID,
		JobOfferID: offer.ID,
		Status:     models.ApplicationStatusPending,
		Snapshot:   models.SnapshotFromOffer(offer, agencyLabel, time.Now().UTC()),
	}
	if err := h.appRepo.Create(app); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"application": app})
}

// ListByOffer handles GET /api/v1/offers/:id/applications (recruiter only)
func (h *ApplicationHandler) ListByOffer(c *gin.Context) {
	offerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userCtx := middleware.MustGetUserContext(c)

	offer, err := h.offerRepo.GetByID(offerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if offer.RecruiterID != userCtx.UserID {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Only the offer's recruiter may list its applications",
		})
		return
	}

	apps, err := h.appRepo.ListByOffer(offerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}

// ListMine handles GET /api/v1/applications (worker only)
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	apps, err := h.appRepo.ListByWorker(userCtx.UserID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}
