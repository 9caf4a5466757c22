package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/middleware"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/merchlink/staffing-backend/internal/services"
)

// ProposalHandler handles mission proposal HTTP requests
type ProposalHandler struct {
	proposalSvc  *services.ProposalService
	proposalRepo *database.ProposalRepository
	auditSvc     *services.AuditService
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(proposalSvc *services.ProposalService, proposalRepo *database.ProposalRepository, auditSvc *services.AuditService) *ProposalHandler {
	return &ProposalHandler{proposalSvc: proposalSvc, proposalRepo: proposalRepo, auditSvc: auditSvc}
}

// CreateProposalRequest represents the request to propose a mission
type CreateProposalRequest struct {
	WorkerID   uuid.UUID  `json:"worker_id" binding:"required"`
	Company    string     `json:"company" binding:"required"`
	Day        time.Time  `json:"day" binding:"required"`
	StartTime  string     `json:"start_time" binding:"required"`
	EndTime    string     `json:"end_time" binding:"required"`
	HourlyRate float64    `json:"hourly_rate" binding:"required"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// Create handles POST /api/v1/proposals (recruiter only)
func (h *ProposalHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	proposal := &models.MissionProposal{
		RecruiterID: userCtx.UserID,
		WorkerID:    req.WorkerID,
		Company:     req.Company,
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		HourlyRate:  req.HourlyRate,
	}
	if req.ExpiresAt != nil {
		proposal.ExpiresAt = *req.ExpiresAt
	}

	if err := h.proposalSvc.Create(proposal); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"proposal": proposal})
}

// ListMine handles GET /api/v1/proposals (worker only)
func (h *ProposalHandler) ListMine(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	proposals, err := h.proposalRepo.ListByWorker(userCtx.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposals": proposals,
		"total":     len(proposals),
	})
}

// Accept handles POST /api/v1/proposals/:id/accept (worker only)
func (h *ProposalHandler) Accept(c *gin.Context) {
	proposalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.proposalSvc.Accept(proposalID, time.Now().UTC())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.auditSvc.Record(requestContext(c), services.AuditAcceptProposal, "mission_proposal", &proposalID, models.AuditDetails{
		"session_id": session.ID,
	})

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// Decline handles POST /api/v1/proposals/:id/decline (worker only)
func (h *ProposalHandler) Decline(c *gin.Context) {
	proposalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.proposalSvc.Decline(proposalID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.auditSvc.Record(requestContext(c), services.AuditDeclineProposal, "mission_proposal", &proposalID, nil)

	c.JSON(http.StatusOK, gin.H{"declined": true})
}
