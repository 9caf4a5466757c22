package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/merchlink/staffing-backend/internal/services"
)

// RecruitmentHandler handles recruitment HTTP requests
type RecruitmentHandler struct {
	recruitmentSvc *services.RecruitmentService
	auditSvc       *services.AuditService
}

// NewRecruitmentHandler creates a new recruitment handler
func NewRecruitmentHandler(recruitmentSvc *services.RecruitmentService, auditSvc *services.AuditService) *RecruitmentHandler {
	return &RecruitmentHandler{recruitmentSvc: recruitmentSvc, auditSvc: auditSvc}
}

// Recruit handles POST /api/v1/recruitments/:application_id
//
// All-or-nothing: either the contract is resolved and every planned session
// is committed, or nothing is persisted and the response names the blocking
// day.
func (h *RecruitmentHandler) Recruit(c *gin.Context) {
	applicationID, ok := parseIDParam(c, "application_id")
	if !ok {
		return
	}

	outcome, err := h.recruitmentSvc.Recruit(applicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !outcome.Success {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": outcome.Message,
		})
		return
	}

	h.auditSvc.Record(requestContext(c), services.AuditRecruitWorker, "job_application", &applicationID, models.AuditDetails{
		"contract_id":      outcome.Result.ContractID,
		"contract_created": outcome.Result.ContractCreated,
		"sessions":         len(outcome.Result.SessionIDs),
		"offer_filled":     outcome.Result.OfferFilled,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"result":  outcome.Result,
	})
}

// Cancel handles POST /api/v1/recruitments/:application_id/cancel
func (h *RecruitmentHandler) Cancel(c *gin.Context) {
	applicationID, ok := parseIDParam(c, "application_id")
	if !ok {
		return
	}

	outcome, err := h.recruitmentSvc.CancelRecruitment(applicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !outcome.Success {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": outcome.Message,
		})
		return
	}

	h.auditSvc.Record(requestContext(c), services.AuditCancelRecruitment, "job_application", &applicationID, nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
