package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/merchlink/staffing-backend/internal/services"
)

// SessionHandler handles work session HTTP requests
type SessionHandler struct {
	sessionSvc *services.SessionService
	auditSvc   *services.AuditService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *services.SessionService, auditSvc *services.AuditService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, auditSvc: auditSvc}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var input models.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	session, err := h.sessionSvc.CreateOrUpdate(input, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.auditSvc.Record(requestContext(c), services.AuditCreateSession, "work_session", &session.ID, models.AuditDetails{
		"date":     session.Date.Format("2006-01-02"),
		"duration": session.DurationMinutes,
	})

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// Update handles PUT /api/v1/sessions/:id
func (h *SessionHandler) Update(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input models.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	session, err := h.sessionSvc.CreateOrUpdate(input, &sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.auditSvc.Record(requestContext(c), services.AuditUpdateSession, "work_session", &sessionID, models.AuditDetails{
		"date":     session.Date.Format("2006-01-02"),
		"duration": session.DurationMinutes,
	})

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Delete handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.auditSvc.Record(requestContext(c), services.AuditDeleteSession, "work_session", &sessionID, nil)

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetPay handles GET /api/v1/sessions/:id/pay
func (h *SessionHandler) GetPay(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	breakdown, err := h.sessionSvc.ComputePay(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pay": breakdown})
}

// AddKilometerLogRequest represents the request to add a distance line
type AddKilometerLogRequest struct {
	Label      string  `json:"label" binding:"required"`
	DistanceKm float64 `json:"distance_km" binding:"required"`
}

// AddKilometerLog handles POST /api/v1/sessions/:id/kilometer-logs
func (h *SessionHandler) AddKilometerLog(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddKilometerLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Label and distance_km are required",
		})
		return
	}

	log, err := h.sessionSvc.AddKilometerLog(sessionID, req.Label, req.DistanceKm)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"kilometer_log": log})
}

// DeleteKilometerLog handles DELETE /api/v1/kilometer-logs/:id
func (h *SessionHandler) DeleteKilometerLog(c *gin.Context) {
	logID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sessionSvc.DeleteKilometerLog(logID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
