package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/merchlink/staffing-backend/internal/services"
)

// AuditHandler handles audit trail HTTP requests
type AuditHandler struct {
	auditSvc *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditSvc *services.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// Trail handles GET /api/v1/audit/:entity_type/:id (admin only)
func (h *AuditHandler) Trail(c *gin.Context) {
	entityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entityType := c.Param("entity_type")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.auditSvc.Trail(entityType, entityID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}
