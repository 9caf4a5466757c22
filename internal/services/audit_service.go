package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/merchlink/staffing-backend/internal/utils"
)

// Audit actions recorded by the mutation paths
const (
	AuditRecruitWorker     = "recruit_worker"
	AuditCancelRecruitment = "cancel_recruitment"
	AuditCreateSession     = "create_session"
	AuditUpdateSession     = "update_session"
	AuditDeleteSession     = "delete_session"
	AuditAcceptProposal    = "accept_proposal"
	AuditDeclineProposal   = "decline_proposal"
)

// AuditService records security and business events. Recording never blocks
// or fails the calling operation; write errors are logged and dropped.
type AuditService struct {
	auditRepo *database.AuditRepository
	logger    *logrus.Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(auditRepo *database.AuditRepository, logger *logrus.Logger) *AuditService {
	return &AuditService{auditRepo: auditRepo, logger: logger}
}

// RequestContext carries the caller identity attached to an audit entry
type RequestContext struct {
	UserID    *uuid.UUID
	IP        string
	UserAgent string
}

// Record writes one audit entry enriched with parsed client info
func (s *AuditService) Record(ctx RequestContext, action, entityType string, entityID *uuid.UUID, details models.AuditDetails) {
	client := utils.ParseUserAgent(ctx.UserAgent)
	if details == nil {
		details = models.AuditDetails{}
	}
	details["device_type"] = client.DeviceType
	details["os"] = client.OS
	details["browser"] = client.Browser
	if client.IsBot {
		details["bot"] = true
	}

	entry := &models.AuditLog{
		UserID:     ctx.UserID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IP:         ctx.IP,
		UserAgent:  ctx.UserAgent,
		Details:    details,
	}

	if err := s.auditRepo.Create(entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"action":      action,
			"entity_type": entityType,
		}).Error("Failed to record audit entry")
	}
}

// Trail returns the recorded history of one entity
func (s *AuditService) Trail(entityType string, entityID uuid.UUID, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.auditRepo.ListByEntity(entityType, entityID, limit)
}
