package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/merchlink/staffing-backend/internal/models"
)

// AuditRepository handles audit log database operations
type AuditRepository struct {
	db DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts one audit entry
func (r *AuditRepository) Create(entry *models.AuditLog) error {
	err := r.db.QueryRow(`
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip, user_agent, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		entry.UserID, entry.Action, entry.EntityType, entry.EntityID,
		entry.IP, entry.UserAgent, entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// ListByEntity retrieves the audit trail of one entity, newest first
func (r *AuditRepository) ListByEntity(entityType string, entityID uuid.UUID, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Select(&entries, `
		SELECT id, user_id, action, entity_type, entity_id, ip, user_agent, details, created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3`,
		entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
