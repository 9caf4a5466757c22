package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditDetails is a free-form JSONB payload attached to an audit entry
type AuditDetails map[string]interface{}

// Value implements driver.Valuer for JSONB storage
func (d AuditDetails) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB retrieval
func (d *AuditDetails) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into AuditDetails", value)
	}
	return json.Unmarshal(bytes, d)
}

// AuditLog records one security or business event
type AuditLog struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	UserID     *uuid.UUID   `db:"user_id" json:"user_id,omitempty"`
	Action     string       `db:"action" json:"action"`
	EntityType string       `db:"entity_type" json:"entity_type"`
	EntityID   *uuid.UUID   `db:"entity_id" json:"entity_id,omitempty"`
	IP         string       `db:"ip" json:"ip"`
	UserAgent  string       `db:"user_agent" json:"user_agent"`
	Details    AuditDetails `db:"details" json:"details,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}
