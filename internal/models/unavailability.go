package models

import (
	"time"

	"github.com/google/uuid"
)

// Unavailability is a worker-declared day during which no session may be
// scheduled (unavailabilities table). Unique per (worker, day).
type Unavailability struct {
	ID        uuid.UUID `db:"id" json:"id"`
	WorkerID  uuid.UUID `db:"worker_id" json:"worker_id"`
	Day       time.Time `db:"day" json:"day"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
