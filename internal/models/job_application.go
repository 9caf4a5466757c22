package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JobApplicationStatus represents the status of a job application
// Matches PostgreSQL ENUM: job_application_status
type JobApplicationStatus string

const (
	ApplicationStatusPending  JobApplicationStatus = "pending"
	ApplicationStatusAccepted JobApplicationStatus = "accepted"
	ApplicationStatusRejected JobApplicationStatus = "rejected"
	ApplicationStatusArchived JobApplicationStatus = "archived"
)

// OfferSnapshot is the point-in-time copy of offer data frozen on the
// application when it is created. It is never re-derived from the live
// offer, so historical proof documents stay stable after offer edits.
type OfferSnapshot struct {
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	AgencyLabel  string       `json:"agency_label"`
	ContractType ContractType `json:"contract_type"`
	StartsOn     time.Time    `json:"starts_on"`
	EndsOn       time.Time    `json:"ends_on"`
	HourlyRate   float64      `json:"hourly_rate"`
	CapturedAt   time.Time    `json:"captured_at"`
}

func (s OfferSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *OfferSnapshot) Scan(value interface{}) error {
	if value == nil {
		*s = OfferSnapshot{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed for OfferSnapshot")
	}
	return json.Unmarshal(bytes, s)
}

// JobApplication is a worker's bid on an offer (job_applications table).
// Unique per (worker, offer) pair.
type JobApplication struct {
	ID         uuid.UUID            `db:"id" json:"id"`
	WorkerID   uuid.UUID            `db:"worker_id" json:"worker_id"`
	JobOfferID uuid.UUID            `db:"job_offer_id" json:"job_offer_id"`
	Status     JobApplicationStatus `db:"status" json:"status"`
	Snapshot   OfferSnapshot        `db:"snapshot" json:"snapshot"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time            `db:"updated_at" json:"updated_at"`
}

// SnapshotFromOffer captures the frozen offer copy at application time.
func SnapshotFromOffer(offer *JobOffer, agencyLabel string, now time.Time) OfferSnapshot {
	return OfferSnapshot{
		Title:        offer.Title,
		Company:      offer.Company,
		AgencyLabel:  agencyLabel,
		ContractType: offer.ContractType,
		StartsOn:     offer.StartsOn,
		EndsOn:       offer.EndsOn,
		HourlyRate:   offer.HourlyRate,
		CapturedAt:   now,
	}
}
