package models

import (
	"time"

	"github.com/google/uuid"
)

// JobOfferStatus represents the lifecycle state of a job offer
// Matches PostgreSQL ENUM: job_offer_status
type JobOfferStatus string

const (
	OfferStatusDraft     JobOfferStatus = "draft"
	OfferStatusPublished JobOfferStatus = "published"
	OfferStatusFilled    JobOfferStatus = "filled"
	OfferStatusSuspended JobOfferStatus = "suspended"
	OfferStatusArchived  JobOfferStatus = "archived"
)

// ContractType represents the commercial contract type of an offer
type ContractType string

const (
	ContractTypeCDD       ContractType = "cdd"
	ContractTypeCIDD      ContractType = "cidd"
	ContractTypeInterim   ContractType = "interim"
	ContractTypeFreelance ContractType = "freelance"
	ContractTypeOther     ContractType = "autre"
)

// JobOffer is a recruiter-authored posting (job_offers table). StartTime,
// EndTime and BreakMinutes act as a single-day template repeated across
// [StartsOn, EndsOn] when the offer declares no slots.
type JobOffer struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	RecruiterID  uuid.UUID      `db:"recruiter_id" json:"recruiter_id"`
	Title        string         `db:"title" json:"title"`
	Company      string         `db:"company" json:"company"`
	MissionType  string         `db:"mission_type" json:"mission_type"`
	ContractType ContractType   `db:"contract_type" json:"contract_type"`
	Location     string         `db:"location" json:"location"`
	StartsOn     time.Time      `db:"starts_on" json:"starts_on"`
	EndsOn       time.Time      `db:"ends_on" json:"ends_on"`
	StartTime    string         `db:"start_time" json:"start_time"` // "15:04"
	EndTime      string         `db:"end_time" json:"end_time"`
	BreakMinutes int            `db:"break_minutes" json:"break_minutes"`
	HourlyRate   float64        `db:"hourly_rate" json:"hourly_rate"`
	NightRate    float64        `db:"night_rate" json:"night_rate"`
	IFMRate      float64        `db:"ifm_rate" json:"ifm_rate"`
	CPRate       float64        `db:"cp_rate" json:"cp_rate"`
	KmRate       float64        `db:"km_rate" json:"km_rate"`
	KmCap        float64        `db:"km_cap" json:"km_cap"`
	KmUnlimited  bool           `db:"km_unlimited" json:"km_unlimited"`
	Headcount    int            `db:"headcount" json:"headcount"`
	Status       JobOfferStatus `db:"status" json:"status"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`

	Slots []JobOfferSlot `db:"-" json:"slots,omitempty"`
}

// JobOfferSlot is a per-day time window of a multi-day offer
// (job_offer_slots table).
type JobOfferSlot struct {
	ID           uuid.UUID `db:"id" json:"id"`
	JobOfferID   uuid.UUID `db:"job_offer_id" json:"job_offer_id"`
	SlotDate     time.Time `db:"slot_date" json:"slot_date"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	BreakMinutes int       `db:"break_minutes" json:"break_minutes"`
}

// IsOpen reports whether the offer still accepts applications.
func (o *JobOffer) IsOpen() bool {
	return o.Status == OfferStatusPublished
}

// CanTransitionTo enumerates the legal offer status transitions.
func (o *JobOffer) CanTransitionTo(next JobOfferStatus) bool {
	switch o.Status {
	case OfferStatusDraft:
		return next == OfferStatusPublished || next == OfferStatusArchived
	case OfferStatusPublished:
		return next == OfferStatusFilled || next == OfferStatusSuspended || next == OfferStatusArchived
	case OfferStatusFilled:
		return next == OfferStatusPublished || next == OfferStatusArchived
	case OfferStatusSuspended:
		return next == OfferStatusPublished || next == OfferStatusArchived
	case OfferStatusArchived:
		return false
	}
	return false
}
