package models

import (
	"time"

	"github.com/google/uuid"
)

// MissionProposalStatus represents the status of a mission proposal
// Matches PostgreSQL ENUM: mission_proposal_status
type MissionProposalStatus string

const (
	ProposalStatusPending  MissionProposalStatus = "pending"
	ProposalStatusAccepted MissionProposalStatus = "accepted"
	ProposalStatusDeclined MissionProposalStatus = "declined"
	ProposalStatusExpired  MissionProposalStatus = "expired"
)

// MissionProposal is a recruiter-to-worker one-off mission invitation
// (mission_proposals table). Acceptance requires an existing contract for
// the (worker, recruiter) pair and materializes exactly one accepted work
// session; it never auto-creates a contract.
type MissionProposal struct {
	ID          uuid.UUID             `db:"id" json:"id"`
	RecruiterID uuid.UUID             `db:"recruiter_id" json:"recruiter_id"`
	WorkerID    uuid.UUID             `db:"worker_id" json:"worker_id"`
	Company     string                `db:"company" json:"company"`
	Day         time.Time             `db:"day" json:"day"`
	StartTime   string                `db:"start_time" json:"start_time"` // "15:04"
	EndTime     string                `db:"end_time" json:"end_time"`
	HourlyRate  float64               `db:"hourly_rate" json:"hourly_rate"`
	Status      MissionProposalStatus `db:"status" json:"status"`
	ExpiresAt   time.Time             `db:"expires_at" json:"expires_at"`
	CreatedAt   time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time             `db:"updated_at" json:"updated_at"`
}

// IsExpired reports whether the proposal invitation has lapsed.
func (p *MissionProposal) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
