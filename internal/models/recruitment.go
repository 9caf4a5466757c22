package models

import (
	"time"

	"github.com/google/uuid"
)

// PlannedSession is one normalized day of a recruitment expansion, ready to
// be overlap-checked and inserted inside the recruitment transaction.
type PlannedSession struct {
	Date            time.Time
	StartsAt        time.Time
	EndsAt          time.Time
	DurationMinutes int
	NightMinutes    int
	HourlyRate      float64
}

// RecruitmentPlan is the command object for one recruitment: the accepted
// application plus every session the offer expands to. The repository
// executes it as a single all-or-nothing transaction.
type RecruitmentPlan struct {
	Application *JobApplication
	Offer       *JobOffer
	WorkerID    uuid.UUID
	RecruiterID uuid.UUID
	AgencyLabel string
	Sessions    []PlannedSession

	// Contract template used only when no contract exists yet for the
	// (worker, recruiter) pair.
	NewContract Contract
}

// RecruitmentResult reports what one committed recruitment created.
type RecruitmentResult struct {
	ContractID      uuid.UUID   `json:"contract_id"`
	ContractCreated bool        `json:"contract_created"`
	SessionIDs      []uuid.UUID `json:"session_ids"`
	OfferFilled     bool        `json:"offer_filled"`
	RejectedOthers  int         `json:"rejected_others"`
}
