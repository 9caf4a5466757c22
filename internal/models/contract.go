package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract represents a reusable pay-rate agreement between one worker and
// optionally one recruiter (contracts table). Recruiter-originated contracts
// are unique per (worker, recruiter) pair and survive recruitment
// cancellations so later hires with the same agency reuse them.
type Contract struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	WorkerID    uuid.UUID  `db:"worker_id" json:"worker_id"`
	RecruiterID *uuid.UUID `db:"recruiter_id" json:"recruiter_id,omitempty"`
	AgencyLabel string     `db:"agency_label" json:"agency_label"`
	HourlyRate  float64    `db:"hourly_rate" json:"hourly_rate"`
	NightRate   float64    `db:"night_rate" json:"night_rate"`
	IFMRate     float64    `db:"ifm_rate" json:"ifm_rate"`
	CPRate      float64    `db:"cp_rate" json:"cp_rate"`
	KmRate      float64    `db:"km_rate" json:"km_rate"`
	KmCap       float64    `db:"km_cap" json:"km_cap"`
	KmUnlimited bool       `db:"km_unlimited" json:"km_unlimited"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Rates extracts the pay-rate configuration used by the pay calculator.
func (c *Contract) Rates() RateConfig {
	return RateConfig{
		HourlyRate:  c.HourlyRate,
		NightRate:   c.NightRate,
		IFMRate:     c.IFMRate,
		CPRate:      c.CPRate,
		KmRate:      c.KmRate,
		KmCap:       c.KmCap,
		KmUnlimited: c.KmUnlimited,
	}
}

// RateConfig is the pay-rate snapshot handed to the pure pay calculator.
type RateConfig struct {
	HourlyRate  float64 `json:"hourly_rate"`
	NightRate   float64 `json:"night_rate"`
	IFMRate     float64 `json:"ifm_rate"`
	CPRate      float64 `json:"cp_rate"`
	KmRate      float64 `json:"km_rate"`
	KmCap       float64 `json:"km_cap"`
	KmUnlimited bool    `json:"km_unlimited"`
}

// PrecariousContractTypes are the offer contract types that grant the 10%
// end-of-mission and paid-leave rates when a contract is auto-created during
// recruitment.
var PrecariousContractTypes = map[ContractType]bool{
	ContractTypeCDD:     true,
	ContractTypeCIDD:    true,
	ContractTypeInterim: true,
}
