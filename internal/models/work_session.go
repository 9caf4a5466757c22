package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkSessionStatus represents the status of a work session
// Matches PostgreSQL ENUM: work_session_status
type WorkSessionStatus string

const (
	SessionStatusPending  WorkSessionStatus = "pending"
	SessionStatusAccepted WorkSessionStatus = "accepted"
	SessionStatusDeclined WorkSessionStatus = "declined"
)

// WorkSession represents one concrete shift (work_sessions table).
// StartsAt/EndsAt are anchored to Date; EndsAt lands on the next calendar day
// for shifts crossing midnight. DurationMinutes and NightMinutes are computed
// by the normalizer before every save.
type WorkSession struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	ContractID        uuid.UUID         `db:"contract_id" json:"contract_id"`
	JobOfferID        *uuid.UUID        `db:"job_offer_id" json:"job_offer_id,omitempty"`
	Date              time.Time         `db:"date" json:"date"`
	StartsAt          time.Time         `db:"starts_at" json:"starts_at"`
	EndsAt            time.Time         `db:"ends_at" json:"ends_at"`
	DurationMinutes   int               `db:"duration_minutes" json:"duration_minutes"`
	NightMinutes      int               `db:"night_minutes" json:"night_minutes"`
	DistanceOverride  *float64          `db:"distance_override" json:"distance_override,omitempty"`
	EffectiveDistance float64           `db:"effective_distance" json:"effective_distance"`
	Recommended       bool              `db:"recommended" json:"recommended"`
	HourlyRate        float64           `db:"hourly_rate" json:"hourly_rate"`
	Status            WorkSessionStatus `db:"status" json:"status"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}

// KilometerLog is a single distance-expense line attached to one session
// (kilometer_logs table). Saving or deleting one triggers recomputation of
// the parent session's effective distance.
type KilometerLog struct {
	ID            uuid.UUID `db:"id" json:"id"`
	WorkSessionID uuid.UUID `db:"work_session_id" json:"work_session_id"`
	Label         string    `db:"label" json:"label"`
	DistanceKm    float64   `db:"distance_km" json:"distance_km"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ResolveEffectiveDistance picks a session's distance: an explicit override
// wins, otherwise the sum of its kilometer logs, otherwise zero.
func ResolveEffectiveDistance(override *float64, logs []KilometerLog) float64 {
	if override != nil {
		return *override
	}
	sum := 0.0
	for _, l := range logs {
		sum += l.DistanceKm
	}
	return sum
}

// SessionWithContract joins a session with its contract's agency label and
// rate configuration, as loaded for pay computation and aggregation.
type SessionWithContract struct {
	WorkSession
	AgencyLabel         string  `db:"agency_label"`
	ContractNightRate   float64 `db:"contract_night_rate"`
	ContractIFMRate     float64 `db:"contract_ifm_rate"`
	ContractCPRate      float64 `db:"contract_cp_rate"`
	ContractKmRate      float64 `db:"contract_km_rate"`
	ContractKmCap       float64 `db:"contract_km_cap"`
	ContractKmUnlimited bool    `db:"contract_km_unlimited"`
}

// Rates rebuilds the RateConfig from the joined contract columns. The
// session's own hourly-rate snapshot takes precedence over the contract's.
func (s *SessionWithContract) Rates() RateConfig {
	return RateConfig{
		HourlyRate:  s.HourlyRate,
		NightRate:   s.ContractNightRate,
		IFMRate:     s.ContractIFMRate,
		CPRate:      s.ContractCPRate,
		KmRate:      s.ContractKmRate,
		KmCap:       s.ContractKmCap,
		KmUnlimited: s.ContractKmUnlimited,
	}
}

// SessionInput is the raw user-facing shape of a session before
// normalization. Times are clock times ("15:04") interpreted on Date.
type SessionInput struct {
	ContractID       uuid.UUID  `json:"contract_id"`
	JobOfferID       *uuid.UUID `json:"job_offer_id,omitempty"`
	Date             string     `json:"date" binding:"required"` // "2006-01-02"
	Start            string     `json:"start" binding:"required"`
	End              string     `json:"end" binding:"required"`
	BreakStart       *string    `json:"break_start,omitempty"`
	BreakEnd         *string    `json:"break_end,omitempty"`
	DistanceOverride *float64   `json:"distance_override,omitempty"`
	Recommended      bool       `json:"recommended"`
	HourlyRate       float64    `json:"hourly_rate"`
	Status           string     `json:"status"`
}
