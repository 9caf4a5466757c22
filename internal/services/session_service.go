package services

import (
	"github.com/google/uuid"
	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SessionService owns the direct-entry session path: normalize, validate
// against the worker's whole schedule, persist. The same pipeline runs on
// create and update, so stored figures are always recomputed, never stale.
type SessionService struct {
	sessionRepo  *database.WorkSessionRepository
	contractRepo *database.ContractRepository
	unavailRepo  *database.UnavailabilityRepository
	nightWindow  NightWindow
	netFactor    float64
	logger       *logrus.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(
	sessionRepo *database.WorkSessionRepository,
	contractRepo *database.ContractRepository,
	unavailRepo *database.UnavailabilityRepository,
	nightWindow NightWindow,
	netFactor float64,
	logger *logrus.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		contractRepo: contractRepo,
		unavailRepo:  unavailRepo,
		nightWindow:  nightWindow,
		netFactor:    netFactor,
		logger:       logger,
	}
}

// CreateOrUpdate runs the full normalization pipeline on raw input and
// persists the result. sessionID is nil on create. Validation and schedule
// conflicts come back as typed errors; the session is never persisted on
// either.
func (s *SessionService) CreateOrUpdate(input models.SessionInput, sessionID *uuid.UUID) (*models.WorkSession, error) {
	contract, err := s.contractRepo.GetByID(input.ContractID)
	if err != nil {
		return nil, err
	}

	status := models.WorkSessionStatus(input.Status)
	if input.Status == "" {
		status = models.SessionStatusPending
	}
	switch status {
	case models.SessionStatusPending, models.SessionStatusAccepted, models.SessionStatusDeclined:
	default:
		return nil, models.ValidationErrors{"status": "must be pending, accepted or declined"}
	}

	hourlyRate := input.HourlyRate
	if hourlyRate == 0 {
		hourlyRate = contract.HourlyRate
	}
	if hourlyRate <= 0 {
		return nil, models.ValidationErrors{"hourly_rate": "must be positive"}
	}

	n, err := NormalizeSession(input.Date, input.Start, input.End, input.BreakStart, input.BreakEnd, s.nightWindow)
	if err != nil {
		return nil, err
	}

	var logs []models.KilometerLog
	var excludeID *string
	if sessionID != nil {
		idStr := sessionID.String()
		excludeID = &idStr
		if logs, err = s.sessionRepo.GetKilometerLogs(*sessionID); err != nil {
			return nil, err
		}
	}

	if conflict, err := s.findConflict(contract.WorkerID, n, excludeID); err != nil {
		return nil, err
	} else if conflict != nil {
		return nil, conflict
	}

	session := &models.WorkSession{
		ContractID:        contract.ID,
		JobOfferID:        input.JobOfferID,
		Date:              n.Date,
		StartsAt:          n.StartsAt,
		EndsAt:            n.EndsAt,
		DurationMinutes:   n.DurationMinutes,
		NightMinutes:      n.NightMinutes,
		DistanceOverride:  input.DistanceOverride,
		EffectiveDistance: models.ResolveEffectiveDistance(input.DistanceOverride, logs),
		Recommended:       input.Recommended,
		HourlyRate:        hourlyRate,
		Status:            status,
	}

	if sessionID == nil {
		err = s.sessionRepo.Create(session)
	} else {
		session.ID = *sessionID
		err = s.sessionRepo.Update(session)
	}
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id":  session.ID,
		"contract_id": session.ContractID,
		"date":        session.Date.Format("2006-01-02"),
		"duration":    session.DurationMinutes,
		"night":       session.NightMinutes,
	}).Debug("Work session saved")

	return session, nil
}

// Delete removes one session
func (s *SessionService) Delete(sessionID uuid.UUID) error {
	return s.sessionRepo.Delete(sessionID)
}

// AddKilometerLog appends a distance line. The repository recomputes the
// session's effective distance in the same transaction as the insert.
func (s *SessionService) AddKilometerLog(sessionID uuid.UUID, label string, distanceKm float64) (*models.KilometerLog, error) {
	if distanceKm <= 0 {
		return nil, models.ValidationErrors{"distance_km": "must be positive"}
	}
	if _, err := s.sessionRepo.GetByID(sessionID); err != nil {
		return nil, err
	}

	log := &models.KilometerLog{WorkSessionID: sessionID, Label: label, DistanceKm: distanceKm}
	if err := s.sessionRepo.AddKilometerLog(log); err != nil {
		return nil, err
	}
	return log, nil
}

// DeleteKilometerLog removes a distance line. Distance recompute happens in
// the repository transaction alongside the delete.
func (s *SessionService) DeleteKilometerLog(logID uuid.UUID) error {
	_, err := s.sessionRepo.DeleteKilometerLog(logID)
	return err
}

// ComputePay derives the monetary breakdown for one stored session.
func (s *SessionService) ComputePay(sessionID uuid.UUID) (*models.PayBreakdown, error) {
	session, err := s.sessionRepo.GetWithContract(sessionID)
	if err != nil {
		return nil, err
	}
	breakdown := ComputePay(PayInput{
		DurationMinutes:   session.DurationMinutes,
		NightMinutes:      session.NightMinutes,
		HourlyRate:        session.HourlyRate,
		EffectiveDistance: session.EffectiveDistance,
		Recommended:       session.Recommended,
		Rates:             session.Rates(),
		NetFactor:         s.netFactor,
	})
	return &breakdown, nil
}

func (s *SessionService) findConflict(workerID uuid.UUID, n *NormalizedSession, excludeID *string) (*models.ScheduleConflictError, error) {
	existing, err := s.sessionRepo.GetCommittedInWindow(workerID, n.Date)
	if err != nil {
		return nil, err
	}
	unavailable, err := s.unavailRepo.GetByWorkerAndDay(workerID, n.Date)
	if err != nil {
		return nil, err
	}
	return models.FindScheduleConflict(n.Date, n.StartsAt, n.EndsAt, excludeID, existing, unavailable), nil
}
