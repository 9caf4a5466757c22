package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/merchlink/staffing-backend/pkg/mailer"
	"github.com/sirupsen/logrus"
)

// RecruitmentService builds and executes recruitment plans: it expands an
// offer's schedule into normalized daily sessions and hands the whole batch
// to the transactional repository. Notifications go out after the commit,
// never inside it.
type RecruitmentService struct {
	appRepo     *database.JobApplicationRepository
	offerRepo   *database.JobOfferRepository
	userRepo    *database.UserRepository
	recruitRepo *database.RecruitmentRepository
	mailer      mailer.Gateway
	nightWindow NightWindow
	logger      *logrus.Logger
}

// NewRecruitmentService creates a new RecruitmentService
func NewRecruitmentService(
	appRepo *database.JobApplicationRepository,
	offerRepo *database.JobOfferRepository,
	userRepo *database.UserRepository,
	recruitRepo *database.RecruitmentRepository,
	mailGateway mailer.Gateway,
	nightWindow NightWindow,
	logger *logrus.Logger,
) *RecruitmentService {
	return &RecruitmentService{
		appRepo:     appRepo,
		offerRepo:   offerRepo,
		userRepo:    userRepo,
		recruitRepo: recruitRepo,
		mailer:      mailGateway,
		nightWindow: nightWindow,
		logger:      logger,
	}
}

// RecruitOutcome is the caller-facing result of a recruit or cancel call.
// Business-rule failures land in Message with Success=false; only
// infrastructure errors surface as Go errors.
type RecruitOutcome struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message,omitempty"`
	Result  *models.RecruitmentResult `json:"result,omitempty"`
}

// Recruit hires the applicant of one pending application: resolves/creates
// the contract, expands the offer schedule into sessions and commits
// everything atomically. Any day's conflict aborts the whole hire.
func (s *RecruitmentService) Recruit(applicationID uuid.UUID) (*RecruitOutcome, error) {
	app, err := s.appRepo.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status == models.ApplicationStatusAccepted {
		return &RecruitOutcome{Success: false, Message: "worker already recruited for this offer"}, nil
	}
	if app.Status != models.ApplicationStatusPending {
		return &RecruitOutcome{Success: false, Message: fmt.Sprintf("application is %s, not pending", app.Status)}, nil
	}

	offer, err := s.offerRepo.GetByID(app.JobOfferID)
	if err != nil {
		return nil, err
	}
	worker, err := s.userRepo.GetUserByID(app.WorkerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsWorker() {
		return &RecruitOutcome{Success: false, Message: "applicant is not a field worker"}, nil
	}
	recruiter, err := s.userRepo.GetUserByID(offer.RecruiterID)
	if err != nil {
		return nil, err
	}

	plan, err := s.buildPlan(app, offer, recruiter)
	if err != nil {
		var verr models.ValidationErrors
		if errors.As(err, &verr) {
			return &RecruitOutcome{Success: false, Message: verr.Error()}, nil
		}
		return nil, err
	}

	result, err := s.recruitRepo.ExecuteRecruitment(plan)
	if err != nil {
		var conflict *models.ScheduleConflictError
		var state *models.StateError
		switch {
		case errors.As(err, &conflict):
			s.logger.WithFields(logrus.Fields{
				"application_id": applicationID,
				"offer_id":       offer.ID,
				"conflict_date":  conflict.Date.Format("2006-01-02"),
			}).Info("Recruitment aborted on schedule conflict")
			s.notify(worker.Email, "Recruitment could not be completed", conflict.Error())
			return &RecruitOutcome{Success: false, Message: conflict.Error()}, nil
		case errors.As(err, &state):
			return &RecruitOutcome{Success: false, Message: state.Message}, nil
		default:
			return nil, err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"application_id":   applicationID,
		"offer_id":         offer.ID,
		"worker_id":        worker.ID,
		"contract_id":      result.ContractID,
		"contract_created": result.ContractCreated,
		"sessions":         len(result.SessionIDs),
		"offer_filled":     result.OfferFilled,
	}).Info("Recruitment committed")

	s.notify(worker.Email, "You have been recruited",
		fmt.Sprintf("Mission %q: %d session(s) scheduled", offer.Title, len(result.SessionIDs)))

	return &RecruitOutcome{Success: true, Result: result}, nil
}

// CancelRecruitment reverses an accepted recruitment, keeping the contract.
func (s *RecruitmentService) CancelRecruitment(applicationID uuid.UUID) (*RecruitOutcome, error) {
	app, err := s.appRepo.GetByID(applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.recruitRepo.CancelRecruitment(app); err != nil {
		var state *models.StateError
		if errors.As(err, &state) {
			return &RecruitOutcome{Success: false, Message: state.Message}, nil
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": applicationID,
		"offer_id":       app.JobOfferID,
		"worker_id":      app.WorkerID,
	}).Info("Recruitment cancelled")

	return &RecruitOutcome{Success: true}, nil
}

// buildPlan expands the offer into normalized per-day sessions. Declared
// slots win; otherwise the offer's own times act as a single-day template
// repeated across its date range.
func (s *RecruitmentService) buildPlan(app *models.JobApplication, offer *models.JobOffer, recruiter *models.User) (*models.RecruitmentPlan, error) {
	var sessions []models.PlannedSession

	if len(offer.Slots) > 0 {
		for _, slot := range offer.Slots {
			n, err := NormalizeShift(slot.SlotDate, slot.StartTime, slot.EndTime, slot.BreakMinutes, s.nightWindow)
			if err != nil {
				return nil, err
			}
			sessions = append(sessions, plannedFrom(n, offer.HourlyRate))
		}
	} else {
		for day := offer.StartsOn; !day.After(offer.EndsOn); day = day.AddDate(0, 0, 1) {
			n, err := NormalizeShift(day, offer.StartTime, offer.EndTime, offer.BreakMinutes, s.nightWindow)
			if err != nil {
				return nil, err
			}
			sessions = append(sessions, plannedFrom(n, offer.HourlyRate))
		}
	}

	if len(sessions) == 0 {
		return nil, models.ValidationErrors{"offer": "offer has no schedulable days"}
	}

	agencyLabel := offer.Company
	if recruiter.AgencyName != nil && *recruiter.AgencyName != "" {
		agencyLabel = *recruiter.AgencyName
	}

	return &models.RecruitmentPlan{
		Application: app,
		Offer:       offer,
		WorkerID:    app.WorkerID,
		RecruiterID: offer.RecruiterID,
		AgencyLabel: agencyLabel,
		Sessions:    sessions,
		NewContract: contractTemplate(offer, agencyLabel, app.WorkerID),
	}, nil
}

// contractTemplate derives the auto-created contract's rates from the offer:
// precarious contract types carry the 10% end-of-mission and paid-leave
// rates, everything else carries 0.
func contractTemplate(offer *models.JobOffer, agencyLabel string, workerID uuid.UUID) models.Contract {
	indemnityRate := 0.0
	if models.PrecariousContractTypes[offer.ContractType] {
		indemnityRate = 0.10
	}
	recruiterID := offer.RecruiterID
	return models.Contract{
		WorkerID:    workerID,
		RecruiterID: &recruiterID,
		AgencyLabel: agencyLabel,
		HourlyRate:  offer.HourlyRate,
		NightRate:   offer.NightRate,
		IFMRate:     indemnityRate,
		CPRate:      indemnityRate,
		KmRate:      offer.KmRate,
		KmCap:       offer.KmCap,
		KmUnlimited: offer.KmUnlimited,
	}
}

func plannedFrom(n *NormalizedSession, hourlyRate float64) models.PlannedSession {
	return models.PlannedSession{
		Date:            n.Date,
		StartsAt:        n.StartsAt,
		EndsAt:          n.EndsAt,
		DurationMinutes: n.DurationMinutes,
		NightMinutes:    n.NightMinutes,
		HourlyRate:      hourlyRate,
	}
}

// notify sends a fire-and-forget mail outside the transactional boundary.
func (s *RecruitmentService) notify(to, subject, body string) {
	if s.mailer == nil {
		return
	}
	go func() {
		if err := s.mailer.Send(to, subject, body); err != nil {
			s.logger.WithError(err).Warn("Failed to send notification mail")
		}
	}()
}
