package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ProposalService handles one-off mission proposals. Acceptance reuses the
// session pipeline but, unlike recruitment, requires that a contract already
// exists for the (worker, recruiter) pair; it never creates one.
type ProposalService struct {
	proposalRepo *database.ProposalRepository
	contractRepo *database.ContractRepository
	sessionRepo  *database.WorkSessionRepository
	unavailRepo  *database.UnavailabilityRepository
	nightWindow  NightWindow
	logger       *logrus.Logger
}

// NewProposalService creates a new ProposalService
func NewProposalService(
	proposalRepo *database.ProposalRepository,
	contractRepo *database.ContractRepository,
	sessionRepo *database.WorkSessionRepository,
	unavailRepo *database.UnavailabilityRepository,
	nightWindow NightWindow,
	logger *logrus.Logger,
) *ProposalService {
	return &ProposalService{
		proposalRepo: proposalRepo,
		contractRepo: contractRepo,
		sessionRepo:  sessionRepo,
		unavailRepo:  unavailRepo,
		nightWindow:  nightWindow,
		logger:       logger,
	}
}

// Create registers a proposal addressed to one worker.
func (s *ProposalService) Create(p *models.MissionProposal) error {
	verr := models.ValidationErrors{}
	if p.HourlyRate <= 0 {
		verr["hourly_rate"] = "must be positive"
	}
	if p.Company == "" {
		verr["company"] = "is required"
	}
	if verr.Any() {
		return verr
	}
	p.Status = models.ProposalStatusPending
	if p.ExpiresAt.IsZero() {
		p.ExpiresAt = p.Day.Add(-24 * time.Hour)
	}
	return s.proposalRepo.Create(p)
}

// Accept materializes a pending proposal into exactly one accepted work
// session on the worker's existing contract with the proposing agency.
func (s *ProposalService) Accept(proposalID uuid.UUID, now time.Time) (*models.WorkSession, error) {
	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != models.ProposalStatusPending {
		return nil, &models.StateError{Message: fmt.Sprintf("proposal is %s, not pending", proposal.Status)}
	}
	if proposal.IsExpired(now) {
		return nil, &models.StateError{Message: "proposal invitation has expired"}
	}

	// Contract lookup only: auto-creation is a recruitment-path privilege.
	contract, err := s.contractRepo.GetByWorkerAndRecruiter(proposal.WorkerID, proposal.RecruiterID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, &models.StateError{Message: "no active contract for this agency"}
	}

	n, err := NormalizeShift(proposal.Day, proposal.StartTime, proposal.EndTime, 0, s.nightWindow)
	if err != nil {
		return nil, err
	}

	existing, err := s.sessionRepo.GetCommittedInWindow(proposal.WorkerID, n.Date)
	if err != nil {
		return nil, err
	}
	unavailable, err := s.unavailRepo.GetByWorkerAndDay(proposal.WorkerID, n.Date)
	if err != nil {
		return nil, err
	}
	if conflict := models.FindScheduleConflict(n.Date, n.StartsAt, n.EndsAt, nil, existing, unavailable); conflict != nil {
		return nil, conflict
	}

	session := &models.WorkSession{
		ContractID:      contract.ID,
		Date:            n.Date,
		StartsAt:        n.StartsAt,
		EndsAt:          n.EndsAt,
		DurationMinutes: n.DurationMinutes,
		NightMinutes:    n.NightMinutes,
		HourlyRate:      proposal.HourlyRate,
		Status:          models.SessionStatusAccepted,
	}
	// Session insert and status flip commit atomically; the repository
	// re-checks the status inside the transaction.
	if err := s.proposalRepo.AcceptIntoSession(proposalID, session); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"proposal_id": proposalID,
		"session_id":  session.ID,
		"worker_id":   proposal.WorkerID,
	}).Info("Proposal accepted")

	return session, nil
}

// Decline marks a pending proposal declined.
func (s *ProposalService) Decline(proposalID uuid.UUID) error {
	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != models.ProposalStatusPending {
		return &models.StateError{Message: fmt.Sprintf("proposal is %s, not pending", proposal.Status)}
	}
	return s.proposalRepo.UpdateStatus(proposalID, models.ProposalStatusDeclined)
}

// IsStateError reports whether err is a business precondition failure.
func IsStateError(err error) bool {
	var state *models.StateError
	return errors.As(err, &state)
}
