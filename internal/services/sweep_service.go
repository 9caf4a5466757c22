package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/merchlink/staffing-backend/internal/database"
)

// SweepService manages scheduled background jobs
type SweepService struct {
	cron         *cron.Cron
	proposalRepo *database.ProposalRepository
	offerRepo    *database.JobOfferRepository
	logger       *logrus.Logger
}

// NewSweepService creates a new SweepService
func NewSweepService(proposalRepo *database.ProposalRepository, offerRepo *database.JobOfferRepository, logger *logrus.Logger) *SweepService {
	return &SweepService{
		cron:         cron.New(cron.WithSeconds()),
		proposalRepo: proposalRepo,
		offerRepo:    offerRepo,
		logger:       logger,
	}
}

// Start registers and starts all scheduled jobs
func (s *SweepService) Start() error {
	// Cron format: second minute hour day month weekday
	// "0 0 * * * *" = at the top of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.expireProposalsJob)
	if err != nil {
		return fmt.Errorf("failed to schedule proposal expiry job: %w", err)
	}

	// "0 30 2 * * *" = daily at 2:30 AM
	_, err = s.cron.AddFunc("0 30 2 * * *", s.archiveOffersJob)
	if err != nil {
		return fmt.Errorf("failed to schedule offer archive job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Sweep service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *SweepService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Sweep service stopped")
}

// expireProposalsJob marks pending proposals past their deadline as expired
func (s *SweepService) expireProposalsJob() {
	start := time.Now()

	expired, err := s.proposalRepo.ExpireStale(time.Now().UTC())
	if err != nil {
		s.logger.WithError(err).Error("Proposal expiry sweep failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"expired":  expired,
		"duration": time.Since(start).String(),
	}).Info("Proposal expiry sweep completed")
}

// archiveOffersJob archives offers whose last mission day has passed
func (s *SweepService) archiveOffersJob() {
	start := time.Now()

	archived, err := s.offerRepo.ArchivePastOffers(time.Now().UTC())
	if err != nil {
		s.logger.WithError(err).Error("Offer archive sweep failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"archived": archived,
		"duration": time.Since(start).String(),
	}).Info("Offer archive sweep completed")
}

// RunExpireProposalsNow runs the proposal expiry job immediately
func (s *SweepService) RunExpireProposalsNow() {
	s.expireProposalsJob()
}

// JobStatus reports the scheduler's registered jobs
func (s *SweepService) JobStatus() map[string]interface{} {
	entries := s.cron.Entries()

	jobs := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		jobs = append(jobs, map[string]interface{}{
			"id":       entry.ID,
			"next_run": entry.Next,
			"prev_run": entry.Prev,
		})
	}

	return map[string]interface{}{
		"running":   len(entries) > 0,
		"job_count": len(entries),
		"jobs":      jobs,
	}
}
