package services

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/models"
)

// ReportService rolls a worker's sessions up into monthly totals. The
// reference period is always explicit; nothing here reads the wall clock.
type ReportService struct {
	sessionRepo *database.WorkSessionRepository
	netFactor   float64
}

// NewReportService creates a new ReportService
func NewReportService(sessionRepo *database.WorkSessionRepository, netFactor float64) *ReportService {
	return &ReportService{sessionRepo: sessionRepo, netFactor: netFactor}
}

// MonthlyTotals aggregates one calendar month. Per-agency lines carry the
// per-session rounding already applied by the pay calculator, so they sum
// exactly to the worker-wide totals.
func (s *ReportService) MonthlyTotals(workerID uuid.UUID, year, month int) (*models.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, models.ValidationErrors{"month": "must be in [1,12]"}
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	sessions, err := s.sessionRepo.ListForWorkerPeriod(workerID, from, to)
	if err != nil {
		return nil, err
	}

	report := &models.MonthlyReport{WorkerID: workerID, Year: year, Month: month}
	return AggregateSessions(report, sessions, s.netFactor), nil
}

// AggregateSessions folds sessions with their contract rates into the
// report. Split out of MonthlyTotals so it stays a pure function of its
// inputs.
func AggregateSessions(report *models.MonthlyReport, sessions []models.SessionWithContract, netFactor float64) *models.MonthlyReport {
	byAgency := map[string]*models.AgencyReport{}

	for i := range sessions {
		sess := &sessions[i]
		pay := ComputePay(PayInput{
			DurationMinutes:   sess.DurationMinutes,
			NightMinutes:      sess.NightMinutes,
			HourlyRate:        sess.HourlyRate,
			EffectiveDistance: sess.EffectiveDistance,
			Recommended:       sess.Recommended,
			Rates:             sess.Rates(),
			NetFactor:         netFactor,
		})

		agency := byAgency[sess.AgencyLabel]
		if agency == nil {
			agency = &models.AgencyReport{AgencyLabel: sess.AgencyLabel}
			byAgency[sess.AgencyLabel] = agency
		}

		hours := float64(sess.DurationMinutes) / 60
		agency.Hours += hours
		agency.GrossBase += pay.GrossBase
		agency.GrossComplete += pay.GrossTotal
		agency.KmDistance += sess.EffectiveDistance
		agency.KmPayment += pay.KmPayment
		agency.NetSalary += pay.NetSalary
		agency.TotalToTransfer += pay.NetTotal
		agency.SessionCount++

		report.Hours += hours
		report.GrossBase += pay.GrossBase
		report.GrossComplete += pay.GrossTotal
		report.KmDistance += sess.EffectiveDistance
		report.KmPayment += pay.KmPayment
		report.NetSalary += pay.NetSalary
		report.TotalToTransfer += pay.NetTotal
		report.SessionCount++
	}

	labels := make([]string, 0, len(byAgency))
	for label := range byAgency {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		a := byAgency[label]
		tidyAgency(a)
		report.Agencies = append(report.Agencies, *a)
	}
	tidyReport(report)
	return report
}

// tidyAgency trims float accumulation noise off the summed cents. The
// per-line amounts are already rounded, so this changes display only.
func tidyAgency(a *models.AgencyReport) {
	a.Hours = round2f(a.Hours)
	a.GrossBase = round2f(a.GrossBase)
	a.GrossComplete = round2f(a.GrossComplete)
	a.KmDistance = round2f(a.KmDistance)
	a.KmPayment = round2f(a.KmPayment)
	a.NetSalary = round2f(a.NetSalary)
	a.TotalToTransfer = round2f(a.TotalToTransfer)
}

func tidyReport(r *models.MonthlyReport) {
	r.Hours = round2f(r.Hours)
	r.GrossBase = round2f(r.GrossBase)
	r.GrossComplete = round2f(r.GrossComplete)
	r.KmDistance = round2f(r.KmDistance)
	r.KmPayment = round2f(r.KmPayment)
	r.NetSalary = round2f(r.NetSalary)
	r.TotalToTransfer = round2f(r.TotalToTransfer)
}

func round2f(v float64) float64 {
	return math.Round(v*100) / 100
}
