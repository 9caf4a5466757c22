package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agencySession(label string, durationMinutes int, rate, ifm, cp, kmRate, distance float64) models.SessionWithContract {
	return models.SessionWithContract{
		WorkSession: models.WorkSession{
			ID:                uuid.New(),
			DurationMinutes:   durationMinutes,
			HourlyRate:        rate,
			EffectiveDistance: distance,
			Status:            models.SessionStatusAccepted,
		},
		AgencyLabel:         label,
		ContractIFMRate:     ifm,
		ContractCPRate:      cp,
		ContractKmRate:      kmRate,
		ContractKmCap:       50,
		ContractKmUnlimited: false,
	}
}

func TestAggregateSessions(t *testing.T) {
	t.Run("Groups By Agency Sorted By Label", func(t *testing.T) {
		sessions := []models.SessionWithContract{
			agencySession("Manpower", 240, 10, 0, 0, 0.30, 20),
			agencySession("Adecco", 480, 10, 0.10, 0.10, 0, 0),
		}

		report := AggregateSessions(&models.MonthlyReport{}, sessions, DefaultNetFactor)

		require.Len(t, report.Agencies, 2)
		assert.Equal(t, "Adecco", report.Agencies[0].AgencyLabel)
		assert.Equal(t, "Manpower", report.Agencies[1].AgencyLabel)

		adecco := report.Agencies[0]
		assert.Equal(t, 8.0, adecco.Hours)
		assert.Equal(t, 80.0, adecco.GrossBase)
		assert.Equal(t, 96.8, adecco.GrossComplete)
		assert.Equal(t, 75.5, adecco.NetSalary)
		assert.Equal(t, 75.5, adecco.TotalToTransfer)
		assert.Equal(t, 1, adecco.SessionCount)

		manpower := report.Agencies[1]
		assert.Equal(t, 4.0, manpower.Hours)
		assert.Equal(t, 40.0, manpower.GrossBase)
		assert.Equal(t, 20.0, manpower.KmDistance)
		assert.Equal(t, 6.0, manpower.KmPayment)
		assert.Equal(t, 31.2, manpower.NetSalary)
		assert.Equal(t, 37.2, manpower.TotalToTransfer)
	})

	t.Run("Agency Lines Sum To Worker Totals", func(t *testing.T) {
		sessions := []models.SessionWithContract{
			agencySession("Adecco", 480, 10, 0.10, 0.10, 0, 0),
			agencySession("Adecco", 480, 10, 0.10, 0.10, 0, 0),
			agencySession("Manpower", 240, 10, 0, 0, 0.30, 20),
		}

		report := AggregateSessions(&models.MonthlyReport{}, sessions, DefaultNetFactor)

		assert.Equal(t, 20.0, report.Hours)
		assert.Equal(t, 200.0, report.GrossBase)
		assert.Equal(t, 233.6, report.GrossComplete)
		assert.Equal(t, 20.0, report.KmDistance)
		assert.Equal(t, 6.0, report.KmPayment)
		assert.Equal(t, 182.2, report.NetSalary)
		assert.Equal(t, 188.2, report.TotalToTransfer)
		assert.Equal(t, 3, report.SessionCount)

		var hours, transfer float64
		var count int
		for _, a := range report.Agencies {
			hours += a.Hours
			transfer += a.TotalToTransfer
			count += a.SessionCount
		}
		assert.Equal(t, report.Hours, hours)
		assert.InDelta(t, report.TotalToTransfer, transfer, 0.001)
		assert.Equal(t, report.SessionCount, count)
	})

	t.Run("Empty Month", func(t *testing.T) {
		report := AggregateSessions(&models.MonthlyReport{}, nil, DefaultNetFactor)

		assert.Equal(t, 0.0, report.Hours)
		assert.Equal(t, 0, report.SessionCount)
		assert.Empty(t, report.Agencies)
	})
}

func TestMonthlyTotalsValidatesMonth(t *testing.T) {
	svc := NewReportService(nil, DefaultNetFactor)

	for _, month := range []int{0, 13, -1} {
		_, err := svc.MonthlyTotals(uuid.New(), 2025, month)
		require.Error(t, err)

		var verr models.ValidationErrors
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr, "month")
	}
}
