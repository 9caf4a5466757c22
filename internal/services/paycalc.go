package services

import (
	"math"

	"github.com/merchlink/staffing-backend/internal/models"
)

// DefaultNetFactor is the flat simulated-charges multiplier for non-salaried
// contractors: net = gross * 0.78. Kilometric reimbursement is non-taxable
// and never passes through it.
const DefaultNetFactor = 0.78

// PayInput carries everything the pay calculator needs for one session.
type PayInput struct {
	DurationMinutes   int
	NightMinutes      int
	HourlyRate        float64
	EffectiveDistance float64
	Recommended       bool
	Rates             models.RateConfig
	NetFactor         float64
}

// ComputePay derives the full monetary breakdown of one session. Pure: no
// I/O, no clock, output depends only on the input.
//
// CP is computed on gross+IFM, not on gross alone. Each net component is
// rounded to 2 decimals before summing.
func ComputePay(in PayInput) models.PayBreakdown {
	netFactor := in.NetFactor
	if netFactor == 0 {
		netFactor = DefaultNetFactor
	}

	nightHours := float64(in.NightMinutes) / 60
	dayHours := float64(in.DurationMinutes-in.NightMinutes) / 60

	grossBase := dayHours*in.HourlyRate + nightHours*in.HourlyRate*(1+in.Rates.NightRate)
	ifm := round2(grossBase * in.Rates.IFMRate)
	cp := round2((grossBase + ifm) * in.Rates.CPRate)

	netBase := round2(grossBase * netFactor)
	netIFM := round2(ifm * netFactor)
	netCP := round2(cp * netFactor)

	payable := PayableDistance(in.EffectiveDistance, in.Rates.KmCap, in.Rates.KmUnlimited, in.Recommended)
	kmPayment := round2(payable * in.Rates.KmRate)

	grossBase = round2(grossBase)
	netSalary := round2(netBase + netIFM + netCP)

	return models.PayBreakdown{
		DayHours:        dayHours,
		NightHours:      nightHours,
		GrossBase:       grossBase,
		IFMAmount:       ifm,
		CPAmount:        cp,
		GrossTotal:      round2(grossBase + ifm + cp),
		NetBase:         netBase,
		NetIFM:          netIFM,
		NetCP:           netCP,
		NetSalary:       netSalary,
		PayableDistance: payable,
		KmPayment:       kmPayment,
		NetTotal:        round2(netSalary + kmPayment),
	}
}

// PayableDistance applies the contract's kilometric cap. A session flagged
// recommended bypasses the cap (travel pre-approved), as does an unlimited
// contract.
func PayableDistance(distance, cap float64, unlimited, recommended bool) float64 {
	if unlimited || recommended {
		return distance
	}
	return math.Min(distance, cap)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
