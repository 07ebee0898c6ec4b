package schedule

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

const (
	monthsPerYear   = 12
	daysPerYear     = 365
	dailyRatePlaces = 5
)

// MonthlyInterest is one month of interest on the opening balance.
func MonthlyInterest(opening int64, annualRate float64) float64 {
	return float64(opening) * (annualRate / monthsPerYear)
}

// DailyRate is annualRate/365 rounded to 5 decimal places.
func DailyRate(annualRate float64) float64 {
	return decimal.NewFromFloat(annualRate / daysPerYear).
		RoundBank(dailyRatePlaces).
		InexactFloat64()
}

// PreEMIInterest accrues daily interest between disbursal and the first EMI,
// excluding one day of the gap. A same-day start accrues nothing; the
// spreadsheet formula this follows would go negative there (days-1 = -1).
func PreEMIInterest(opening int64, disbursal, emiStart civil.Date, annualRate float64) float64 {
	days := emiStart.DaysSince(disbursal) - 1
	if days < 0 {
		days = 0
	}
	return float64(opening) * DailyRate(annualRate) * float64(days)
}
