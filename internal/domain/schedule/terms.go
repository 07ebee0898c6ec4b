package schedule

import (
	"fmt"
	"math"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

const (
	// MaxAmount bounds principal and EMIs; every integer up to 2^53 survives
	// the float64 interest arithmetic exactly.
	MaxAmount int64 = 1 << 53
	// RatePlaces is the finest rate precision accepted, matching the
	// decimal(9,8) column saved loans are stored in.
	RatePlaces = 8
)

// LoanTerms are the seven inputs of one schedule computation.
type LoanTerms struct {
	DisbursalDate     civil.Date `json:"disbursal_date"`
	EMIStartDate      civil.Date `json:"emi_start_date"`
	MoratoriumEndDate civil.Date `json:"moratorium_end_date"`
	Principal         int64      `json:"principal"`
	MoratoriumEMI     int64      `json:"moratorium_emi"`
	PostMoratoriumEMI int64      `json:"post_moratorium_emi"`
	// AnnualRate is a fraction: 0.11 means 11% a year.
	AnnualRate float64 `json:"annual_interest_rate"`
}

// RawTerms carries dates as ISO strings, as received from JSON or flags.
type RawTerms struct {
	DisbursalDate     string  `json:"disbursal_date"`
	EMIStartDate      string  `json:"emi_start_date"`
	MoratoriumEndDate string  `json:"moratorium_end_date"`
	Principal         int64   `json:"principal"`
	MoratoriumEMI     int64   `json:"moratorium_emi"`
	PostMoratoriumEMI int64   `json:"post_moratorium_emi"`
	AnnualRate        float64 `json:"annual_interest_rate"`
}

// DefaultTerms is the reference loan: 1,00,000 disbursed 2025-05-22 at 11%,
// EMIs from 2025-07-01, 5,000 until 2027-06-01 and 10,000 afterwards.
func DefaultTerms() LoanTerms {
	return LoanTerms{
		DisbursalDate:     civil.Date{Year: 2025, Month: 5, Day: 22},
		EMIStartDate:      civil.Date{Year: 2025, Month: 7, Day: 1},
		MoratoriumEndDate: civil.Date{Year: 2027, Month: 6, Day: 1},
		Principal:         100_000,
		MoratoriumEMI:     5_000,
		PostMoratoriumEMI: 10_000,
		AnnualRate:        0.11,
	}
}

// Parse converts the string dates and validates the result.
func (r RawTerms) Parse() (LoanTerms, error) {
	disbursal, err := ParseDate(r.DisbursalDate)
	if err != nil {
		return LoanTerms{}, fmt.Errorf("disbursal_date: %w", err)
	}
	emiStart, err := ParseDate(r.EMIStartDate)
	if err != nil {
		return LoanTerms{}, fmt.Errorf("emi_start_date: %w", err)
	}
	moratoriumEnd, err := ParseDate(r.MoratoriumEndDate)
	if err != nil {
		return LoanTerms{}, fmt.Errorf("moratorium_end_date: %w", err)
	}
	t := LoanTerms{
		DisbursalDate:     disbursal,
		EMIStartDate:      emiStart,
		MoratoriumEndDate: moratoriumEnd,
		Principal:         r.Principal,
		MoratoriumEMI:     r.MoratoriumEMI,
		PostMoratoriumEMI: r.PostMoratoriumEMI,
		AnnualRate:        r.AnnualRate,
	}
	if err := t.Validate(); err != nil {
		return LoanTerms{}, err
	}
	return t, nil
}

// Raw is the inverse of Parse.
func (t LoanTerms) Raw() RawTerms {
	return RawTerms{
		DisbursalDate:     t.DisbursalDate.String(),
		EMIStartDate:      t.EMIStartDate.String(),
		MoratoriumEndDate: t.MoratoriumEndDate.String(),
		Principal:         t.Principal,
		MoratoriumEMI:     t.MoratoriumEMI,
		PostMoratoriumEMI: t.PostMoratoriumEMI,
		AnnualRate:        t.AnnualRate,
	}
}

func (t LoanTerms) Validate() error {
	switch {
	case !t.DisbursalDate.IsValid():
		return fmt.Errorf("%w: disbursal_date is not a valid date", ErrInvalidInput)
	case !t.EMIStartDate.IsValid():
		return fmt.Errorf("%w: emi_start_date is not a valid date", ErrInvalidInput)
	case !t.MoratoriumEndDate.IsValid():
		return fmt.Errorf("%w: moratorium_end_date is not a valid date", ErrInvalidInput)
	case t.EMIStartDate.Before(t.DisbursalDate):
		return fmt.Errorf("%w: emi_start_date %s is before disbursal_date %s",
			ErrInvalidInput, t.EMIStartDate, t.DisbursalDate)
	case t.Principal < 0:
		return fmt.Errorf("%w: principal must not be negative", ErrInvalidInput)
	case t.MoratoriumEMI < 0:
		return fmt.Errorf("%w: moratorium_emi must not be negative", ErrInvalidInput)
	case t.PostMoratoriumEMI < 0:
		return fmt.Errorf("%w: post_moratorium_emi must not be negative", ErrInvalidInput)
	case t.Principal > MaxAmount:
		return fmt.Errorf("%w: principal must be at most %d", ErrInvalidInput, MaxAmount)
	case t.MoratoriumEMI > MaxAmount:
		return fmt.Errorf("%w: moratorium_emi must be at most %d", ErrInvalidInput, MaxAmount)
	case t.PostMoratoriumEMI > MaxAmount:
		return fmt.Errorf("%w: post_moratorium_emi must be at most %d", ErrInvalidInput, MaxAmount)
	case math.IsNaN(t.AnnualRate) || t.AnnualRate < 0 || t.AnnualRate > 1:
		return fmt.Errorf("%w: annual_interest_rate must be a fraction between 0 and 1", ErrInvalidInput)
	case decimal.NewFromFloat(t.AnnualRate).Exponent() < -RatePlaces:
		return fmt.Errorf("%w: annual_interest_rate must have at most %d decimal places", ErrInvalidInput, RatePlaces)
	}
	if PreEMIInterest(t.Principal, t.DisbursalDate, t.EMIStartDate, t.AnnualRate) > float64(MaxAmount) {
		return fmt.Errorf("%w: pre-EMI interest over %s..%s exceeds %d",
			ErrInvalidInput, t.DisbursalDate, t.EMIStartDate, MaxAmount)
	}
	return nil
}

// Key is a canonical encoding of the terms, stable across runs.
func (t LoanTerms) Key() string {
	return fmt.Sprintf("%s|%s|%s|%d|%d|%d|%s",
		t.DisbursalDate, t.EMIStartDate, t.MoratoriumEndDate,
		t.Principal, t.MoratoriumEMI, t.PostMoratoriumEMI,
		strconv.FormatFloat(t.AnnualRate, 'g', -1, 64))
}
