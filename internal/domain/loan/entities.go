package loan

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"gorm.io/gorm"

	"emi-schedule/internal/domain/schedule"
)

var ErrNotFound = errors.New("loan not found")

// Loan is a saved set of loan terms. Schedules are never stored; they are
// recomputed from these columns on every request.
type Loan struct {
	ID                uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID            string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID        string         `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	Label             string         `gorm:"size:128" json:"label,omitempty"`
	DisbursalDate     time.Time      `gorm:"type:date;not null" json:"disbursal_date"`
	EMIStartDate      time.Time      `gorm:"column:emi_start_date;type:date;not null" json:"emi_start_date"`
	MoratoriumEndDate time.Time      `gorm:"type:date;not null" json:"moratorium_end_date"`
	Principal         int64          `gorm:"not null" json:"principal"`
	MoratoriumEMI     int64          `gorm:"column:moratorium_emi;not null" json:"moratorium_emi"`
	PostMoratoriumEMI int64          `gorm:"column:post_moratorium_emi;not null" json:"post_moratorium_emi"`
	// holds schedule.RatePlaces decimals exactly; Validate rejects finer rates
	AnnualRate        float64        `gorm:"type:decimal(9,8);not null" json:"annual_interest_rate"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Terms converts the stored columns back into schedule inputs.
func (l *Loan) Terms() schedule.LoanTerms {
	return schedule.LoanTerms{
		DisbursalDate:     civil.DateOf(l.DisbursalDate),
		EMIStartDate:      civil.DateOf(l.EMIStartDate),
		MoratoriumEndDate: civil.DateOf(l.MoratoriumEndDate),
		Principal:         l.Principal,
		MoratoriumEMI:     l.MoratoriumEMI,
		PostMoratoriumEMI: l.PostMoratoriumEMI,
		AnnualRate:        l.AnnualRate,
	}
}

// SetTerms copies t into the row; dates are stored at UTC midnight.
func (l *Loan) SetTerms(t schedule.LoanTerms) {
	l.DisbursalDate = t.DisbursalDate.In(time.UTC)
	l.EMIStartDate = t.EMIStartDate.In(time.UTC)
	l.MoratoriumEndDate = t.MoratoriumEndDate.In(time.UTC)
	l.Principal = t.Principal
	l.MoratoriumEMI = t.MoratoriumEMI
	l.PostMoratoriumEMI = t.PostMoratoriumEMI
	l.AnnualRate = t.AnnualRate
}
