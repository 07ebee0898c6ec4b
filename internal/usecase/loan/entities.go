package loan

import (
	"time"

	"emi-schedule/internal/domain/schedule"
)

type CreateLoanInput struct {
	BorrowerID string            `json:"borrower_id"`
	Label      string            `json:"label"`
	Terms      schedule.RawTerms `json:"terms"`
}

type LoanDTO struct {
	LoanID     string            `json:"loan_id"`
	BorrowerID string            `json:"borrower_id"`
	Label      string            `json:"label,omitempty"`
	Terms      schedule.RawTerms `json:"terms"`
	CreatedAt  time.Time         `json:"created_at"`
}
