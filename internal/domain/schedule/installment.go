package schedule

import "cloud.google.com/go/civil"

// Installment is one row of a repayment schedule.
type Installment struct {
	Number             int        `json:"installment_number"`
	DueDate            civil.Date `json:"due_date"`
	OpeningPrincipal   int64      `json:"opening_principal"`
	EMI                int64      `json:"emi"`
	PrincipalComponent int64      `json:"principal_component"`
	InterestComponent  int64      `json:"interest_component"`
	ClosingPrincipal   int64      `json:"closing_principal"`
}

// Schedule is ordered by installment number, starting at 1.
type Schedule []Installment

type Summary struct {
	TotalEMI       int64      `json:"total_emi"`
	TotalInterest  int64      `json:"total_interest"`
	TotalPrincipal int64      `json:"total_principal"`
	Installments   int        `json:"installments"`
	FirstDueDate   civil.Date `json:"first_due_date"`
	LastDueDate    civil.Date `json:"last_due_date"`
}

// Summary aggregates the schedule the way it is shown to borrowers: total
// paid, total interest and duration in months.
func (s Schedule) Summary() Summary {
	var sum Summary
	for _, in := range s {
		sum.TotalEMI += in.EMI
		sum.TotalInterest += in.InterestComponent
		sum.TotalPrincipal += in.PrincipalComponent
	}
	sum.Installments = len(s)
	if len(s) > 0 {
		sum.FirstDueDate = s[0].DueDate
		sum.LastDueDate = s[len(s)-1].DueDate
	}
	return sum
}
