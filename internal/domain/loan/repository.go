package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// Newest first
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]Loan, error)
}
