package loan

import (
	"context"
	"fmt"

	"emi-schedule/internal/domain/loan"
	"emi-schedule/internal/domain/schedule"
	ucSchedule "emi-schedule/internal/usecase/schedule"
	"emi-schedule/pkg/id"

	"go.uber.org/zap"
)

type Usecase struct {
	repo      loan.Repository
	schedules *ucSchedule.Usecase
	log       *zap.Logger
}

func NewUsecase(r loan.Repository, s *ucSchedule.Usecase, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, schedules: s, log: log}
}

// Create validates the terms the same way schedule generation does, so a
// saved loan always has a computable schedule shape.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if len(in.BorrowerID) != 32 {
		return nil, fmt.Errorf("%w: borrower_id must be 32 hex characters", schedule.ErrInvalidInput)
	}
	terms, err := in.Terms.Parse()
	if err != nil {
		return nil, err
	}

	l := &loan.Loan{
		LoanID:     id.NewID32(),
		BorrowerID: in.BorrowerID,
		Label:      in.Label,
	}
	l.SetTerms(terms)
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	u.log.Info("loan saved", zap.String("loan_id", l.LoanID), zap.String("borrower_id", l.BorrowerID))
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID string) ([]LoanDTO, error) {
	loans, err := u.repo.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, *toDTO(&loans[i]))
	}
	return out, nil
}

// Schedule recomputes the repayment schedule of a saved loan.
func (u *Usecase) Schedule(ctx context.Context, loanID string) (*ucSchedule.ScheduleDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return u.schedules.Generate(ctx, l.Terms())
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:     l.LoanID,
		BorrowerID: l.BorrowerID,
		Label:      l.Label,
		Terms:      l.Terms().Raw(),
		CreatedAt:  l.CreatedAt,
	}
}
