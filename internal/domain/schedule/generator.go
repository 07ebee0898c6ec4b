package schedule

import "fmt"

// DefaultMaxInstallments caps a schedule at 200 years of monthly EMIs.
const DefaultMaxInstallments = 2400

type Generator struct {
	MaxInstallments int
}

type Option func(*Generator)

// WithMaxInstallments overrides the non-termination cap; n <= 0 keeps the default.
func WithMaxInstallments(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.MaxInstallments = n
		}
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{MaxInstallments: DefaultMaxInstallments}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate builds the schedule for terms with a default Generator.
func Generate(terms LoanTerms, opts ...Option) (Schedule, error) {
	return NewGenerator(opts...).Generate(terms)
}

// Generate validates terms and runs the installment recurrence until the
// closing balance is zero or below. At least one installment is always
// produced. No partial schedule is returned on error.
func (g *Generator) Generate(terms LoanTerms) (Schedule, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	limit := g.MaxInstallments
	if limit <= 0 {
		limit = DefaultMaxInstallments
	}

	out := make(Schedule, 0, estimateRows(terms, limit))
	balance := RoundHalfUp(float64(terms.Principal))
	for k := 1; ; k++ {
		if k > limit {
			return nil, fmt.Errorf("%w: balance %d still outstanding after %d installments",
				ErrNonTerminating, balance, limit)
		}
		row := installment(terms, k, balance)
		out = append(out, row)
		balance = row.ClosingPrincipal
		if balance <= 0 {
			return out, nil
		}
		// negative amortisation must not run past exact float64 integers
		if balance > MaxAmount {
			return nil, fmt.Errorf("%w: balance %d exceeds %d after %d installments",
				ErrNonTerminating, balance, MaxAmount, k)
		}
	}
}

// installment computes row k from the opening balance alone.
func installment(t LoanTerms, k int, opening int64) Installment {
	due := DueDate(t.EMIStartDate, k)

	var interest int64
	if k == 1 {
		interest = RoundHalfUp(PreEMIInterest(opening, t.DisbursalDate, t.EMIStartDate, t.AnnualRate))
	} else {
		interest = RoundHalfUp(MonthlyInterest(opening, t.AnnualRate))
	}

	emi := RoundHalfUp(float64(t.PostMoratoriumEMI))
	if !due.After(t.MoratoriumEndDate) {
		emi = RoundHalfUp(float64(t.MoratoriumEMI))
	}
	// final period: pay off what is left plus this period's interest
	if emi > opening {
		emi = RoundHalfUp(float64(opening + interest))
	}

	principal := RoundHalfUp(float64(emi - interest))
	return Installment{
		Number:             k,
		DueDate:            due,
		OpeningPrincipal:   opening,
		EMI:                emi,
		PrincipalComponent: principal,
		InterestComponent:  interest,
		ClosingPrincipal:   RoundHalfUp(float64(opening - principal)),
	}
}

// estimateRows sizes the result slice from the post-moratorium EMI.
func estimateRows(t LoanTerms, limit int) int {
	n := 1
	if t.PostMoratoriumEMI > 0 {
		n = int(t.Principal/t.PostMoratoriumEMI) + 1
	}
	n += t.MoratoriumEndDate.DaysSince(t.EMIStartDate)/28 + 1
	if n < 1 {
		n = 1
	}
	if n > limit {
		n = limit
	}
	return n
}
