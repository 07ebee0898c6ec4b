package schedule

import "errors"

var (
	// ErrInvalidInput covers unparseable dates, negative amounts, out of range
	// rates and an EMI start date before disbursal.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNonTerminating is returned when the balance is still positive after
	// the installment cap, e.g. an EMI that never covers the monthly interest.
	ErrNonTerminating = errors.New("schedule does not terminate")
)
