package schedule

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return d, nil
}

// AddMonths moves d by n calendar months. A day that does not exist in the
// target month is clamped to that month's last day (Jan 31 + 1 = Feb 28/29).
func AddMonths(d civil.Date, n int) civil.Date {
	m := int(d.Month) - 1 + n
	y := d.Year + m/12
	m %= 12
	if m < 0 {
		m += 12
		y--
	}
	month := time.Month(m + 1)
	day := d.Day
	if last := daysIn(y, month); day > last {
		day = last
	}
	return civil.Date{Year: y, Month: month, Day: day}
}

// DueDate is the date of the k-th (1-based) installment. It is always
// derived from the EMI start date so clamped months do not drift.
func DueDate(emiStart civil.Date, k int) civil.Date {
	return AddMonths(emiStart, k-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
