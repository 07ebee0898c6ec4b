package schedule

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{881.558, 882},
		{1169.9999999, 1170},
		{-0.33, 0},
		{-2.5, -2},
		{-2.51, -3},
		{100000, 100000},
	}
	for _, c := range cases {
		if got := RoundHalfUp(c.in); got != c.want {
			t.Fatalf("RoundHalfUp(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRoundHalfUp_Idempotent(t *testing.T) {
	for _, x := range []float64{-7.5, -1.2, 0, 0.5, 3.49, 3.5, 1e6 + 0.5, 123456.789} {
		once := RoundHalfUp(x)
		if twice := RoundHalfUp(float64(once)); twice != once {
			t.Fatalf("RoundHalfUp not idempotent for %v: %d then %d", x, once, twice)
		}
	}
}

func TestMonthlyInterest(t *testing.T) {
	got := MonthlyInterest(96170, 0.11)
	if math.Abs(got-881.5583333) > 1e-6 {
		t.Fatalf("MonthlyInterest = %v", got)
	}
	if MonthlyInterest(1000, 0) != 0 {
		t.Fatal("zero rate must yield zero interest")
	}
}

func TestDailyRate(t *testing.T) {
	cases := map[float64]float64{
		0.11:   0.0003,
		0.12:   0.00033,
		0.1175: 0.00032,
		0:      0,
		1:      0.00274,
	}
	for in, want := range cases {
		if got := DailyRate(in); got != want {
			t.Fatalf("DailyRate(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestPreEMIInterest(t *testing.T) {
	// 40 days between disbursal and EMI start, 39 of them accrue
	got := PreEMIInterest(100000, date(2025, 5, 22), date(2025, 7, 1), 0.11)
	if RoundHalfUp(got) != 1170 {
		t.Fatalf("PreEMIInterest = %v, want ~1170", got)
	}
	if got := PreEMIInterest(100000, date(2025, 7, 1), date(2025, 7, 1), 0.11); got != 0 {
		t.Fatalf("same-day PreEMIInterest = %v, want 0", got)
	}
	if got := PreEMIInterest(100000, date(2025, 6, 30), date(2025, 7, 1), 0.11); got != 0 {
		t.Fatalf("one-day PreEMIInterest = %v, want 0", got)
	}
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		from string
		n    int
		want string
	}{
		{"2025-07-01", 1, "2025-08-01"},
		{"2025-07-01", 6, "2026-01-01"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-01-31", 2, "2024-03-31"},
		{"2024-08-31", 1, "2024-09-30"},
		{"2024-12-15", 13, "2026-01-15"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-01-15", -1, "2023-12-15"},
		{"2024-05-10", 0, "2024-05-10"},
	}
	for _, c := range cases {
		from, err := ParseDate(c.from)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", c.from, err)
		}
		if got := AddMonths(from, c.n).String(); got != c.want {
			t.Fatalf("AddMonths(%s, %d) = %s, want %s", c.from, c.n, got, c.want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2025/07/01", "01-07-2025", "2025-02-30", "tomorrow"} {
		_, err := ParseDate(s)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseDate(%q) err = %v, want ErrInvalidInput", s, err)
		}
	}
}

func TestRawTerms_Parse(t *testing.T) {
	raw := DefaultTerms().Raw()
	if raw.DisbursalDate != "2025-05-22" || raw.EMIStartDate != "2025-07-01" || raw.MoratoriumEndDate != "2027-06-01" {
		t.Fatalf("raw dates = %+v", raw)
	}
	got, err := raw.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != DefaultTerms() {
		t.Fatalf("round trip = %+v", got)
	}

	raw.EMIStartDate = "2025-13-01"
	_, err = raw.Parse()
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if !strings.Contains(err.Error(), "emi_start_date") {
		t.Fatalf("error %q does not name the field", err)
	}
}

func TestLoanTerms_Key(t *testing.T) {
	a := DefaultTerms()
	b := DefaultTerms()
	if a.Key() != b.Key() {
		t.Fatal("equal terms produced different keys")
	}
	b.AnnualRate = 0.1175
	if a.Key() == b.Key() {
		t.Fatal("different rates produced the same key")
	}
	if want := "2025-05-22|2025-07-01|2027-06-01|100000|5000|10000|0.11"; a.Key() != want {
		t.Fatalf("Key = %q, want %q", a.Key(), want)
	}
}
