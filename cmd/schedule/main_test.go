package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestRun_DefaultLoan(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(nil, &out, &errOut, zaptest.NewLogger(t)); code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut.String())
	}
	got := out.String()
	for _, want := range []string{"Due date", "2025-07-01", "2027-05-01", "Loan duration:   23 months"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRun_WritesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	var out, errOut bytes.Buffer
	if code := run([]string{"-csv", path}, &out, &errOut, zaptest.NewLogger(t)); code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut.String())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 24 || lines[1] != "1,2025-07-01,100000,5000,3830,1170,96170" {
		t.Fatalf("csv = %q", lines[:2])
	}
}

func TestRun_Errors(t *testing.T) {
	cases := map[string][]string{
		"bad date":        {"-emi-start", "2025-02-30"},
		"emi before loan": {"-emi-start", "2025-01-01"},
		"negative amount": {"-principal", "-1"},
		"never repaid":    {"-moratorium-emi", "100", "-post-moratorium-emi", "100", "-max", "24"},
		"csv dir missing": {"-csv", filepath.Join(t.TempDir(), "nope", "x.csv")},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if code := run(args, &out, &errOut, zaptest.NewLogger(t)); code != 1 {
				t.Fatalf("exit %d, want 1", code)
			}
			if !strings.HasPrefix(errOut.String(), "error:") {
				t.Fatalf("stderr = %q", errOut.String())
			}
		})
	}
}

func TestRun_BadFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-nope"}, &out, &errOut, zaptest.NewLogger(t)); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}
