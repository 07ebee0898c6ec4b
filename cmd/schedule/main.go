// Command schedule prints an EMI repayment schedule for one loan.
//
//	schedule -principal 250000 -moratorium-emi 6000 -post-moratorium-emi 12000 -csv out.csv
//
// Flags left out fall back to the reference loan.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"emi-schedule/internal/domain/schedule"
	"emi-schedule/internal/report"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, zap.NewNop()))
}

func run(args []string, stdout, stderr io.Writer, log *zap.Logger) int {
	def := schedule.DefaultTerms().Raw()

	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var raw schedule.RawTerms
	fs.StringVar(&raw.DisbursalDate, "disbursal", def.DisbursalDate, "disbursal date (YYYY-MM-DD)")
	fs.StringVar(&raw.EMIStartDate, "emi-start", def.EMIStartDate, "first EMI due date (YYYY-MM-DD)")
	fs.StringVar(&raw.MoratoriumEndDate, "moratorium-end", def.MoratoriumEndDate, "last due date charged the moratorium EMI (YYYY-MM-DD)")
	fs.Int64Var(&raw.Principal, "principal", def.Principal, "loan amount in rupees")
	fs.Int64Var(&raw.MoratoriumEMI, "moratorium-emi", def.MoratoriumEMI, "EMI up to and including the moratorium end")
	fs.Int64Var(&raw.PostMoratoriumEMI, "post-moratorium-emi", def.PostMoratoriumEMI, "EMI after the moratorium end")
	fs.Float64Var(&raw.AnnualRate, "rate", def.AnnualRate, "annual interest rate as a fraction (0.11 = 11%)")
	csvPath := fs.String("csv", "", "also write the schedule to this CSV file")
	limit := fs.Int("max", schedule.DefaultMaxInstallments, "give up after this many installments")
	verbose := fs.Bool("v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		if l, err := cfg.Build(); err == nil {
			log = l
		}
	}
	defer func() { _ = log.Sync() }()

	terms, err := raw.Parse()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	log.Debug("generating", zap.String("terms", terms.Key()), zap.Int("max", *limit))

	rows, err := schedule.Generate(terms, schedule.WithMaxInstallments(*limit))
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if err := report.WriteTable(stdout, rows); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if *csvPath != "" {
		if err := writeCSVFile(*csvPath, rows); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		log.Info("csv written", zap.String("path", *csvPath), zap.Int("rows", len(rows)))
	}
	return 0
}

func writeCSVFile(path string, rows schedule.Schedule) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
