package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"emi-schedule/internal/domain/schedule"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupees = message.NewPrinter(language.MustParse("en-IN"))

// FormatRupees renders n with Indian digit grouping, e.g. ₹1,00,000.
func FormatRupees(n int64) string {
	return rupees.Sprintf("₹%d", n)
}

// WriteTable prints the schedule as aligned columns followed by the totals
// a borrower looks at first.
func WriteTable(w io.Writer, s schedule.Schedule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "No\tDue date\tOpening\tEMI\tPrincipal\tInterest\tClosing\t")
	for _, in := range s {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t\n",
			in.Number, in.DueDate, in.OpeningPrincipal, in.EMI,
			in.PrincipalComponent, in.InterestComponent, in.ClosingPrincipal)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return WriteSummary(w, s.Summary())
}

func WriteSummary(w io.Writer, sum schedule.Summary) error {
	_, err := fmt.Fprintf(w, "\nTotal EMI:       %s\nTotal interest:  %s\nLoan duration:   %d months\n",
		FormatRupees(sum.TotalEMI), FormatRupees(sum.TotalInterest), sum.Installments)
	return err
}
