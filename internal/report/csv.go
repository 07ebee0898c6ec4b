package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"emi-schedule/internal/domain/schedule"
)

// CSVHeader keeps the column names of the original spreadsheet export.
var CSVHeader = []string{
	"instal_no",
	"due_date",
	"opening_principal",
	"emi",
	"principal_comp",
	"interest_comp",
	"closing_principal",
}

func WriteCSV(w io.Writer, s schedule.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, in := range s {
		rec := []string{
			strconv.Itoa(in.Number),
			in.DueDate.String(),
			strconv.FormatInt(in.OpeningPrincipal, 10),
			strconv.FormatInt(in.EMI, 10),
			strconv.FormatInt(in.PrincipalComponent, 10),
			strconv.FormatInt(in.InterestComponent, 10),
			strconv.FormatInt(in.ClosingPrincipal, 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
