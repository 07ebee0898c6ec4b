package http

import (
	"net/http"

	idem "emi-schedule/internal/adapter/middleware"
	"emi-schedule/internal/domain/schedule"
	"emi-schedule/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID string   `json:"borrower_id" validate:"required,hex32"`
	Label      string   `json:"label"       validate:"max=128"`
	Terms      termsReq `json:"terms"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	// the idempotency key is scoped by the header; it must name the same borrower
	if hdr := c.Request().Header.Get(idem.HeaderBorrowerID); hdr != "" && hdr != req.BorrowerID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: idem.HeaderBorrowerID + " does not match borrower_id"})
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		BorrowerID: req.BorrowerID,
		Label:      req.Label,
		Terms:      schedule.RawTerms(req.Terms),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GetLoanSchedule recomputes the schedule of a saved loan.
func (h *LoanHandler) GetLoanSchedule(c echo.Context) error {
	loanID := c.Param("loan_id")
	dto, err := h.uc.Schedule(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	if wantsCSV(c) {
		return writeScheduleCSV(c, "schedule-"+loanID+".csv", dto.Installments)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListBorrowerLoans(c echo.Context) error {
	borrowerID := c.Param("borrower_id")
	if !reHex32.MatchString(borrowerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower_id"})
	}
	loans, err := h.uc.ListByBorrower(c.Request().Context(), borrowerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans})
}
