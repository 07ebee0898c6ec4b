package http

import (
	"net/http"

	"emi-schedule/internal/domain/schedule"
	ucSchedule "emi-schedule/internal/usecase/schedule"

	"github.com/labstack/echo/v4"
)

type ScheduleHandler struct{ uc *ucSchedule.Usecase }

func NewScheduleHandler(uc *ucSchedule.Usecase) *ScheduleHandler { return &ScheduleHandler{uc: uc} }

// termsReq mirrors schedule.RawTerms field for field so it converts directly.
// The amount bound is schedule.MaxAmount (2^53).
type termsReq struct {
	DisbursalDate     string  `json:"disbursal_date"      validate:"required,isodate"`
	EMIStartDate      string  `json:"emi_start_date"      validate:"required,isodate"`
	MoratoriumEndDate string  `json:"moratorium_end_date" validate:"required,isodate"`
	Principal         int64   `json:"principal"           validate:"gte=0,lte=9007199254740992"`
	MoratoriumEMI     int64   `json:"moratorium_emi"      validate:"gte=0,lte=9007199254740992"`
	PostMoratoriumEMI int64   `json:"post_moratorium_emi" validate:"gte=0,lte=9007199254740992"`
	AnnualRate        float64 `json:"annual_interest_rate" validate:"gte=0,lte=1"`
}

// GenerateSchedule computes a schedule for ad-hoc terms. ?format=csv
// returns the spreadsheet export instead of JSON.
func (h *ScheduleHandler) GenerateSchedule(c echo.Context) error {
	var req termsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.GenerateRaw(c.Request().Context(), schedule.RawTerms(req))
	if err != nil {
		return writeError(c, err)
	}
	if wantsCSV(c) {
		return writeScheduleCSV(c, "schedule.csv", dto.Installments)
	}
	return c.JSON(http.StatusOK, dto)
}
