package http

import (
	"errors"
	"net/http"
	"strings"

	"emi-schedule/internal/domain/loan"
	"emi-schedule/internal/domain/schedule"
	"emi-schedule/internal/report"

	"github.com/labstack/echo/v4"
)

const mimeTextCSV = "text/csv; charset=utf-8"

// errorStatus maps use case errors to HTTP codes.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, schedule.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, schedule.ErrNonTerminating):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, loan.ErrNotFound):
		return http.StatusNotFound, "not found"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(c echo.Context, err error) error {
	code, msg := errorStatus(err)
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

func wantsCSV(c echo.Context) bool {
	return strings.EqualFold(c.QueryParam("format"), "csv")
}

func writeScheduleCSV(c echo.Context, filename string, s schedule.Schedule) error {
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, mimeTextCSV)
	h.Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return report.WriteCSV(c.Response(), s)
}
