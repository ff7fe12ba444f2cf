package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (h *Handler) OverdueLastMonth(c echo.Context) error {
	report, err := h.svc.Report.OverdueLastMonth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) AllLastMonth(c echo.Context) error {
	report, err := h.svc.Report.AllLastMonth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) ByPeriod(c echo.Context) error {
	start, end, err := periodBounds(c)
	if err != nil {
		return err
	}
	report, err := h.svc.Report.ByPeriod(c.Request().Context(), start, end)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) ExportOverdueLastMonth(c echo.Context) error {
	path, filename, err := h.svc.Report.ExportOverdueLastMonth(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return httpError(err)
	}
	return c.Attachment(path, filename)
}

func (h *Handler) ExportAllLastMonth(c echo.Context) error {
	path, filename, err := h.svc.Report.ExportAllLastMonth(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return httpError(err)
	}
	return c.Attachment(path, filename)
}

func (h *Handler) ExportPeriod(c echo.Context) error {
	start, end, err := periodBounds(c)
	if err != nil {
		return err
	}
	path, filename, err := h.svc.Report.ExportPeriod(c.Request().Context(), start, end, c.QueryParam("format"))
	if err != nil {
		return httpError(err)
	}
	return c.Attachment(path, filename)
}

func periodBounds(c echo.Context) (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, c.QueryParam("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "start_date is required as YYYY-MM-DD")
	}
	end, err := time.Parse(time.DateOnly, c.QueryParam("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "end_date is required as YYYY-MM-DD")
	}
	return start, end, nil
}
