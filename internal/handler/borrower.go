package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bibliotek/library-api/internal/model"
)

func (h *Handler) CreateBorrower(c echo.Context) error {
	var req model.CreateBorrowerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	borrower, err := h.svc.Borrower.CreateBorrower(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, borrower)
}

func (h *Handler) GetBorrower(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	borrower, err := h.svc.Borrower.GetBorrower(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrower)
}

func (h *Handler) ListBorrowers(c echo.Context) error {
	borrowers, err := h.svc.Borrower.ListBorrowers(c.Request().Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrowers)
}

func (h *Handler) UpdateBorrower(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch model.BorrowerPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&patch); err != nil {
		return err
	}
	borrower, err := h.svc.Borrower.UpdateBorrower(c.Request().Context(), id, patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrower)
}

func (h *Handler) DeleteBorrower(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Borrower.DeleteBorrower(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
