package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bibliotek/library-api/internal/model"
)

func (h *Handler) Checkout(c echo.Context) error {
	var req model.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	brw, err := h.svc.Borrowing.Checkout(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, brw)
}

func (h *Handler) Return(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	brw, err := h.svc.Borrowing.Return(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, brw)
}

func (h *Handler) GetBorrowerBooks(c echo.Context) error {
	borrowerID, err := pathID(c, "borrowerID")
	if err != nil {
		return err
	}
	items, err := h.svc.Borrowing.GetBorrowerBooks(c.Request().Context(), borrowerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetOverdue(c echo.Context) error {
	items, err := h.svc.Borrowing.GetOverdue(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListBorrowings(c echo.Context) error {
	list, err := h.svc.Borrowing.ListBorrowings(c.Request().Context(),
		c.QueryParam("status"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}
