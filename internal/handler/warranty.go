package handler

import (
	"net/http"
	"strconv"

	"license-store/internal/dto"
	"license-store/internal/service"

	"github.com/labstack/echo/v4"
)

type WarrantyHandler struct {
	warrantyService service.WarrantyService
}

func NewWarrantyHandler(warrantyService service.WarrantyService) *WarrantyHandler {
	return &WarrantyHandler{
		warrantyService: warrantyService,
	}
}

func (h *WarrantyHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.WarrantyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	registration, err := h.warrantyService.Register(ctx, req.OrderID, req.Email)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, registration)
}

func (h *WarrantyHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	registrations, err := h.warrantyService.List(ctx, limit, offset)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, registrations)
}

func (h *WarrantyHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.warrantyService.UpdateStatus(ctx, c.Param("id"), req.Status); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *WarrantyHandler) ResendEmail(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.warrantyService.ResendEmail(ctx, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
