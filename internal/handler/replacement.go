package handler

import (
	"net/http"
	"strconv"

	"license-store/internal/dto"
	"license-store/internal/service"

	"github.com/labstack/echo/v4"
)

type ReplacementHandler struct {
	replacementService service.ReplacementService
}

func NewReplacementHandler(replacementService service.ReplacementService) *ReplacementHandler {
	return &ReplacementHandler{
		replacementService: replacementService,
	}
}

func (h *ReplacementHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ReplacementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	request, err := h.replacementService.Submit(ctx, req.OrderID, req.Reason)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, request)
}

func (h *ReplacementHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	requests, err := h.replacementService.List(ctx, limit, offset)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, requests)
}

func (h *ReplacementHandler) Approve(c echo.Context) error {
	ctx := c.Request().Context()

	request, err := h.replacementService.Approve(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, request)
}

func (h *ReplacementHandler) Reject(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ReplacementDecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	request, err := h.replacementService.Reject(ctx, c.Param("id"), req.Reason)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, request)
}

func (h *ReplacementHandler) RequestResubmission(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ReplacementDecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	request, err := h.replacementService.RequestResubmission(ctx, c.Param("id"), req.Reason)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, request)
}
