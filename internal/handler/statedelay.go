package handler

import (
	"net/http"

	"license-store/internal/dto"
	"license-store/internal/model"
	"license-store/internal/service"

	"github.com/labstack/echo/v4"
)

type StateDelayHandler struct {
	stateDelayService service.StateDelayService
}

func NewStateDelayHandler(stateDelayService service.StateDelayService) *StateDelayHandler {
	return &StateDelayHandler{
		stateDelayService: stateDelayService,
	}
}

func delayResponse(delay *model.StateDelay) *dto.StateDelayResponse {
	value, unit := service.ForDisplay(delay.DelayHours)
	return &dto.StateDelayResponse{
		ID:           delay.ID,
		StateName:    delay.StateName,
		DelayHours:   delay.DelayHours,
		DisplayValue: value,
		DisplayUnit:  unit,
	}
}

func (h *StateDelayHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	delays, err := h.stateDelayService.List(ctx)
	if err != nil {
		return httpError(err)
	}

	responses := make([]*dto.StateDelayResponse, 0, len(delays))
	for _, delay := range delays {
		responses = append(responses, delayResponse(delay))
	}

	return c.JSON(http.StatusOK, responses)
}

func (h *StateDelayHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StateDelayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	delay, err := h.stateDelayService.Add(ctx, req.StateName, req.Value, req.Unit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, delayResponse(delay))
}

func (h *StateDelayHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StateDelayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	delay, err := h.stateDelayService.Update(ctx, c.Param("id"), req.StateName, req.Value, req.Unit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, delayResponse(delay))
}

func (h *StateDelayHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.stateDelayService.Delete(ctx, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
