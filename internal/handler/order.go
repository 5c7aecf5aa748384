package handler

import (
	"net/http"
	"strconv"

	"license-store/internal/dto"
	"license-store/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) CreateManual(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ManualOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.CreateManual(ctx, service.ManualOrderInput{
		AmazonOrderID: req.AmazonOrderID,
		SecretCode:    req.SecretCode,
		FSN:           req.FSN,
		State:         req.State,
		LicenseKeyID:  req.LicenseKeyID,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) CreateBulk(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BulkOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	codes, err := h.orderService.CreateBulk(ctx, req.Count, req.FSN)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, &dto.BulkOrderResponse{
		Created: len(codes),
		Codes:   codes,
	})
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.orderService.List(ctx, limit, offset)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.orderService.UpdateWarrantyStatus(ctx, c.Param("id"), req.Status); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.orderService.Delete(ctx, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
