package handler

import (
	"net/http"
	"time"

	"license-store/internal/dto"
	"license-store/internal/service"

	"github.com/labstack/echo/v4"
)

type ActivationHandler struct {
	activationService service.ActivationService
}

func NewActivationHandler(activationService service.ActivationService) *ActivationHandler {
	return &ActivationHandler{
		activationService: activationService,
	}
}

func (h *ActivationHandler) VerifyOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ActivateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, result, err := h.activationService.VerifyOrder(ctx, req.SecretCode, time.Now())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orderId":      order.OrderID,
		"fsn":          order.FSN,
		"canRedeem":    result.CanRedeem,
		"redeemableAt": result.RedeemableAt,
		"reason":       result.Reason,
	})
}

func (h *ActivationHandler) GenerateKey(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ActivateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.activationService.GenerateKey(ctx, req.SecretCode, time.Now())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":         true,
		"licenseKey":      result.LicenseKey,
		"alreadyRedeemed": result.AlreadyRedeemed,
		"productInfo":     result.Product,
	})
}
