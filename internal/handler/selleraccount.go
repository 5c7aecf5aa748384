package handler

import (
	"net/http"

	"license-store/internal/dto"
	"license-store/internal/service"

	"github.com/labstack/echo/v4"
)

type SellerAccountHandler struct {
	accountService service.SellerAccountService
	syncService    service.SyncService
}

func NewSellerAccountHandler(accountService service.SellerAccountService, syncService service.SyncService) *SellerAccountHandler {
	return &SellerAccountHandler{
		accountService: accountService,
		syncService:    syncService,
	}
}

func (h *SellerAccountHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	accounts, err := h.accountService.ListAll(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"accounts": accounts})
}

func (h *SellerAccountHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := h.accountService.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"account": account})
}

func (h *SellerAccountHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SellerAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	account, err := h.accountService.Create(ctx, service.SellerAccountInput{
		Name:          req.Name,
		ClientID:      req.ClientID,
		ClientSecret:  req.ClientSecret,
		RefreshToken:  req.RefreshToken,
		MerchantToken: req.MerchantToken,
		MarketplaceID: req.MarketplaceID,
		Priority:      req.Priority,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"account": account})
}

func (h *SellerAccountHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SellerAccountUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	account, err := h.accountService.Update(ctx, c.Param("id"), service.SellerAccountUpdate{
		Name:          req.Name,
		ClientID:      req.ClientID,
		ClientSecret:  req.ClientSecret,
		RefreshToken:  req.RefreshToken,
		MerchantToken: req.MerchantToken,
		MarketplaceID: req.MarketplaceID,
		Priority:      req.Priority,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"account": account})
}

func (h *SellerAccountHandler) NudgePriority(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PriorityNudgeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	account, err := h.accountService.NudgePriority(ctx, c.Param("id"), req.Direction)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"account": account})
}

func (h *SellerAccountHandler) TestCredentials(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CredentialTestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.accountService.TestCredentials(ctx, req.ClientID, req.ClientSecret, req.RefreshToken); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Credentials are valid",
	})
}

func (h *SellerAccountHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.accountService.Delete(ctx, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Sync walks every active account in priority order within this request;
// there is no background scheduler.
func (h *SellerAccountHandler) Sync(c echo.Context) error {
	ctx := c.Request().Context()

	results, err := h.syncService.RunAll(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"results": results})
}
