package handler

import (
	"net/http"
	"strings"

	"license-store/internal/dto"
	"license-store/internal/service"

	"github.com/labstack/echo/v4"
)

type LicenseKeyHandler struct {
	licenseKeyService service.LicenseKeyService
}

func NewLicenseKeyHandler(licenseKeyService service.LicenseKeyService) *LicenseKeyHandler {
	return &LicenseKeyHandler{
		licenseKeyService: licenseKeyService,
	}
}

func (h *LicenseKeyHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddLicenseKeysRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	added, err := h.licenseKeyService.AddKeys(ctx, req.FSN, req.Keys)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"added":   added,
	})
}

func (h *LicenseKeyHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	keys, summary, err := h.licenseKeyService.ListByFSN(ctx, c.QueryParam("fsn"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"keys":    keys,
		"summary": summary,
	})
}

func (h *LicenseKeyHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	// single id in the path or comma-separated ids in the query
	ids := []string{}
	if id := c.Param("id"); id != "" {
		ids = append(ids, id)
	} else if raw := c.QueryParam("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}

	deleted, err := h.licenseKeyService.Delete(ctx, ids)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	})
}
