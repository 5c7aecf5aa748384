package handler

import (
	"net/http"

	"license-store/internal/dto"
	"license-store/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.List(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.productService.Get(ctx, c.Param("fsn"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.productService.Create(ctx, service.ProductInput{
		FSN:             req.FSN,
		Title:           req.Title,
		PricePaise:      req.PricePaise,
		Currency:        req.Currency,
		DownloadLink:    req.DownloadLink,
		InstallationDoc: req.InstallationDoc,
		ProductImage:    req.ProductImage,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.PricePaise > 0 {
		updates["price_paise"] = req.PricePaise
	}
	if req.Currency != "" {
		updates["currency"] = req.Currency
	}
	if req.DownloadLink != "" {
		updates["download_link"] = req.DownloadLink
	}
	if req.InstallationDoc != "" {
		updates["installation_doc"] = req.InstallationDoc
	}
	if req.ProductImage != "" {
		updates["product_image"] = req.ProductImage
	}

	product, err := h.productService.Update(ctx, c.Param("fsn"), updates)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.productService.Delete(ctx, c.Param("fsn")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
