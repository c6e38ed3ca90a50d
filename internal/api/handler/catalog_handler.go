package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// CatalogHandler serves the public browse endpoints.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type productListParams struct {
	listParams
	ShopID     string `query:"shopId"`
	CategoryID string `query:"categoryId"`
}

// ListShops handles GET /shops.
//
// @Summary      List shops
// @Tags         catalog
// @Produce      json
// @Param        page     query     int     false  "Page (1-based)"
// @Param        limit    query     int     false  "Page size"
// @Param        search   query     string  false  "Search term"
// @Success      200      {object}  envelope
// @Router       /shops [get]
func (h *CatalogHandler) ListShops(c echo.Context) error {
	var params listParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	page, err := h.catalog.ListShops(c.Request().Context(), ports.ListInput(params))
	if err != nil {
		return err
	}
	return respondPage(c, page.Items, page.Page)
}

// GetShop handles GET /shops/:id.
//
// @Summary      Get a shop
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Shop id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /shops/{id} [get]
func (h *CatalogHandler) GetShop(c echo.Context) error {
	shop, err := h.catalog.GetShop(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, shop)
}

// ListProducts handles GET /products, optionally narrowed to a shop or
// category.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        page        query     int     false  "Page (1-based)"
// @Param        limit       query     int     false  "Page size"
// @Param        search      query     string  false  "Search term"
// @Param        shopId      query     string  false  "Filter by shop"
// @Param        categoryId  query     string  false  "Filter by category"
// @Success      200         {object}  envelope
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var params productListParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	page, err := h.catalog.ListProducts(c.Request().Context(), ports.ProductListInput{
		ListInput:  ports.ListInput(params.listParams),
		ShopID:     params.ShopID,
		CategoryID: params.CategoryID,
	})
	if err != nil {
		return err
	}
	return respondPage(c, page.Items, page.Page)
}

// GetProduct handles GET /products/:id.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, product)
}

// ListCategories handles GET /categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	var params listParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	page, err := h.catalog.ListCategories(c.Request().Context(), ports.ListInput(params))
	if err != nil {
		return err
	}
	return respondPage(c, page.Items, page.Page)
}

// ListOffers handles GET /offers.
//
// @Summary      List offers
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /offers [get]
func (h *CatalogHandler) ListOffers(c echo.Context) error {
	var params listParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	page, err := h.catalog.ListOffers(c.Request().Context(), ports.ListInput(params))
	if err != nil {
		return err
	}
	return respondPage(c, page.Items, page.Page)
}
