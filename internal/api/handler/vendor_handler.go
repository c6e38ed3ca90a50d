package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// VendorHandler serves the vendor dashboard product CRUD. All routes sit
// behind the VENDOR role guard.
type VendorHandler struct {
	vendors ports.VendorService
}

func NewVendorHandler(vendors ports.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

type createProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	ListPrice   int64  `json:"listPrice" validate:"required,gt=0"`
	SalePrice   int64  `json:"salePrice" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	ImageURL    string `json:"imageUrl"`
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CategoryID  *string `json:"categoryId"`
	ListPrice   *int64  `json:"listPrice"`
	SalePrice   *int64  `json:"salePrice"`
	Stock       *int    `json:"stock"`
	ImageURL    *string `json:"imageUrl"`
}

// ListProducts handles GET /vendor/products.
//
// @Summary      List the vendor's products
// @Tags         vendor
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /vendor/products [get]
func (h *VendorHandler) ListProducts(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var params listParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	page, err := h.vendors.ListProducts(c.Request().Context(), session, ports.ListInput(params))
	if err != nil {
		return err
	}
	return respondPage(c, page.Items, page.Page)
}

// CreateProduct handles POST /vendor/products.
//
// @Summary      Create a product
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /vendor/products [post]
func (h *VendorHandler) CreateProduct(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.vendors.CreateProduct(c.Request().Context(), session, ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ListPrice:   req.ListPrice,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, product)
}

// UpdateProduct handles PATCH /vendor/products/:id. Absent fields are left
// untouched.
//
// @Summary      Update a product
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /vendor/products/{id} [patch]
func (h *VendorHandler) UpdateProduct(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.vendors.UpdateProduct(c.Request().Context(), session, c.Param("id"), ports.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ListPrice:   req.ListPrice,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /vendor/products/:id.
//
// @Summary      Delete a product
// @Tags         vendor
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /vendor/products/{id} [delete]
func (h *VendorHandler) DeleteProduct(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.vendors.DeleteProduct(c.Request().Context(), session, c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "product deleted")
}
