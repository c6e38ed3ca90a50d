package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// CustomerHandler serves the authenticated customer screens: favorites and
// order history.
type CustomerHandler struct {
	customers ports.CustomerService
}

func NewCustomerHandler(customers ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// ListFavorites handles GET /favorites.
//
// @Summary      List saved products
// @Tags         customer
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /favorites [get]
func (h *CustomerHandler) ListFavorites(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var params listParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	page, err := h.customers.ListFavorites(c.Request().Context(), session, ports.ListInput(params))
	if err != nil {
		return err
	}
	return respondPage(c, page.Items, page.Page)
}

// RemoveFavorite handles DELETE /favorites/:productId.
//
// @Summary      Remove a saved product
// @Tags         customer
// @Produce      json
// @Security     SessionAuth
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  envelope
// @Failure      404        {object}  envelope
// @Router       /favorites/{productId} [delete]
func (h *CustomerHandler) RemoveFavorite(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.customers.RemoveFavorite(c.Request().Context(), session, c.Param("productId")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "favorite removed")
}

// ListOrders handles GET /orders.
//
// @Summary      List the customer's orders
// @Tags         customer
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /orders [get]
func (h *CustomerHandler) ListOrders(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var params listParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	page, err := h.customers.ListOrders(c.Request().Context(), session, ports.ListInput(params))
	if err != nil {
		return err
	}
	return respondPage(c, page.Items, page.Page)
}

// GetOrder handles GET /orders/:id.
//
// @Summary      Get one order
// @Tags         customer
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /orders/{id} [get]
func (h *CustomerHandler) GetOrder(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	order, err := h.customers.GetOrder(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order)
}
