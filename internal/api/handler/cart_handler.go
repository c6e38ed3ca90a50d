package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/api/metrics"
	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// CartHandler owns the cart endpoints. Every route sits behind the
// authenticated guard; the cart is scoped to the session's identity.
type CartHandler struct {
	carts    ports.CartService
	activity ActivityDispatcher
}

func NewCartHandler(carts ports.CartService, activity ActivityDispatcher) *CartHandler {
	return &CartHandler{carts: carts, activity: activity}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	ListPrice int64  `json:"listPrice" validate:"required,gt=0"`
	SalePrice int64  `json:"salePrice" validate:"gte=0"`
	Stock     int    `json:"stock" validate:"gte=0"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Notes   string `json:"notes"`
}

type cartResponse struct {
	Lines  []domain.CartLine `json:"lines"`
	Totals domain.CartTotals `json:"totals"`
}

func toCartResponse(v *ports.CartView) cartResponse {
	return cartResponse{Lines: v.Cart.Lines, Totals: v.Totals}
}

// Get handles GET /cart.
//
// @Summary      Get the current cart
// @Tags         cart
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	view, err := h.carts.Get(c.Request().Context(), session.Identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toCartResponse(view))
}

// AddItem handles POST /cart/items.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      addItemRequest  true  "Product and quantity"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.carts.AddItem(c.Request().Context(), session.Identity.ID, ports.AddItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		ListPrice: req.ListPrice,
		SalePrice: req.SalePrice,
		Stock:     req.Stock,
		ImageURL:  req.ImageURL,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return err
	}

	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	h.track(session, domain.ActivityCartUpdated)
	return respond(c, http.StatusOK, toCartResponse(view))
}

// UpdateQuantity handles PATCH /cart/items/:productId. A quantity of zero
// or below removes the line.
//
// @Summary      Set a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        productId  path      string                 true  "Product id"
// @Param        body       body      updateQuantityRequest  true  "New quantity"
// @Success      200        {object}  envelope
// @Failure      404        {object}  envelope
// @Router       /cart/items/{productId} [patch]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.carts.UpdateQuantity(c.Request().Context(), session.Identity.ID, c.Param("productId"), req.Quantity)
	if err != nil {
		return err
	}

	metrics.CartOperationsTotal.WithLabelValues("update").Inc()
	h.track(session, domain.ActivityCartUpdated)
	return respond(c, http.StatusOK, toCartResponse(view))
}

// RemoveItem handles DELETE /cart/items/:productId.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     SessionAuth
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  envelope
// @Router       /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	view, err := h.carts.RemoveItem(c.Request().Context(), session.Identity.ID, c.Param("productId"))
	if err != nil {
		return err
	}

	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	h.track(session, domain.ActivityCartUpdated)
	return respond(c, http.StatusOK, toCartResponse(view))
}

// Clear handles DELETE /cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  envelope
// @Router       /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.carts.Clear(c.Request().Context(), session.Identity.ID); err != nil {
		return err
	}

	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()
	h.track(session, domain.ActivityCartUpdated)
	return respondMessage(c, http.StatusOK, "cart cleared")
}

// Checkout handles POST /cart/checkout: the boundary places the order and
// the cart is cleared on success.
//
// @Summary      Check out the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      checkoutRequest  true  "Delivery details"
// @Success      201   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /cart/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.carts.Checkout(c.Request().Context(), session, ports.CheckoutInput{
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.CartOperationsTotal.WithLabelValues("checkout").Inc()
	h.track(session, domain.ActivityCheckout)
	return respond(c, http.StatusCreated, order)
}

func (h *CartHandler) track(session *domain.Session, kind domain.ActivityKind) {
	if h.activity == nil {
		return
	}
	h.activity.Enqueue(ports.ActivityInput{
		ID:         uuid.NewString(),
		SessionID:  session.ID,
		IdentityID: session.Identity.ID,
		Kind:       string(kind),
		OccurredAt: time.Now().UTC(),
	})
}
