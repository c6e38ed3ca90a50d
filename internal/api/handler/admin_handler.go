package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// AdminHandler serves the admin dashboard slice. Routes sit behind the
// ADMIN role guard.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats handles GET /admin/stats.
//
// @Summary      Platform-wide counters for the admin dashboard
// @Tags         admin
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	stats, err := h.admin.Stats(c.Request().Context(), session)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats)
}
