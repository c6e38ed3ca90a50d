package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// envelope is the shared response shape for every endpoint, mirroring the
// marketplace boundary's contract so storefront code handles one format
// end to end.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Meta    *meta  `json:"meta,omitempty"`
}

// meta is the pagination block.
type meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func pageMeta(p domain.Page) *meta {
	return &meta{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}

// respond writes a success envelope.
func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

// respondPage writes a success envelope with pagination metadata.
func respondPage(c echo.Context, data any, p domain.Page) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data, Meta: pageMeta(p)})
}

// respondMessage writes a success envelope carrying only a message.
func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: true, Message: message})
}

// listParams extracts the shared page/limit/search query parameters.
type listParams struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}
