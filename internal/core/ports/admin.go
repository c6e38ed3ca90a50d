package ports

import (
	"context"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// PlatformStats is the admin dashboard summary reported by the boundary.
type PlatformStats struct {
	Shops     int64 `json:"shops"`
	Products  int64 `json:"products"`
	Customers int64 `json:"customers"`
	Orders    int64 `json:"orders"`
	Revenue   int64 `json:"revenue"`
}

// AdminService serves the admin dashboard slice.
type AdminService interface {
	Stats(ctx context.Context, session *domain.Session) (*PlatformStats, error)
}

// AdminGateway is the upstream boundary for admin-scoped resources.
type AdminGateway interface {
	Stats(ctx context.Context, accessToken string) (*PlatformStats, error)
}
