package upstream

import (
	"context"

	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// AdminGateway implements ports.AdminGateway.
type AdminGateway struct {
	client *Client
}

func NewAdminGateway(client *Client) *AdminGateway {
	return &AdminGateway{client: client}
}

func (g *AdminGateway) Stats(ctx context.Context, accessToken string) (*ports.PlatformStats, error) {
	env, err := g.client.get(ctx, "/admin/stats", nil, accessToken)
	if err != nil {
		return nil, err
	}
	var stats ports.PlatformStats
	if err := decodeData(env, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
