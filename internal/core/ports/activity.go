package ports

import (
	"context"
	"time"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// ActivityInput is the DTO handed from the transport layer to the activity
// pipeline.
type ActivityInput struct {
	ID         string
	SessionID  string
	IdentityID string
	Kind       string
	Path       string
	OccurredAt time.Time
}

// ActivityService processes one activity event: dedup, then persist.
type ActivityService interface {
	Process(ctx context.Context, in ActivityInput) error
}

// ActivityRepository appends events to the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}
