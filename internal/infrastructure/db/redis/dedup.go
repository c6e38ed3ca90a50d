package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for the activity pipeline.
// Storefronts retry event submission on flaky connections, so the same
// event id can arrive more than once.
// Key format: activity:dedup:<event_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this event id has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, d.key(eventID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(eventID string) string {
	return "activity:dedup:" + eventID
}
