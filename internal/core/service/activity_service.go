package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/api/metrics"
	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type activityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, dedup: dedup, log: log}
}

// Process validates, deduplicates, and persists a single activity event.
func (s *activityService) Process(ctx context.Context, in ports.ActivityInput) error {
	start := time.Now()

	kind, err := parseActivityKind(in.Kind)
	if err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("unknown_kind").Inc()
		return err
	}

	// 1. Idempotency check. Storefronts resubmit on flaky connections, so
	// duplicates are silently skipped.
	isDup, err := s.dedup.IsDuplicate(ctx, in.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", in.ID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.ActivityDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("event_id", in.ID).Str("kind", in.Kind).Msg("duplicate event skipped")
		return nil
	}
	metrics.ActivityDedupTotal.WithLabelValues("miss").Inc()

	// 2. Mark as processed before writing (prevents duplicate processing on
	// retry).
	if markErr := s.dedup.Mark(ctx, in.ID); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", in.ID).Msg("failed to set dedup key")
	}

	// 3. Append to the audit trail.
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	event := &domain.ActivityEvent{
		ID:         in.ID,
		SessionID:  in.SessionID,
		IdentityID: in.IdentityID,
		Kind:       kind,
		Path:       in.Path,
		OccurredAt: occurredAt,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.ActivityProcessedTotal.WithLabelValues(string(kind)).Inc()
	metrics.ActivityProcessingDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	s.log.Debug().
		Str("event_id", in.ID).
		Str("session_id", in.SessionID).
		Str("kind", in.Kind).
		Msg("activity recorded")
	return nil
}

func parseActivityKind(s string) (domain.ActivityKind, error) {
	switch domain.ActivityKind(s) {
	case domain.ActivityLogin, domain.ActivityLogout, domain.ActivityCartUpdated,
		domain.ActivityCheckout, domain.ActivityPageView:
		return domain.ActivityKind(s), nil
	}
	return "", fmt.Errorf("unknown activity kind %q", s)
}
