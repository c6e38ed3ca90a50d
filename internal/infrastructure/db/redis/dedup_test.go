package redis

import (
	"context"
	"testing"
	"time"
)

func TestDedupChecker_FirstSeenIsNotDuplicate(t *testing.T) {
	client, _ := setupTestRedis(t)
	checker := NewDedupChecker(client)

	dup, err := checker.IsDuplicate(context.Background(), "evt_1")
	if err != nil {
		t.Fatalf("IsDuplicate returned error: %v", err)
	}
	if dup {
		t.Fatalf("unseen event reported as duplicate")
	}
}

func TestDedupChecker_MarkThenDuplicate(t *testing.T) {
	client, _ := setupTestRedis(t)
	checker := NewDedupChecker(client)
	ctx := context.Background()

	if err := checker.Mark(ctx, "evt_1"); err != nil {
		t.Fatalf("Mark returned error: %v", err)
	}

	dup, err := checker.IsDuplicate(ctx, "evt_1")
	if err != nil {
		t.Fatalf("IsDuplicate returned error: %v", err)
	}
	if !dup {
		t.Fatalf("marked event not reported as duplicate")
	}
}

func TestDedupChecker_MarkExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	checker := NewDedupChecker(client)
	ctx := context.Background()

	if err := checker.Mark(ctx, "evt_1"); err != nil {
		t.Fatalf("Mark returned error: %v", err)
	}
	mr.FastForward(dedupTTL + time.Second)

	dup, err := checker.IsDuplicate(ctx, "evt_1")
	if err != nil {
		t.Fatalf("IsDuplicate returned error: %v", err)
	}
	if dup {
		t.Fatalf("expired mark still reported as duplicate")
	}
}
