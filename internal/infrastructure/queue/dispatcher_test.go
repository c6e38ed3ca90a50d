package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	events []ports.ActivityInput
	done   chan struct{}
	want   int
}

func newRecordingService(want int) *recordingService {
	return &recordingService{done: make(chan struct{}), want: want}
}

func (s *recordingService) Process(_ context.Context, in ports.ActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, in)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingService) wait(t *testing.T) []ports.ActivityInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.ActivityInput(nil), s.events...)
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := newRecordingService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i, id := range []string{"evt_1", "evt_2", "evt_3"} {
		d.Enqueue(ports.ActivityInput{ID: id, SessionID: "sess_1", Kind: "page_view", Path: "/", OccurredAt: time.Now().Add(time.Duration(i))})
	}

	events := svc.wait(t)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestDispatcher_PreservesPerSessionOrder(t *testing.T) {
	svc := newRecordingService(10)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	ids := []string{"e0", "e1", "e2", "e3", "e4", "e5", "e6", "e7", "e8", "e9"}
	for _, id := range ids {
		d.Enqueue(ports.ActivityInput{ID: id, SessionID: "sess_1", Kind: "page_view"})
	}

	events := svc.wait(t)
	for i, event := range events {
		if event.ID != ids[i] {
			t.Fatalf("order broken at %d: got %s, want %s", i, event.ID, ids[i])
		}
	}
}

func TestDispatcher_SameSessionSameWorker(t *testing.T) {
	d := NewDispatcher(8, nil, zerolog.Nop())

	first := d.shardIndex("sess_abc")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("sess_abc"); got != first {
			t.Fatalf("shard index not deterministic: %d vs %d", got, first)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
