package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

func TestOutboxRepository_EnqueueAndPull(t *testing.T) {
	store := NewStore()
	repo := NewOutboxRepository(store)
	ctx := context.Background()

	store.mu.Lock()
	store.enqueueLocked(domain.OutboxMessage{
		AggregateType: domain.AggregateOrder,
		AggregateID:   "1",
		EventType:     domain.EventOrderStatusChanged,
		Payload:       []byte(`{"status":"Shipped"}`),
	}, time.Now().UTC())
	store.mu.Unlock()

	pending, err := repo.PullPending(ctx, 10)
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending message, got %d", len(pending))
	}
	if pending[0].ID == "" {
		t.Fatal("expected generated id")
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.PendingCount != 1 || stats.OldestPendingAt.IsZero() {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	store := NewStore()
	repo := NewOutboxRepository(store)
	ctx := context.Background()

	store.mu.Lock()
	store.enqueueLocked(domain.OutboxMessage{ID: "evt-1", AggregateType: domain.AggregateOrder}, time.Now().UTC())
	store.enqueueLocked(domain.OutboxMessage{ID: "evt-2", AggregateType: domain.AggregateOrder}, time.Now().UTC())
	store.mu.Unlock()

	if err := repo.MarkSent(ctx, "evt-1"); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	if err := repo.MarkFailed(ctx, "evt-2"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if err := repo.MarkFailed(ctx, "missing"); !errors.Is(err, domain.ErrOutboxPublish) {
		t.Fatalf("expected ErrOutboxPublish for missing record, got %v", err)
	}

	pending, err := repo.PullPending(ctx, 10)
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending messages, got %d", len(pending))
	}
}

func TestOutboxRepository_DeleteSent(t *testing.T) {
	sentAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := NewStore(WithClock(func() time.Time { return sentAt }))
	repo := NewOutboxRepository(store)
	ctx := context.Background()

	store.mu.Lock()
	for _, id := range []string{"evt-1", "evt-2", "evt-3", "evt-4"} {
		store.enqueueLocked(domain.OutboxMessage{ID: id, AggregateType: domain.AggregateOrder}, sentAt)
	}
	store.mu.Unlock()

	for _, id := range []string{"evt-1", "evt-2"} {
		if err := repo.MarkSent(ctx, id); err != nil {
			t.Fatalf("mark sent failed: %v", err)
		}
	}
	if err := repo.MarkFailed(ctx, "evt-3"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	if deleted, err := repo.DeleteSent(ctx, sentAt.Add(-time.Second), 10); err != nil || deleted != 0 {
		t.Fatalf("expected nothing older than cutoff, deleted=%d err=%v", deleted, err)
	}
	if deleted, err := repo.DeleteSent(ctx, sentAt, 1); err != nil || deleted != 1 {
		t.Fatalf("expected batch of 1, deleted=%d err=%v", deleted, err)
	}
	if deleted, err := repo.DeleteSent(ctx, sentAt, 10); err != nil || deleted != 1 {
		t.Fatalf("expected remaining sent record, deleted=%d err=%v", deleted, err)
	}

	store.mu.RLock()
	remaining := len(store.outbox)
	store.mu.RUnlock()
	if remaining != 2 {
		t.Fatalf("failed and pending records must stay, got %d records", remaining)
	}
	if pending := store.PendingEvents(); len(pending) != 1 {
		t.Fatalf("expected one pending event, got %v", pending)
	}
}
