package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

func TestOutboxRepository_PostgresFlow(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOutboxRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	createCustomerForIntegrationTest(t, store, "outbox-1@example.com")
	createCustomerForIntegrationTest(t, store, "outbox-2@example.com")

	pending, err := repo.PullPending(ctx, 0)
	if err != nil {
		t.Fatalf("pull pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending messages, got %d", len(pending))
	}
	if pending[0].ID == "" || pending[0].AggregateType != domain.AggregateCustomer {
		t.Fatalf("unexpected message: %+v", pending[0])
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats before marks: %v", err)
	}
	if stats.PendingCount != 2 || stats.OldestPendingAt.IsZero() {
		t.Fatalf("unexpected stats before marks: %+v", stats)
	}

	if err := repo.MarkSent(ctx, pending[0].ID); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	if err := repo.MarkFailed(ctx, pending[1].ID); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	stats, err = repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats after marks: %v", err)
	}
	if stats.PendingCount != 0 || !stats.OldestPendingAt.IsZero() {
		t.Fatalf("unexpected stats after marks: %+v", stats)
	}

	if err := repo.MarkSent(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrOutboxPublish) {
		t.Fatalf("expected ErrOutboxPublish for missing id, got %v", err)
	}

	if deleted, err := repo.DeleteSent(ctx, time.Now().Add(-time.Hour), 10); err != nil || deleted != 0 {
		t.Fatalf("expected fresh sent record to stay, deleted=%d err=%v", deleted, err)
	}
	deleted, err := repo.DeleteSent(ctx, time.Now().Add(time.Minute), 10)
	if err != nil {
		t.Fatalf("delete sent: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected only the sent record to be deleted, got %d", deleted)
	}
}
