package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
	outboxStatusFailed  = "failed"
)

// outboxRecord хранит сообщение и служебные поля.
type outboxRecord struct {
	msg        domain.OutboxMessage
	status     string
	attemptCnt int
	createdAt  time.Time
	updatedAt  time.Time
}

type outboxRepositoryInMemory struct {
	store *Store
}

// NewOutboxRepository возвращает in-memory outbox поверх общего Store.
func NewOutboxRepository(store *Store) domain.OutboxRepository {
	return &outboxRepositoryInMemory{store: store}
}

// enqueueLocked добавляет событие со статусом pending. Вызывается под s.mu.
func (s *Store) enqueueLocked(msg domain.OutboxMessage, now time.Time) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	s.outbox = append(s.outbox, &outboxRecord{
		msg:       msg,
		status:    outboxStatusPending,
		createdAt: now,
		updatedAt: now,
	})
}

// PullPending возвращает до limit сообщений в порядке записи.
func (r *outboxRepositoryInMemory) PullPending(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	result := make([]domain.OutboxMessage, 0, limit)
	for _, rec := range s.outbox {
		if rec.status != outboxStatusPending {
			continue
		}
		result = append(result, rec.msg)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (r *outboxRepositoryInMemory) Stats(context.Context) (domain.OutboxStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return domain.OutboxStats{}, err
	}

	var stats domain.OutboxStats
	for _, rec := range s.outbox {
		if rec.status != outboxStatusPending {
			continue
		}
		stats.PendingCount++
		if stats.OldestPendingAt.IsZero() || rec.createdAt.Before(stats.OldestPendingAt) {
			stats.OldestPendingAt = rec.createdAt
		}
	}
	return stats, nil
}

func (r *outboxRepositoryInMemory) MarkSent(_ context.Context, id string) error {
	return r.markStatus(id, outboxStatusSent)
}

func (r *outboxRepositoryInMemory) MarkFailed(_ context.Context, id string) error {
	return r.markStatus(id, outboxStatusFailed)
}

func (r *outboxRepositoryInMemory) markStatus(id, status string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.availableLocked(); err != nil {
		return err
	}
	for _, rec := range s.outbox {
		if rec.msg.ID != id {
			continue
		}
		rec.status = status
		rec.attemptCnt++
		rec.updatedAt = s.now()
		return nil
	}
	return domain.ErrOutboxPublish
}

func (r *outboxRepositoryInMemory) DeleteSent(_ context.Context, before time.Time, limit int) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.availableLocked(); err != nil {
		return 0, err
	}
	if limit <= 0 {
		limit = 100
	}

	deleted := 0
	kept := s.outbox[:0]
	for _, rec := range s.outbox {
		if deleted < limit && rec.status == outboxStatusSent && !rec.updatedAt.After(before) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	clear(s.outbox[len(kept):])
	s.outbox = kept
	return deleted, nil
}

// PendingEvents возвращает типы событий, ожидающих публикации, в порядке записи.
func (s *Store) PendingEvents() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, 0, len(s.outbox))
	for _, rec := range s.outbox {
		if rec.status == outboxStatusPending {
			result = append(result, rec.msg.EventType)
		}
	}
	return result
}

var _ domain.OutboxRepository = (*outboxRepositoryInMemory)(nil)
