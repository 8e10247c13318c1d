package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

const defaultPullLimit = 100

type outboxRepository struct {
	store *Store
}

// NewOutboxRepository создаёт PostgreSQL-реализацию OutboxRepository.
func NewOutboxRepository(store *Store) domain.OutboxRepository {
	return &outboxRepository{store: store}
}

func newOutboxID() string {
	return uuid.NewString()
}

func (r *outboxRepository) PullPending(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if limit <= 0 {
		limit = defaultPullLimit
	}

	conn, err := r.store.session(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT id, aggregate_type, aggregate_id, event_type, payload
		FROM outbox_messages
		WHERE status = 'pending'
		ORDER BY created_at, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, classify("pull pending outbox messages", "outbox_messages", err)
	}
	defer rows.Close()

	result := make([]domain.OutboxMessage, 0, limit)
	for rows.Next() {
		var msg domain.OutboxMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.AggregateType,
			&msg.AggregateID,
			&msg.EventType,
			&msg.Payload,
		); err != nil {
			return nil, classify("scan outbox message", "outbox_messages", err)
		}
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate outbox rows", "outbox_messages", err)
	}

	return result, nil
}

func (r *outboxRepository) Stats(ctx context.Context) (domain.OutboxStats, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return domain.OutboxStats{}, err
	}
	defer conn.Close()

	var (
		stats  domain.OutboxStats
		oldest sql.NullTime
	)
	if err := conn.QueryRowContext(ctx, `
		SELECT COUNT(*), MIN(created_at)
		FROM outbox_messages
		WHERE status = 'pending'
	`).Scan(&stats.PendingCount, &oldest); err != nil {
		return domain.OutboxStats{}, classify("outbox stats", "outbox_messages", err)
	}

	if oldest.Valid {
		stats.OldestPendingAt = oldest.Time.UTC()
	}
	return stats, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.markStatus(ctx, id, "sent")
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string) error {
	return r.markStatus(ctx, id, "failed")
}

func (r *outboxRepository) markStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		UPDATE outbox_messages
		SET status = $2,
		    attempt_count = attempt_count + 1,
		    updated_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return classify(fmt.Sprintf("mark outbox message as %s", status), "outbox_messages", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return classify(fmt.Sprintf("rows affected for outbox %s", status), "outbox_messages", err)
	}
	if affected == 0 {
		return domain.ErrOutboxPublish
	}
	return nil
}

func (r *outboxRepository) DeleteSent(ctx context.Context, before time.Time, limit int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if limit <= 0 {
		limit = defaultPullLimit
	}

	conn, err := r.store.session(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		DELETE FROM outbox_messages
		WHERE id IN (
			SELECT id
			FROM outbox_messages
			WHERE status = 'sent' AND updated_at <= $1
			ORDER BY updated_at, id
			LIMIT $2
		)
	`, before.UTC(), limit)
	if err != nil {
		return 0, classify("delete sent outbox messages", "outbox_messages", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, classify("rows affected for outbox cleanup", "outbox_messages", err)
	}
	return int(affected), nil
}

var _ domain.OutboxRepository = (*outboxRepository)(nil)
