package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type customerRepository struct {
	store *Store
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{store: store}
}

func (r *customerRepository) Create(ctx context.Context, customer domain.NewCustomer) (id int64, err error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify("begin tx", "customers", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var createdAt time.Time
	err = tx.QueryRowContext(ctx, `
		INSERT INTO customers (
			first_name, last_name, email, phone, address, city, postal_code
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING customer_id, created_at
	`,
		customer.FirstName, customer.LastName, customer.Email, customer.Phone,
		customer.Address, customer.City, customer.PostalCode,
	).Scan(&id, &createdAt)
	if err != nil {
		if isDuplicateEmail(err) {
			return 0, &domain.DuplicateEmailError{Email: customer.Email}
		}
		return 0, classify("insert customer", "customers", err)
	}

	msg, err := domain.CustomerRegisteredMessage(id, customer, createdAt)
	if err != nil {
		return 0, domain.NewStorageError("insert customer", err)
	}
	if err = insertOutboxMessage(ctx, tx, msg); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, classify("commit insert customer", "customers", err)
	}
	return id, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.CustomerSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT customer_id, first_name, last_name, email, phone, city
		FROM customers
		ORDER BY created_at DESC, customer_id DESC
	`)
	if err != nil {
		return nil, classify("list customers", "customers", err)
	}
	defer rows.Close()

	result := make([]domain.CustomerSummary, 0)
	for rows.Next() {
		var c domain.CustomerSummary
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.City); err != nil {
			return nil, classify("scan customer row", "customers", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate customer rows", "customers", err)
	}
	return result, nil
}

// execer объединяет *sql.Tx и *sql.Conn для вставки в outbox.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var _ execer = (*sql.Tx)(nil)

func insertOutboxMessage(ctx context.Context, q execer, msg domain.OutboxMessage) error {
	if msg.ID == "" {
		msg.ID = newOutboxID()
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO outbox_messages (
			id, aggregate_type, aggregate_id, event_type, payload, status, attempt_count
		) VALUES ($1,$2,$3,$4,$5,'pending',0)
	`,
		msg.ID, msg.AggregateType, msg.AggregateID, msg.EventType, msg.Payload,
	)
	if err != nil {
		return classify(fmt.Sprintf("enqueue %s", msg.EventType), "outbox_messages", err)
	}
	return nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
