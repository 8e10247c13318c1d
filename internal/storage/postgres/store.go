package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

const (
	defaultConnTimeout     = 5 * time.Second
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute

	// opTimeout ограничивает одну операцию чтения или записи.
	opTimeout = 5 * time.Second
	// txTimeout ограничивает транзакцию создания заказа целиком.
	txTimeout = 30 * time.Second
)

var errStoreNotInitialized = errors.New("postgres store is not initialized")

// Store оборачивает пул подключений к PostgreSQL. Репозитории берут из пула
// отдельную сессию на каждую операцию и возвращают её на любом пути выхода.
type Store struct {
	db *sql.DB
}

// Open открывает пул и проверяет доступность базы.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, domain.Unavailable(fmt.Errorf("ping postgres: %w", err))
	}

	return &Store{db: db}, nil
}

// Ping проверяет доступность базы. Ошибка оборачивает ErrStorageUnavailable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return domain.Unavailable(errStoreNotInitialized)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := s.db.PingContext(pingCtx); err != nil {
		return domain.Unavailable(err)
	}
	return nil
}

// session выделяет подключение из пула. Любая ошибка здесь означает
// недоступность хранилища, а не ошибку запроса.
func (s *Store) session(ctx context.Context) (*sql.Conn, error) {
	if s == nil || s.db == nil {
		return nil, domain.Unavailable(errStoreNotInitialized)
	}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return conn, nil
}

// EnsureSchema применяет все up-миграции.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.MigrateUp(ctx, 0)
}

// Close закрывает пул.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
