package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

const (
	pgUniqueViolation   = "23505"
	pgUndefinedTable    = "42P01"
	pgIntegrityClass    = "23"
	customersEmailIndex = "customers_email_key"
)

// classify переводит ошибку драйвера в таксономию domain.
// table используется в сообщении об отсутствующей таблице.
func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return domain.Unavailable(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUndefinedTable:
			return domain.NewStorageError(op, fmt.Errorf("Database table '%s' does not exist. Please create the tables first: %w", table, err))
		case strings.HasPrefix(pgErr.Code, pgIntegrityClass):
			return domain.NewStorageError(op, fmt.Errorf("Database constraint violation: %w", err))
		}
	}

	return domain.NewStorageError(op, err)
}

// isDuplicateEmail сообщает, нарушена ли уникальность email покупателя.
func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == customersEmailIndex
}
