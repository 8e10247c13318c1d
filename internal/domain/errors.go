package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — входные данные отклонены валидатором, хранилище не затрагивалось.
	ErrValidation = errors.New("validation failed")
	// ErrOrderNotFound возвращается при смене статуса несуществующего заказа.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateEmail — нарушение уникальности email на уровне хранилища.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrStorageUnavailable — не удалось получить сессию БД.
	ErrStorageUnavailable = errors.New("database connection failed")
	// ErrStorage — любая другая ошибка выполнения запроса.
	ErrStorage = errors.New("storage error")
	// ErrOutboxPublish — ошибка при отметке/публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// ValidationError несёт причину отказа конкретного валидатора.
// Error() возвращает причину без префиксов: она показывается пользователю как есть.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError создаёт ошибку валидации поля.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

// Is позволяет проверять ошибку через errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DuplicateEmailError сообщает, что email уже зарегистрирован.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("Email '%s' already exists in the system", e.Email)
}

func (e *DuplicateEmailError) Is(target error) bool { return target == ErrDuplicateEmail }

// StorageError оборачивает ошибку драйвера с описанием операции.
// Текст драйвера сохраняется в сообщении.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError создаёт StorageError; nil err даёт nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Unavailable оборачивает причину недоступности хранилища.
func Unavailable(cause error) error {
	if cause == nil {
		return ErrStorageUnavailable
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, cause)
}

// ErrorKind — класс ошибки из таксономии сервиса.
type ErrorKind string

const (
	KindNone        ErrorKind = "ok"
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindDuplicate   ErrorKind = "duplicate"
	KindUnavailable ErrorKind = "unavailable"
	KindStorage     ErrorKind = "storage"
	KindUnknown     ErrorKind = "unknown"
)

// KindOf классифицирует ошибку. Порядок проверок важен: недоступность
// хранилища может быть обёрнута в StorageError.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrOrderNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateEmail):
		return KindDuplicate
	case errors.Is(err, ErrStorageUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindUnknown
	}
}
