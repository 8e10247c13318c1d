package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type customerRow struct {
	domain.Customer
}

type orderRow struct {
	id              int64
	customerID      int64
	paymentMethodID int64
	channelID       int64
	orderDate       time.Time
	shipDate        *time.Time
	status          domain.OrderStatus
	totalAmount     decimal.Decimal
	discount        *decimal.Decimal
	shippingAddress string
}

type itemRow struct {
	orderID int64
	item    domain.OrderItem
}

type paymentMethodRow struct {
	domain.PaymentMethod
	active bool
}

type categoryRow struct {
	domain.Category
	active bool
}

// Store держит общее in-memory состояние всех репозиториев. Повторяет выборки и
// сортировки PostgreSQL-реализации, чтобы сервис вёл себя одинаково в обоих режимах.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	unavailable error

	customers      []customerRow
	orders         []orderRow
	items          []itemRow
	paymentMethods []paymentMethodRow
	channels       []domain.Channel
	categories     []categoryRow
	products       []domain.Product
	outbox         []*outboxRecord

	nextCustomerID int64
	nextOrderID    int64
}

// Option настраивает Store.
type Option func(*Store)

// WithClock подменяет источник времени (дата заказа, created_at).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore создаёт пустое хранилище без справочников.
func NewStore(options ...Option) *Store {
	s := &Store{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Ping проверяет доступность хранилища.
func (s *Store) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.availableLocked()
}

// SetUnavailable переводит хранилище в режим недоступности: каждая операция
// возвращает ErrStorageUnavailable с указанной причиной. nil возвращает доступность.
func (s *Store) SetUnavailable(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = cause
}

func (s *Store) availableLocked() error {
	if s.unavailable != nil {
		return domain.Unavailable(s.unavailable)
	}
	return nil
}

// Справочники нумеруются с 1 в порядке добавления, как SERIAL в PostgreSQL.

// AddPaymentMethod добавляет способ оплаты и возвращает его ID.
func (s *Store) AddPaymentMethod(name string, active bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := int64(len(s.paymentMethods) + 1)
	s.paymentMethods = append(s.paymentMethods, paymentMethodRow{
		PaymentMethod: domain.PaymentMethod{ID: id, Name: name},
		active:        active,
	})
	return id
}

// AddChannel добавляет канал продаж и возвращает его ID.
func (s *Store) AddChannel(name, description string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := int64(len(s.channels) + 1)
	s.channels = append(s.channels, domain.Channel{ID: id, Name: name, Description: description})
	return id
}

// AddCategory добавляет категорию товаров и возвращает её ID.
func (s *Store) AddCategory(name, description string, active bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := int64(len(s.categories) + 1)
	s.categories = append(s.categories, categoryRow{
		Category: domain.Category{ID: id, Name: name, Description: description},
		active:   active,
	})
	return id
}

// AddProduct добавляет товар; ID в product игнорируется и возвращается новый.
func (s *Store) AddProduct(product domain.Product) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = int64(len(s.products) + 1)
	s.products = append(s.products, product)
	return product.ID
}

func (s *Store) customerByID(id int64) (domain.Customer, bool) {
	for _, row := range s.customers {
		if row.ID == id {
			return row.Customer, true
		}
	}
	return domain.Customer{}, false
}

func (s *Store) paymentMethodName(id int64) (string, bool) {
	for _, row := range s.paymentMethods {
		if row.ID == id {
			return row.Name, true
		}
	}
	return "", false
}

func (s *Store) channelName(id int64) (string, bool) {
	for _, ch := range s.channels {
		if ch.ID == id {
			return ch.Name, true
		}
	}
	return "", false
}

func (s *Store) categoryName(id int64) (string, bool) {
	for _, row := range s.categories {
		if row.ID == id {
			return row.Name, true
		}
	}
	return "", false
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
