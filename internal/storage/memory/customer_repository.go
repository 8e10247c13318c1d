package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type customerRepositoryInMemory struct {
	store *Store
}

// NewCustomerRepository возвращает in-memory репозиторий покупателей.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepositoryInMemory{store: store}
}

// Create вставляет покупателя и событие customer.registered атомарно.
func (r *customerRepositoryInMemory) Create(_ context.Context, customer domain.NewCustomer) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.availableLocked(); err != nil {
		return 0, err
	}
	for _, row := range s.customers {
		if row.Email == customer.Email {
			return 0, &domain.DuplicateEmailError{Email: customer.Email}
		}
	}

	now := s.now()
	id := s.nextCustomerID + 1

	msg, err := domain.CustomerRegisteredMessage(id, customer, now)
	if err != nil {
		return 0, domain.NewStorageError("insert customer", err)
	}

	s.nextCustomerID = id
	s.customers = append(s.customers, customerRow{Customer: domain.Customer{
		ID:         id,
		FirstName:  customer.FirstName,
		LastName:   customer.LastName,
		Email:      customer.Email,
		Phone:      customer.Phone,
		Address:    customer.Address,
		City:       customer.City,
		PostalCode: customer.PostalCode,
		CreatedAt:  now,
	}})
	s.enqueueLocked(msg, now)

	return id, nil
}

// List возвращает покупателей по убыванию created_at.
func (r *customerRepositoryInMemory) List(context.Context) ([]domain.CustomerSummary, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}

	rows := make([]domain.Customer, 0, len(s.customers))
	for _, row := range s.customers {
		rows = append(rows, row.Customer)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})

	result := make([]domain.CustomerSummary, 0, len(rows))
	for _, c := range rows {
		result = append(result, domain.CustomerSummary{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Phone:     c.Phone,
			City:      c.City,
		})
	}
	return result, nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
