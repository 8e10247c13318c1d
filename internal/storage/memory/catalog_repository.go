package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type catalogRepositoryInMemory struct {
	store *Store
}

// NewCatalogRepository возвращает in-memory справочники.
func NewCatalogRepository(store *Store) domain.CatalogRepository {
	return &catalogRepositoryInMemory{store: store}
}

// PaymentMethods возвращает активные способы оплаты в порядке ID.
func (r *catalogRepositoryInMemory) PaymentMethods(context.Context) ([]domain.PaymentMethod, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}

	result := make([]domain.PaymentMethod, 0, len(s.paymentMethods))
	for _, row := range s.paymentMethods {
		if row.active {
			result = append(result, row.PaymentMethod)
		}
	}
	return result, nil
}

// Channels возвращает все каналы продаж в порядке ID.
func (r *catalogRepositoryInMemory) Channels(context.Context) ([]domain.Channel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}

	result := make([]domain.Channel, len(s.channels))
	copy(result, s.channels)
	return result, nil
}

// Categories возвращает активные категории по алфавиту.
func (r *catalogRepositoryInMemory) Categories(context.Context) ([]domain.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}

	result := make([]domain.Category, 0, len(s.categories))
	for _, row := range s.categories {
		if row.active {
			result = append(result, row.Category)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Products возвращает активные товары категории по алфавиту.
func (r *catalogRepositoryInMemory) Products(_ context.Context, categoryID int64) ([]domain.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}

	result := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.CategoryID == categoryID && p.Active {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

var _ domain.CatalogRepository = (*catalogRepositoryInMemory)(nil)
