package backoffice

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/validation"
)

// RegisterCustomerInput содержит сырые поля формы регистрации.
type RegisterCustomerInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

func (in RegisterCustomerInput) trimmed() RegisterCustomerInput {
	return RegisterCustomerInput{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
	}
}

// required возвращает первое пустое поле в порядке формы.
func (in RegisterCustomerInput) required() error {
	fields := []struct {
		name  string
		label string
		value string
	}{
		{"first_name", "First Name", in.FirstName},
		{"last_name", "Last Name", in.LastName},
		{"email", "Email", in.Email},
		{"phone", "Phone Number", in.Phone},
		{"address", "Address", in.Address},
		{"city", "City", in.City},
		{"postal_code", "Postal Code", in.PostalCode},
	}
	for _, f := range fields {
		if f.value == "" {
			return domain.NewValidationError(f.name, f.label+" is required")
		}
	}
	return nil
}

// RegisterCustomer проверяет поля и вставляет покупателя.
// Возвращается первая причина отказа; хранилище при этом не затрагивается.
func (s *Service) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (res Result, err error) {
	start := time.Now()
	defer func() { s.observe("register_customer", start, err) }()

	in = in.trimmed()
	if err := in.required(); err != nil {
		return Result{}, err
	}

	checks := []func() error{
		func() error { return validation.Name("First name", in.FirstName) },
		func() error { return validation.Name("Last name", in.LastName) },
		func() error { return validation.Email(in.Email) },
		func() error { return validation.Phone(in.Phone) },
		func() error { return validation.PostalCode(in.PostalCode) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return Result{}, err
		}
	}

	id, err := s.customers.Create(ctx, domain.NewCustomer{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      validation.NormalizePhone(in.Phone),
		Address:    in.Address,
		City:       in.City,
		PostalCode: in.PostalCode,
	})
	if err != nil {
		return Result{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordCustomerRegistered()
	}
	s.logger.WithFields(log.Fields{"customer_id": id, "city": in.City}).Info("customer registered")

	return Result{ID: id, Message: fmt.Sprintf("Customer added successfully! ID: %d", id)}, nil
}

// Customers возвращает покупателей, новые первыми.
func (s *Service) Customers(ctx context.Context) (list []domain.CustomerSummary, err error) {
	start := time.Now()
	defer func() { s.observe("list_customers", start, err) }()

	return s.customers.List(ctx)
}

// PostalCode подбирает индекс по городу (без учёта регистра, с индексом по умолчанию).
func (s *Service) PostalCode(city string) string {
	return s.postal.Lookup(strings.TrimSpace(city))
}

// Cities возвращает города справочника по алфавиту.
func (s *Service) Cities() []string {
	return s.postal.Cities()
}
