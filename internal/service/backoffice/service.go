// Package backoffice реализует сценарии back office: регистрацию покупателей,
// создание заказов с позициями, смену статуса и отчёты.
//
// Сервис сначала прогоняет валидаторы и только потом обращается к хранилищу.
// Транзакцией создания заказа владеет сервис: откат выполняется явно.
package backoffice

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/metrics"
	"github.com/vladislavdragonenkov/backoffice/internal/reference"
)

// DefaultReportWindow задаёт число последних заказов для дневных отчётов и первой страницы таблицы.
const DefaultReportWindow = 200

// Repositories перечисляет порты хранилища, которые нужны сервису.
type Repositories struct {
	Customers domain.CustomerRepository
	Orders    domain.OrderRepository
	Catalog   domain.CatalogRepository
	Reports   domain.ReportRepository
}

// Result возвращается успешной операцией записи.
type Result struct {
	ID      int64
	Message string
}

// Service обслуживает заказы и покупателей.
type Service struct {
	customers domain.CustomerRepository
	orders    domain.OrderRepository
	catalog   domain.CatalogRepository
	reports   domain.ReportRepository

	postal       *reference.PostalDirectory
	logger       *log.Entry
	metrics      *metrics.BackofficeMetrics
	reportWindow int
}

// Option настраивает Service.
type Option func(*Service)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics включает метрики операций.
func WithMetrics(m *metrics.BackofficeMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithReportWindow задаёт окно последних заказов для отчётов.
func WithReportWindow(window int) Option {
	return func(s *Service) {
		if window > 0 {
			s.reportWindow = window
		}
	}
}

// NewService создаёт сервис поверх репозиториев.
func NewService(repos Repositories, options ...Option) *Service {
	s := &Service{
		customers:    repos.Customers,
		orders:       repos.Orders,
		catalog:      repos.Catalog,
		reports:      repos.Reports,
		reportWindow: DefaultReportWindow,
		postal:       reference.Postal(),
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = log.WithField("component", "backoffice-service")
	}
	return s
}

// observe пишет метрику операции и логирует ошибку с уровнем по её классу.
func (s *Service) observe(operation string, start time.Time, err error) {
	kind := domain.KindOf(err)
	if s.metrics != nil {
		s.metrics.RecordOperation(operation, string(kind), time.Since(start))
	}

	entry := s.logger.WithField("operation", operation)
	switch kind {
	case domain.KindNone:
	case domain.KindValidation, domain.KindNotFound, domain.KindDuplicate:
		entry.WithError(err).Debug("request rejected")
	default:
		entry.WithError(err).WithField("kind", kind).Error("storage operation failed")
	}
}
