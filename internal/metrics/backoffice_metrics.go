package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BackofficeMetrics содержит метрики операций back office.
type BackofficeMetrics struct {
	// Операции сервиса по результату (ok, validation, duplicate, ...)
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	// Бизнес-счётчики
	customersRegistered prometheus.Counter
	ordersCreated       prometheus.Counter
	orderItems          prometheus.Counter
	orderRollbacks      prometheus.Counter
	statusChanges       *prometheus.CounterVec
}

// NewBackofficeMetrics создаёт метрики в DefaultRegisterer.
func NewBackofficeMetrics() *BackofficeMetrics {
	return NewBackofficeMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewBackofficeMetricsWithRegisterer создаёт метрики в указанном registerer.
// Повторная регистрация возвращает уже существующие коллекторы.
func NewBackofficeMetricsWithRegisterer(registerer prometheus.Registerer) *BackofficeMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &BackofficeMetrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "backoffice_operations_total",
			Help: "Total number of back office operations grouped by operation and result",
		}, []string{"operation", "result"}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "backoffice_operation_duration_seconds",
			Help:    "Duration of back office operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		customersRegistered: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_customers_registered_total",
			Help: "Total number of registered customers",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_orders_created_total",
			Help: "Total number of committed orders",
		}),
		orderItems: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_order_items_total",
			Help: "Total number of committed order line items",
		}),
		orderRollbacks: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_order_rollbacks_total",
			Help: "Total number of order transactions rolled back",
		}),
		statusChanges: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "backoffice_order_status_changes_total",
			Help: "Total number of order status updates grouped by new status",
		}, []string{"status"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOperation фиксирует результат и длительность операции.
func (m *BackofficeMetrics) RecordOperation(operation, result string, duration time.Duration) {
	m.operations.WithLabelValues(operation, result).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCustomerRegistered увеличивает счётчик зарегистрированных покупателей.
func (m *BackofficeMetrics) RecordCustomerRegistered() {
	m.customersRegistered.Inc()
}

// RecordOrderCreated увеличивает счётчики заказов и позиций.
func (m *BackofficeMetrics) RecordOrderCreated(items int) {
	m.ordersCreated.Inc()
	m.orderItems.Add(float64(items))
}

// RecordOrderRollback увеличивает счётчик откатов транзакции заказа.
func (m *BackofficeMetrics) RecordOrderRollback() {
	m.orderRollbacks.Inc()
}

// RecordStatusChange увеличивает счётчик смен статуса.
func (m *BackofficeMetrics) RecordStatusChange(status string) {
	m.statusChanges.WithLabelValues(status).Inc()
}
