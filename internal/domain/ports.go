package domain

import (
	"context"
	"time"
)

// StatusChange — запрошенная смена статуса заказа.
// ShipDate == nil означает, что дата отгрузки не меняется.
type StatusChange struct {
	OrderID  int64
	Status   OrderStatus
	ShipDate *time.Time
}

// CustomerRepository хранит покупателей.
type CustomerRepository interface {
	// Create вставляет покупателя и возвращает сгенерированный ID.
	// Дубликат email даёт *DuplicateEmailError.
	Create(ctx context.Context, customer NewCustomer) (int64, error)
	// List возвращает покупателей, новые первыми.
	List(ctx context.Context) ([]CustomerSummary, error)
}

// OrderTx — открытая транзакция создания заказа.
type OrderTx interface {
	InsertOrder(ctx context.Context, order NewOrder) (int64, error)
	InsertItem(ctx context.Context, orderID int64, item OrderItem) error
	Enqueue(ctx context.Context, msg OutboxMessage) error
	Commit() error
	Rollback() error
}

// OrderRepository хранит заказы и их позиции.
type OrderRepository interface {
	// Begin открывает транзакцию; ошибка получения сессии оборачивает ErrStorageUnavailable.
	Begin(ctx context.Context) (OrderTx, error)
	// UpdateStatus читает текущее состояние заказа, вызывает check и,
	// если check не вернул ошибку, обновляет статус (и дату отгрузки) одним запросом.
	UpdateStatus(ctx context.Context, change StatusChange, check func(OrderState) error) (OrderState, error)
	// List возвращает заказы, новые первыми.
	List(ctx context.Context) ([]OrderSummary, error)
	// Get возвращает заказ с позициями или ErrOrderNotFound.
	Get(ctx context.Context, orderID int64) (OrderDetails, error)
}

// CatalogRepository отдаёт справочники только на чтение.
type CatalogRepository interface {
	PaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	Channels(ctx context.Context) ([]Channel, error)
	Categories(ctx context.Context) ([]Category, error)
	Products(ctx context.Context, categoryID int64) ([]Product, error)
}

// ReportRepository строит агрегаты для дашборда.
type ReportRepository interface {
	DashboardStats(ctx context.Context) (DashboardStats, error)
	// RevenueByDay и OrdersByDay сначала берут limit самых свежих заказов,
	// затем группируют их по дню (по возрастанию даты).
	RevenueByDay(ctx context.Context, limit int) ([]DailyRevenue, error)
	OrdersByDay(ctx context.Context, limit int) ([]DailyOrderCount, error)
	LatestOrders(ctx context.Context, limit, offset int) ([]LatestOrderRow, error)
}

// OutboxRepository читает и отмечает события transactional outbox.
type OutboxRepository interface {
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
	// DeleteSent удаляет до limit отправленных сообщений, обновлённых не позже before.
	DeleteSent(ctx context.Context, before time.Time, limit int) (int, error)
}

// OutboxPublisher публикует события из outbox наружу.
type OutboxPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}
