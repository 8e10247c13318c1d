package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// orderRepositoryInMemory — in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	store *Store
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepositoryInMemory{store: store}
}

// Begin открывает буферизующую транзакцию: изменения видны только после Commit.
func (r *orderRepositoryInMemory) Begin(context.Context) (domain.OrderTx, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.availableLocked(); err != nil {
		return nil, err
	}
	return &orderTx{store: r.store}, nil
}

// UpdateStatus меняет статус (и дату отгрузки, если задана) под одной блокировкой.
func (r *orderRepositoryInMemory) UpdateStatus(_ context.Context, change domain.StatusChange, check func(domain.OrderState) error) (domain.OrderState, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.availableLocked(); err != nil {
		return domain.OrderState{}, err
	}

	idx := -1
	for i := range s.orders {
		if s.orders[i].id == change.OrderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.OrderState{}, domain.ErrOrderNotFound
	}

	row := &s.orders[idx]
	state := domain.OrderState{ID: row.id, OrderDate: row.orderDate, Status: row.status}
	if check != nil {
		if err := check(state); err != nil {
			return state, err
		}
	}

	now := s.now()
	msg, err := domain.OrderStatusChangedMessage(state, change, now)
	if err != nil {
		return state, domain.NewStorageError("update order status", err)
	}

	row.status = change.Status
	if change.ShipDate != nil {
		row.shipDate = cloneTime(change.ShipDate)
	}
	s.enqueueLocked(msg, now)

	return state, nil
}

// List возвращает заказы с именами покупателя, способа оплаты и канала, новые первыми.
func (r *orderRepositoryInMemory) List(context.Context) ([]domain.OrderSummary, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}

	result := make([]domain.OrderSummary, 0, len(s.orders))
	for _, row := range s.ordersNewestFirstLocked() {
		customer, _ := s.customerByID(row.customerID)
		payment, _ := s.paymentMethodName(row.paymentMethodID)
		channel, _ := s.channelName(row.channelID)

		result = append(result, domain.OrderSummary{
			ID:                row.id,
			OrderDate:         row.orderDate,
			ShipDate:          cloneTime(row.shipDate),
			Status:            row.status,
			TotalAmount:       row.totalAmount,
			CustomerFirstName: customer.FirstName,
			CustomerLastName:  customer.LastName,
			PaymentMethod:     payment,
			Channel:           channel,
		})
	}
	return result, nil
}

// Get возвращает заказ с позициями в порядке вставки.
func (r *orderRepositoryInMemory) Get(_ context.Context, orderID int64) (domain.OrderDetails, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return domain.OrderDetails{}, err
	}

	for _, row := range s.orders {
		if row.id != orderID {
			continue
		}

		customer, _ := s.customerByID(row.customerID)
		payment, _ := s.paymentMethodName(row.paymentMethodID)
		channel, _ := s.channelName(row.channelID)

		details := domain.OrderDetails{
			ID:                row.id,
			OrderDate:         row.orderDate,
			TotalAmount:       row.totalAmount,
			Status:            row.status,
			CustomerFirstName: customer.FirstName,
			CustomerLastName:  customer.LastName,
			CustomerEmail:     customer.Email,
			PaymentMethod:     payment,
			Channel:           channel,
			ShipDate:          cloneTime(row.shipDate),
			ShippingAddress:   row.shippingAddress,
			Items:             []domain.OrderItem{},
		}
		for _, item := range s.items {
			if item.orderID == orderID {
				details.Items = append(details.Items, item.item)
			}
		}
		return details, nil
	}

	return domain.OrderDetails{}, domain.ErrOrderNotFound
}

// ordersNewestFirstLocked возвращает копию заказов по убыванию order_date (затем id).
func (s *Store) ordersNewestFirstLocked() []orderRow {
	rows := make([]orderRow, len(s.orders))
	copy(rows, s.orders)
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].orderDate.Equal(rows[j].orderDate) {
			return rows[i].orderDate.After(rows[j].orderDate)
		}
		return rows[i].id > rows[j].id
	})
	return rows
}

// orderTx копит вставки и применяет их к Store целиком при Commit.
type orderTx struct {
	store *Store
	done  bool

	order  *orderRow
	items  []itemRow
	events []domain.OutboxMessage
}

func (tx *orderTx) InsertOrder(_ context.Context, order domain.NewOrder) (int64, error) {
	if tx.done {
		return 0, sql.ErrTxDone
	}
	if tx.order != nil {
		return 0, domain.NewStorageError("insert order", errors.New("order already inserted in this transaction"))
	}

	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.availableLocked(); err != nil {
		return 0, err
	}
	if _, ok := s.customerByID(order.CustomerID); !ok {
		return 0, constraintViolation("insert order", "customer %d does not exist", order.CustomerID)
	}
	if _, ok := s.paymentMethodName(order.PaymentMethodID); !ok {
		return 0, constraintViolation("insert order", "payment method %d does not exist", order.PaymentMethodID)
	}
	if _, ok := s.channelName(order.ChannelID); !ok {
		return 0, constraintViolation("insert order", "channel %d does not exist", order.ChannelID)
	}

	// Как у последовательности в БД, номер не возвращается при откате.
	s.nextOrderID++
	tx.order = &orderRow{
		id:              s.nextOrderID,
		customerID:      order.CustomerID,
		paymentMethodID: order.PaymentMethodID,
		channelID:       order.ChannelID,
		orderDate:       s.now(),
		status:          domain.OrderStatusPending,
		totalAmount:     order.TotalAmount,
		shippingAddress: order.ShippingAddress,
	}
	return tx.order.id, nil
}

func (tx *orderTx) InsertItem(_ context.Context, orderID int64, item domain.OrderItem) error {
	if tx.done {
		return sql.ErrTxDone
	}
	if tx.order == nil || tx.order.id != orderID {
		return constraintViolation("insert order item", "order %d does not exist", orderID)
	}
	if item.Quantity < domain.MinItemQuantity || item.Quantity > domain.MaxItemQuantity {
		return constraintViolation("insert order item", "quantity %d out of range", item.Quantity)
	}

	tx.items = append(tx.items, itemRow{orderID: orderID, item: item})
	return nil
}

func (tx *orderTx) Enqueue(_ context.Context, msg domain.OutboxMessage) error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.events = append(tx.events, msg)
	return nil
}

func (tx *orderTx) Commit() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.done = true

	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.availableLocked(); err != nil {
		return err
	}
	if tx.order == nil {
		return nil
	}

	now := s.now()
	s.orders = append(s.orders, *tx.order)
	s.items = append(s.items, tx.items...)
	for _, msg := range tx.events {
		s.enqueueLocked(msg, now)
	}
	return nil
}

func (tx *orderTx) Rollback() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.done = true
	tx.order = nil
	tx.items = nil
	tx.events = nil
	return nil
}

func constraintViolation(op, format string, args ...any) error {
	return domain.NewStorageError(op, fmt.Errorf("Database constraint violation: "+format, args...))
}

var (
	_ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
	_ domain.OrderTx         = (*orderTx)(nil)
)
