package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Агрегаты и типы событий, которые пишутся в transactional outbox.
const (
	AggregateCustomer = "customer"
	AggregateOrder    = "order"

	EventCustomerRegistered = "customer.registered"
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

// CustomerRegistered — payload события регистрации покупателя.
type CustomerRegistered struct {
	CustomerID   int64     `json:"customer_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	City         string    `json:"city"`
	RegisteredAt time.Time `json:"registered_at"`
}

// OrderCreated — payload события создания заказа.
type OrderCreated struct {
	OrderID         int64              `json:"order_id"`
	CustomerID      int64              `json:"customer_id"`
	PaymentMethodID int64              `json:"payment_method_id"`
	ChannelID       int64              `json:"channel_id"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Items           []OrderCreatedItem `json:"items"`
}

// OrderCreatedItem — позиция в событии создания заказа.
type OrderCreatedItem struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderStatusChanged — payload события смены статуса.
type OrderStatusChanged struct {
	OrderID        int64       `json:"order_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	Status         OrderStatus `json:"status"`
	ShipDate       *time.Time  `json:"ship_date,omitempty"`
	ChangedAt      time.Time   `json:"changed_at"`
}

// NewOutboxMessage сериализует payload в JSON и заполняет служебные поля.
// ID проставляет репозиторий при вставке.
func NewOutboxMessage(aggregateType string, aggregateID int64, eventType string, payload any) (OutboxMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return OutboxMessage{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return OutboxMessage{
		AggregateType: aggregateType,
		AggregateID:   strconv.FormatInt(aggregateID, 10),
		EventType:     eventType,
		Payload:       data,
	}, nil
}

// CustomerRegisteredMessage строит событие customer.registered.
func CustomerRegisteredMessage(id int64, c NewCustomer, at time.Time) (OutboxMessage, error) {
	return NewOutboxMessage(AggregateCustomer, id, EventCustomerRegistered, CustomerRegistered{
		CustomerID:   id,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		City:         c.City,
		RegisteredAt: at.UTC(),
	})
}

// OrderCreatedMessage строит событие order.created.
func OrderCreatedMessage(id int64, order NewOrder, items []OrderItem) (OutboxMessage, error) {
	payload := OrderCreated{
		OrderID:         id,
		CustomerID:      order.CustomerID,
		PaymentMethodID: order.PaymentMethodID,
		ChannelID:       order.ChannelID,
		TotalAmount:     order.TotalAmount,
		Items:           make([]OrderCreatedItem, 0, len(items)),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, OrderCreatedItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return NewOutboxMessage(AggregateOrder, id, EventOrderCreated, payload)
}

// OrderStatusChangedMessage строит событие order.status_changed.
func OrderStatusChangedMessage(prev OrderState, change StatusChange, at time.Time) (OutboxMessage, error) {
	return NewOutboxMessage(AggregateOrder, prev.ID, EventOrderStatusChanged, OrderStatusChanged{
		OrderID:        prev.ID,
		PreviousStatus: prev.Status,
		Status:         change.Status,
		ShipDate:       change.ShipDate,
		ChangedAt:      at.UTC(),
	})
}
