package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает этап исполнения заказа.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses возвращает все статусы в порядке жизненного цикла.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// Valid сообщает, входит ли статус в фиксированный набор.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// AllowsShipDate сообщает, имеет ли смысл дата отгрузки для статуса.
func (s OrderStatus) AllowsShipDate() bool {
	return s == OrderStatusShipped || s == OrderStatusDelivered
}

// NewOrder описывает заголовок заказа перед вставкой. Сумма берётся от вызывающей стороны как есть.
type NewOrder struct {
	CustomerID      int64
	PaymentMethodID int64
	ChannelID       int64
	TotalAmount     decimal.Decimal
	ShippingAddress string
}

// OrderItem — позиция заказа. Название товара денормализовано и не ссылается на products.
type OrderItem struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewOrderItem строит позицию и считает подытог quantity × unit price.
func NewOrderItem(productName string, quantity int, unitPrice decimal.Decimal) OrderItem {
	return OrderItem{
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// OrderState — минимальное состояние заказа, нужное для смены статуса.
type OrderState struct {
	ID        int64
	OrderDate time.Time
	Status    OrderStatus
}

// OrderSummary — строка списка заказов с именами из связанных справочников.
type OrderSummary struct {
	ID                int64
	OrderDate         time.Time
	ShipDate          *time.Time
	Status            OrderStatus
	TotalAmount       decimal.Decimal
	CustomerFirstName string
	CustomerLastName  string
	PaymentMethod     string
	Channel           string
}

// OrderDetails — заказ целиком вместе с позициями.
type OrderDetails struct {
	ID                int64
	OrderDate         time.Time
	TotalAmount       decimal.Decimal
	Status            OrderStatus
	CustomerFirstName string
	CustomerLastName  string
	CustomerEmail     string
	PaymentMethod     string
	Channel           string
	ShipDate          *time.Time
	ShippingAddress   string
	Items             []OrderItem
}
