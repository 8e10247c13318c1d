package backoffice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/validation"
)

// OrderItemInput содержит позицию заказа в том виде, в котором её передал клиент.
type OrderItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   string
}

// CreateOrderInput содержит заголовок заказа и упорядоченный список позиций.
// TotalAmount сохраняется как есть и не пересчитывается из позиций.
type CreateOrderInput struct {
	CustomerID      int64
	PaymentMethodID int64
	ChannelID       int64
	TotalAmount     string
	ShippingAddress string
	Items           []OrderItemInput
}

// CreateOrder вставляет заголовок и позиции в одной транзакции.
// Первая невалидная позиция откатывает всю транзакцию вместе с заголовком.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (res Result, err error) {
	start := time.Now()
	defer func() { s.observe("create_order", start, err) }()

	address := strings.TrimSpace(in.ShippingAddress)
	if address == "" {
		return Result{}, domain.NewValidationError("shipping_address", "Please enter shipping address")
	}
	if len(in.Items) == 0 {
		return Result{}, domain.NewValidationError("items", "Please add at least one item")
	}

	total, err := validation.Amount(in.TotalAmount)
	if err != nil {
		return Result{}, err
	}
	header := domain.NewOrder{
		CustomerID:      in.CustomerID,
		PaymentMethodID: in.PaymentMethodID,
		ChannelID:       in.ChannelID,
		TotalAmount:     total,
		ShippingAddress: address,
	}

	tx, err := s.orders.Begin(ctx)
	if err != nil {
		return Result{}, err
	}

	orderID, items, err := s.insertOrder(ctx, tx, header, in.Items)
	if err != nil {
		s.rollback(tx, orderID)
		return Result{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("order commit failed")
		return Result{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated(len(items))
	}
	s.logger.WithFields(log.Fields{
		"order_id":    orderID,
		"customer_id": header.CustomerID,
		"items":       len(items),
		"total":       total.String(),
	}).Info("order created")

	return Result{ID: orderID, Message: fmt.Sprintf("Order created successfully! Order ID: %d", orderID)}, nil
}

// insertOrder выполняет вставки внутри открытой транзакции. orderID возвращается
// и при ошибке, чтобы откат можно было залогировать.
func (s *Service) insertOrder(ctx context.Context, tx domain.OrderTx, header domain.NewOrder, inputs []OrderItemInput) (int64, []domain.OrderItem, error) {
	orderID, err := tx.InsertOrder(ctx, header)
	if err != nil {
		return 0, nil, err
	}

	items := make([]domain.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if err := validation.CheckQuantity(in.Quantity); err != nil {
			return orderID, nil, err
		}
		price, err := validation.Amount(in.UnitPrice)
		if err != nil {
			return orderID, nil, err
		}

		item := domain.NewOrderItem(in.ProductName, in.Quantity, price)
		if err := tx.InsertItem(ctx, orderID, item); err != nil {
			return orderID, nil, err
		}
		items = append(items, item)
	}

	msg, err := domain.OrderCreatedMessage(orderID, header, items)
	if err != nil {
		return orderID, nil, domain.NewStorageError("enqueue order.created", err)
	}
	if err := tx.Enqueue(ctx, msg); err != nil {
		return orderID, nil, err
	}

	return orderID, items, nil
}

func (s *Service) rollback(tx domain.OrderTx, orderID int64) {
	if s.metrics != nil {
		s.metrics.RecordOrderRollback()
	}
	if err := tx.Rollback(); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("order rollback failed")
		return
	}
	s.logger.WithField("order_id", orderID).Debug("order transaction rolled back")
}

// UpdateOrderStatus меняет статус заказа и, для Shipped/Delivered, дату отгрузки.
// Статус и дата отгрузки проверяются после чтения заказа; при отказе строка не меняется.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, status string, shipDate *time.Time) (res Result, err error) {
	start := time.Now()
	defer func() { s.observe("update_order_status", start, err) }()

	newStatus := domain.OrderStatus(strings.TrimSpace(status))
	change := domain.StatusChange{OrderID: orderID, Status: newStatus, ShipDate: shipDate}
	// Проверки выполняются после чтения заказа: несуществующий заказ всегда даёт not found.
	prev, err := s.orders.UpdateStatus(ctx, change, func(state domain.OrderState) error {
		if !newStatus.Valid() {
			return domain.NewValidationError("status", fmt.Sprintf("Invalid order status '%s'", status))
		}
		if shipDate != nil && !newStatus.AllowsShipDate() {
			return domain.NewValidationError("ship_date", "Ship date can only be set when status is Shipped or Delivered")
		}
		return validation.ShipDate(state.OrderDate, shipDate)
	})
	if err != nil {
		return Result{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordStatusChange(string(newStatus))
	}
	s.logger.WithFields(log.Fields{
		"order_id":        orderID,
		"previous_status": prev.Status,
		"status":          newStatus,
	}).Info("order status updated")

	return Result{ID: orderID, Message: fmt.Sprintf("Order #%d updated to '%s'", orderID, newStatus)}, nil
}

// Orders возвращает заказы с именами справочников, новые первыми.
func (s *Service) Orders(ctx context.Context) (list []domain.OrderSummary, err error) {
	start := time.Now()
	defer func() { s.observe("list_orders", start, err) }()

	return s.orders.List(ctx)
}

// Order возвращает заказ с позициями.
func (s *Service) Order(ctx context.Context, orderID int64) (details domain.OrderDetails, err error) {
	start := time.Now()
	defer func() { s.observe("get_order", start, err) }()

	details, err = s.orders.Get(ctx, orderID)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return domain.OrderDetails{}, fmt.Errorf("order #%d: %w", orderID, domain.ErrOrderNotFound)
	}
	return details, err
}
