package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

// Begin берёт отдельную сессию и открывает на ней транзакцию.
// Сессия возвращается в пул при Commit или Rollback.
func (r *orderRepository) Begin(ctx context.Context) (domain.OrderTx, error) {
	txCtx, cancel := context.WithTimeout(ctx, txTimeout)

	conn, err := r.store.session(txCtx)
	if err != nil {
		cancel()
		return nil, err
	}

	tx, err := conn.BeginTx(txCtx, nil)
	if err != nil {
		_ = conn.Close()
		cancel()
		return nil, classify("begin tx", "orders", err)
	}

	return &orderTx{ctx: txCtx, cancel: cancel, conn: conn, tx: tx}, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, change domain.StatusChange, check func(domain.OrderState) error) (state domain.OrderState, err error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return domain.OrderState{}, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return domain.OrderState{}, classify("begin tx", "orders", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT order_id, order_date, order_status
		FROM orders
		WHERE order_id = $1
		FOR UPDATE
	`, change.OrderID).Scan(&state.ID, &state.OrderDate, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderState{}, domain.ErrOrderNotFound
		}
		return domain.OrderState{}, classify("select order", "orders", err)
	}
	state.Status = domain.OrderStatus(status)

	if check != nil {
		if err = check(state); err != nil {
			return state, err
		}
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET order_status = $2,
		    ship_date = COALESCE($3, ship_date)
		WHERE order_id = $1
	`, change.OrderID, string(change.Status), change.ShipDate); err != nil {
		return state, classify("update order status", "orders", err)
	}

	msg, err := domain.OrderStatusChangedMessage(state, change, time.Now())
	if err != nil {
		return state, domain.NewStorageError("update order status", err)
	}
	if err = insertOutboxMessage(ctx, tx, msg); err != nil {
		return state, err
	}

	if err = tx.Commit(); err != nil {
		return state, classify("commit update order status", "orders", err)
	}
	return state, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.OrderSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT o.order_id, o.order_date, o.ship_date, o.order_status, o.total_amount,
		       c.first_name, c.last_name, pm.method_name, ch.channel_name
		FROM orders o
		JOIN customers c ON c.customer_id = o.customer_id
		JOIN payment_methods pm ON pm.payment_method_id = o.payment_method_id
		JOIN channels ch ON ch.channel_id = o.channel_id
		ORDER BY o.order_date DESC, o.order_id DESC
	`)
	if err != nil {
		return nil, classify("list orders", "orders", err)
	}
	defer rows.Close()

	result := make([]domain.OrderSummary, 0)
	for rows.Next() {
		var (
			o        domain.OrderSummary
			status   string
			shipDate sql.NullTime
		)
		if err := rows.Scan(
			&o.ID, &o.OrderDate, &shipDate, &status, &o.TotalAmount,
			&o.CustomerFirstName, &o.CustomerLastName, &o.PaymentMethod, &o.Channel,
		); err != nil {
			return nil, classify("scan order row", "orders", err)
		}
		o.Status = domain.OrderStatus(status)
		o.ShipDate = nullTimePtr(shipDate)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate order rows", "orders", err)
	}
	return result, nil
}

func (r *orderRepository) Get(ctx context.Context, orderID int64) (domain.OrderDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return domain.OrderDetails{}, err
	}
	defer conn.Close()

	var (
		order    domain.OrderDetails
		status   string
		shipDate sql.NullTime
	)
	err = conn.QueryRowContext(ctx, `
		SELECT o.order_id, o.order_date, o.total_amount, o.order_status,
		       c.first_name, c.last_name, c.email, pm.method_name, ch.channel_name,
		       o.ship_date, o.shipping_address
		FROM orders o
		JOIN customers c ON c.customer_id = o.customer_id
		JOIN payment_methods pm ON pm.payment_method_id = o.payment_method_id
		JOIN channels ch ON ch.channel_id = o.channel_id
		WHERE o.order_id = $1
	`, orderID).Scan(
		&order.ID, &order.OrderDate, &order.TotalAmount, &status,
		&order.CustomerFirstName, &order.CustomerLastName, &order.CustomerEmail,
		&order.PaymentMethod, &order.Channel, &shipDate, &order.ShippingAddress,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderDetails{}, domain.ErrOrderNotFound
		}
		return domain.OrderDetails{}, classify("select order", "orders", err)
	}
	order.Status = domain.OrderStatus(status)
	order.ShipDate = nullTimePtr(shipDate)

	items, err := loadItems(ctx, conn, order.ID)
	if err != nil {
		return domain.OrderDetails{}, err
	}
	order.Items = items

	return order, nil
}

func loadItems(ctx context.Context, conn *sql.Conn, orderID int64) ([]domain.OrderItem, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT product_name, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY order_item_id
	`, orderID)
	if err != nil {
		return nil, classify("load order items", "order_items", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductName, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, classify("scan order item", "order_items", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate order items", "order_items", err)
	}
	return items, nil
}

var errTxFinished = fmt.Errorf("order transaction: %w", sql.ErrTxDone)

// orderTx держит сессию и транзакцию до Commit или Rollback.
type orderTx struct {
	ctx    context.Context
	cancel context.CancelFunc
	conn   *sql.Conn
	tx     *sql.Tx
	done   bool
}

func (t *orderTx) InsertOrder(ctx context.Context, order domain.NewOrder) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(t.bind(ctx), `
		INSERT INTO orders (
			customer_id, payment_method_id, channel_id, order_status, total_amount, shipping_address
		) VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING order_id
	`,
		order.CustomerID, order.PaymentMethodID, order.ChannelID,
		string(domain.OrderStatusPending), order.TotalAmount, order.ShippingAddress,
	).Scan(&id)
	if err != nil {
		return 0, classify("insert order", "orders", err)
	}
	return id, nil
}

func (t *orderTx) InsertItem(ctx context.Context, orderID int64, item domain.OrderItem) error {
	if _, err := t.tx.ExecContext(t.bind(ctx), `
		INSERT INTO order_items (
			order_id, product_name, quantity, unit_price, subtotal
		) VALUES ($1,$2,$3,$4,$5)
	`,
		orderID, item.ProductName, item.Quantity, item.UnitPrice, item.Subtotal,
	); err != nil {
		return classify("insert order item", "order_items", err)
	}
	return nil
}

func (t *orderTx) Enqueue(ctx context.Context, msg domain.OutboxMessage) error {
	return insertOutboxMessage(t.bind(ctx), t.tx, msg)
}

func (t *orderTx) Commit() error {
	if t.done {
		return errTxFinished
	}
	defer t.release()

	if err := t.tx.Commit(); err != nil {
		return classify("commit create order", "orders", err)
	}
	return nil
}

func (t *orderTx) Rollback() error {
	if t.done {
		return errTxFinished
	}
	defer t.release()

	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return classify("rollback create order", "orders", err)
	}
	return nil
}

// bind использует контекст транзакции, если вызывающий не задал более строгий дедлайн.
func (t *orderTx) bind(ctx context.Context) context.Context {
	if ctx == nil {
		return t.ctx
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx
	}
	return t.ctx
}

func (t *orderTx) release() {
	t.done = true
	_ = t.conn.Close()
	t.cancel()
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	ts := v.Time
	return &ts
}

var (
	_ domain.OrderRepository = (*orderRepository)(nil)
	_ domain.OrderTx         = (*orderTx)(nil)
)
