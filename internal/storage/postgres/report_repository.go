package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type reportRepository struct {
	store *Store
}

// NewReportRepository создаёт PostgreSQL-реализацию отчётов.
func NewReportRepository(store *Store) domain.ReportRepository {
	return &reportRepository{store: store}
}

func (r *reportRepository) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	defer conn.Close()

	stats := domain.DashboardStats{OrdersByStatus: []domain.StatusCount{}}
	if err := conn.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
	`).Scan(&stats.TotalRevenue, &stats.TotalOrders); err != nil {
		return domain.DashboardStats{}, classify("order totals", "orders", err)
	}
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&stats.TotalCustomers); err != nil {
		return domain.DashboardStats{}, classify("customer totals", "customers", err)
	}
	stats.AvgOrderValue = domain.AverageOrderValue(stats.TotalRevenue, stats.TotalOrders)

	rows, err := conn.QueryContext(ctx, `
		SELECT order_status, COUNT(*)
		FROM orders
		GROUP BY order_status
		ORDER BY order_status
	`)
	if err != nil {
		return domain.DashboardStats{}, classify("orders by status", "orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return domain.DashboardStats{}, classify("scan status count", "orders", err)
		}
		stats.OrdersByStatus = append(stats.OrdersByStatus, domain.StatusCount{Status: domain.OrderStatus(status), Count: count})
	}
	if err := rows.Err(); err != nil {
		return domain.DashboardStats{}, classify("iterate status counts", "orders", err)
	}
	return stats, nil
}

// recentOrdersByDay сначала отбирает limit самых свежих заказов и только потом группирует.
const recentOrdersByDay = `
	SELECT (recent.order_date AT TIME ZONE 'UTC')::date AS day, %s
	FROM (
		SELECT order_date, total_amount
		FROM orders
		ORDER BY order_date DESC, order_id DESC
		LIMIT $1
	) recent
	GROUP BY day
	ORDER BY day
`

func (r *reportRepository) RevenueByDay(ctx context.Context, limit int) ([]domain.DailyRevenue, error) {
	result := make([]domain.DailyRevenue, 0)
	if limit <= 0 {
		return result, nil
	}

	err := r.queryByDay(ctx, "SUM(recent.total_amount)", limit, "revenue by day", func(rows *sql.Rows) error {
		var (
			day     time.Time
			revenue decimal.Decimal
		)
		if err := rows.Scan(&day, &revenue); err != nil {
			return err
		}
		result = append(result, domain.DailyRevenue{Date: domain.Day(day), Revenue: revenue})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reportRepository) OrdersByDay(ctx context.Context, limit int) ([]domain.DailyOrderCount, error) {
	result := make([]domain.DailyOrderCount, 0)
	if limit <= 0 {
		return result, nil
	}

	err := r.queryByDay(ctx, "COUNT(*)", limit, "orders by day", func(rows *sql.Rows) error {
		var (
			day   time.Time
			count int64
		)
		if err := rows.Scan(&day, &count); err != nil {
			return err
		}
		result = append(result, domain.DailyOrderCount{Date: domain.Day(day), Count: count})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reportRepository) queryByDay(ctx context.Context, aggregate string, limit int, op string, scan func(*sql.Rows) error) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, fmt.Sprintf(recentOrdersByDay, aggregate), limit)
	if err != nil {
		return classify(op, "orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return classify(op, "orders", err)
		}
	}
	if err := rows.Err(); err != nil {
		return classify(op, "orders", err)
	}
	return nil
}

// LatestOrders раскладывает заказ на строки по различным категориям его позиций.
// Позиция без совпадающего товара и заказ без позиций дают категорию N/A.
func (r *reportRepository) LatestOrders(ctx context.Context, limit, offset int) ([]domain.LatestOrderRow, error) {
	result := make([]domain.LatestOrderRow, 0)
	if limit <= 0 {
		return result, nil
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT o.order_id, o.customer_id, o.order_date, o.ship_date, o.order_status,
		       cat.category, ch.channel_name, o.total_amount, COALESCE(o.discount, 0), pm.method_name
		FROM orders o
		JOIN channels ch ON ch.channel_id = o.channel_id
		JOIN payment_methods pm ON pm.payment_method_id = o.payment_method_id
		CROSS JOIN LATERAL (
			SELECT COALESCE(pc.category_name::text, $3::text) AS category
			FROM order_items oi
			LEFT JOIN products p ON p.product_name = oi.product_name
			LEFT JOIN product_categories pc ON pc.category_id = p.category_id
			WHERE oi.order_id = o.order_id
			UNION
			SELECT $3::text
			WHERE NOT EXISTS (SELECT 1 FROM order_items oi2 WHERE oi2.order_id = o.order_id)
		) cat
		ORDER BY o.order_date DESC, o.order_id DESC, cat.category
		LIMIT $1 OFFSET $2
	`, limit, offset, domain.NoCategory)
	if err != nil {
		return nil, classify("latest orders", "orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row        domain.LatestOrderRow
			customerID int64
			shipDate   sql.NullTime
			status     string
		)
		if err := rows.Scan(
			&row.OrderID, &customerID, &row.OrderDate, &shipDate, &status,
			&row.Category, &row.Channel, &row.TotalAmount, &row.Discount, &row.PaymentMethod,
		); err != nil {
			return nil, classify("scan latest order", "orders", err)
		}
		row.CustomerCode = domain.CustomerCode(customerID)
		row.ShipDate = nullTimePtr(shipDate)
		row.Status = domain.OrderStatus(status)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate latest orders", "orders", err)
	}
	return result, nil
}

var _ domain.ReportRepository = (*reportRepository)(nil)
