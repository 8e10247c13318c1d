package backoffice

import (
	"context"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// PaymentMethods возвращает активные способы оплаты.
func (s *Service) PaymentMethods(ctx context.Context) (list []domain.PaymentMethod, err error) {
	start := time.Now()
	defer func() { s.observe("list_payment_methods", start, err) }()

	return s.catalog.PaymentMethods(ctx)
}

// Channels возвращает каналы продаж.
func (s *Service) Channels(ctx context.Context) (list []domain.Channel, err error) {
	start := time.Now()
	defer func() { s.observe("list_channels", start, err) }()

	return s.catalog.Channels(ctx)
}

// Categories возвращает активные категории по алфавиту.
func (s *Service) Categories(ctx context.Context) (list []domain.Category, err error) {
	start := time.Now()
	defer func() { s.observe("list_categories", start, err) }()

	return s.catalog.Categories(ctx)
}

// Products возвращает активные товары категории по алфавиту.
func (s *Service) Products(ctx context.Context, categoryID int64) (list []domain.Product, err error) {
	start := time.Now()
	defer func() { s.observe("list_products", start, err) }()

	return s.catalog.Products(ctx, categoryID)
}

// DashboardStats возвращает сводку для дашборда.
func (s *Service) DashboardStats(ctx context.Context) (stats domain.DashboardStats, err error) {
	start := time.Now()
	defer func() { s.observe("dashboard_stats", start, err) }()

	return s.reports.DashboardStats(ctx)
}

// RevenueByDay группирует по дням limit последних заказов. При limit <= 0 берётся окно по умолчанию.
func (s *Service) RevenueByDay(ctx context.Context, limit int) (list []domain.DailyRevenue, err error) {
	start := time.Now()
	defer func() { s.observe("revenue_by_day", start, err) }()

	return s.reports.RevenueByDay(ctx, s.window(limit))
}

// OrdersByDay считает по дням limit последних заказов. При limit <= 0 берётся окно по умолчанию.
func (s *Service) OrdersByDay(ctx context.Context, limit int) (list []domain.DailyOrderCount, err error) {
	start := time.Now()
	defer func() { s.observe("orders_by_day", start, err) }()

	return s.reports.OrdersByDay(ctx, s.window(limit))
}

// LatestOrders возвращает страницу таблицы последних заказов.
func (s *Service) LatestOrders(ctx context.Context, limit, offset int) (list []domain.LatestOrderRow, err error) {
	start := time.Now()
	defer func() { s.observe("latest_orders", start, err) }()

	if offset < 0 {
		offset = 0
	}
	return s.reports.LatestOrders(ctx, s.window(limit), offset)
}

func (s *Service) window(limit int) int {
	if limit <= 0 {
		return s.reportWindow
	}
	return limit
}
