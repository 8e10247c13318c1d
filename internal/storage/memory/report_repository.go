package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type reportRepositoryInMemory struct {
	store *Store
}

// NewReportRepository возвращает in-memory отчёты.
func NewReportRepository(store *Store) domain.ReportRepository {
	return &reportRepositoryInMemory{store: store}
}

func (r *reportRepositoryInMemory) DashboardStats(context.Context) (domain.DashboardStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return domain.DashboardStats{}, err
	}

	stats := domain.DashboardStats{
		TotalRevenue:   decimal.Zero,
		TotalOrders:    int64(len(s.orders)),
		TotalCustomers: int64(len(s.customers)),
		AvgOrderValue:  decimal.Zero,
		OrdersByStatus: []domain.StatusCount{},
	}

	byStatus := make(map[domain.OrderStatus]int64)
	for _, row := range s.orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(row.totalAmount)
		byStatus[row.status]++
	}
	stats.AvgOrderValue = domain.AverageOrderValue(stats.TotalRevenue, stats.TotalOrders)

	for status, count := range byStatus {
		stats.OrdersByStatus = append(stats.OrdersByStatus, domain.StatusCount{Status: status, Count: count})
	}
	sort.Slice(stats.OrdersByStatus, func(i, j int) bool {
		return stats.OrdersByStatus[i].Status < stats.OrdersByStatus[j].Status
	})

	return stats, nil
}

func (r *reportRepositoryInMemory) RevenueByDay(_ context.Context, limit int) ([]domain.DailyRevenue, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}

	days := make(map[time.Time]decimal.Decimal)
	for _, row := range s.latestOrdersLocked(limit) {
		day := domain.Day(row.orderDate)
		days[day] = days[day].Add(row.totalAmount)
	}

	result := make([]domain.DailyRevenue, 0, len(days))
	for day, revenue := range days {
		result = append(result, domain.DailyRevenue{Date: day, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *reportRepositoryInMemory) OrdersByDay(_ context.Context, limit int) ([]domain.DailyOrderCount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}

	days := make(map[time.Time]int64)
	for _, row := range s.latestOrdersLocked(limit) {
		days[domain.Day(row.orderDate)]++
	}

	result := make([]domain.DailyOrderCount, 0, len(days))
	for day, count := range days {
		result = append(result, domain.DailyOrderCount{Date: day, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// LatestOrders строит по строке на пару (заказ, категория позиции). Позиция без
// совпадающего товара или заказ без позиций дают категорию N/A.
func (r *reportRepositoryInMemory) LatestOrders(_ context.Context, limit, offset int) ([]domain.LatestOrderRow, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, err
	}

	rows := make([]domain.LatestOrderRow, 0)
	for _, order := range s.ordersNewestFirstLocked() {
		payment, _ := s.paymentMethodName(order.paymentMethodID)
		channel, _ := s.channelName(order.channelID)
		discount := decimal.Zero
		if order.discount != nil {
			discount = *order.discount
		}

		for _, category := range s.orderCategoriesLocked(order.id) {
			rows = append(rows, domain.LatestOrderRow{
				OrderID:       order.id,
				CustomerCode:  domain.CustomerCode(order.customerID),
				OrderDate:     order.orderDate,
				ShipDate:      cloneTime(order.shipDate),
				Status:        order.status,
				Category:      category,
				Channel:       channel,
				TotalAmount:   order.totalAmount,
				Discount:      discount,
				PaymentMethod: payment,
			})
		}
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) || limit <= 0 {
		return []domain.LatestOrderRow{}, nil
	}
	rows = rows[offset:]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// latestOrdersLocked возвращает limit самых свежих заказов.
func (s *Store) latestOrdersLocked(limit int) []orderRow {
	if limit <= 0 {
		return nil
	}
	rows := s.ordersNewestFirstLocked()
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// orderCategoriesLocked возвращает отсортированный набор различных категорий позиций заказа.
func (s *Store) orderCategoriesLocked(orderID int64) []string {
	seen := make(map[string]struct{})
	hasItems := false

	for _, item := range s.items {
		if item.orderID != orderID {
			continue
		}
		hasItems = true

		matched := false
		for _, p := range s.products {
			if p.Name != item.item.ProductName {
				continue
			}
			matched = true
			name, ok := s.categoryName(p.CategoryID)
			if !ok {
				name = domain.NoCategory
			}
			seen[name] = struct{}{}
		}
		if !matched {
			seen[domain.NoCategory] = struct{}{}
		}
	}
	if !hasItems {
		return []string{domain.NoCategory}
	}

	result := make([]string, 0, len(seen))
	for name := range seen {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

var _ domain.ReportRepository = (*reportRepositoryInMemory)(nil)
