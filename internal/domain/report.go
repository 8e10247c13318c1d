package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StatusCount считает заказы в одном статусе.
type StatusCount struct {
	Status OrderStatus
	Count  int64
}

// DashboardStats — сводные показатели для дашборда.
type DashboardStats struct {
	TotalRevenue   decimal.Decimal
	TotalOrders    int64
	TotalCustomers int64
	AvgOrderValue  decimal.Decimal
	OrdersByStatus []StatusCount
}

// DailyRevenue — выручка за день (дата без времени, UTC).
type DailyRevenue struct {
	Date    time.Time
	Revenue decimal.Decimal
}

// DailyOrderCount — количество заказов за день (дата без времени, UTC).
type DailyOrderCount struct {
	Date  time.Time
	Count int64
}

// LatestOrderRow — строка таблицы последних заказов. Один заказ может дать
// несколько строк, если его позиции относятся к разным категориям.
type LatestOrderRow struct {
	OrderID       int64
	CustomerCode  string
	OrderDate     time.Time
	ShipDate      *time.Time
	Status        OrderStatus
	Category      string
	Channel       string
	TotalAmount   decimal.Decimal
	Discount      decimal.Decimal
	PaymentMethod string
}

// NoCategory подставляется, если название позиции не совпало ни с одним товаром.
const NoCategory = "N/A"

// CustomerCode форматирует ID покупателя для отчётов: cust-001, cust-042, cust-1234.
func CustomerCode(customerID int64) string {
	return fmt.Sprintf("cust-%03d", customerID)
}

// Day отбрасывает время, оставляя календарный день в UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AverageOrderValue делит выручку на число заказов с округлением до центов; 0 для пустого набора.
func AverageOrderValue(revenue decimal.Decimal, orders int64) decimal.Decimal {
	if orders <= 0 {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(orders), 2)
}
