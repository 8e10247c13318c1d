package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

func TestReportRepository_PostgresFlow(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewReportRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	customerID := createCustomerForIntegrationTest(t, store, "report@example.com")
	mixed := createOrderForIntegrationTest(t, store, customerID,
		domain.NewOrderItem("Laptop Pro 14", 1, decimal.RequireFromString("899.00")),
		domain.NewOrderItem("Go in Practice", 1, decimal.RequireFromString("42.00")),
		domain.NewOrderItem("Mystery Box", 1, decimal.RequireFromString("1.00")),
	)
	single := createOrderForIntegrationTest(t, store, customerID,
		domain.NewOrderItem("Ceramic Mug", 2, decimal.RequireFromString("4.25")),
	)

	stats, err := repo.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("dashboard stats: %v", err)
	}
	if stats.TotalOrders != 2 || stats.TotalCustomers != 1 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if !stats.TotalRevenue.Equal(decimal.RequireFromString("950.50")) {
		t.Fatalf("unexpected revenue %s", stats.TotalRevenue)
	}
	if !stats.AvgOrderValue.Equal(decimal.RequireFromString("475.25")) {
		t.Fatalf("unexpected average %s", stats.AvgOrderValue)
	}
	if len(stats.OrdersByStatus) != 1 || stats.OrdersByStatus[0].Count != 2 {
		t.Fatalf("unexpected status groups: %+v", stats.OrdersByStatus)
	}

	revenue, err := repo.RevenueByDay(ctx, 200)
	if err != nil {
		t.Fatalf("revenue by day: %v", err)
	}
	if len(revenue) != 1 || !revenue[0].Revenue.Equal(decimal.RequireFromString("950.50")) {
		t.Fatalf("unexpected revenue by day: %+v", revenue)
	}

	counts, err := repo.OrdersByDay(ctx, 1)
	if err != nil {
		t.Fatalf("orders by day: %v", err)
	}
	if len(counts) != 1 || counts[0].Count != 1 {
		t.Fatalf("window of one order must count one: %+v", counts)
	}

	rows, err := repo.LatestOrders(ctx, 10, 0)
	if err != nil {
		t.Fatalf("latest orders: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 1 row for single-category order and 3 for mixed, got %d", len(rows))
	}
	if rows[0].OrderID != single || rows[0].Category != "Home & Kitchen" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	got := []string{rows[1].Category, rows[2].Category, rows[3].Category}
	want := []string{"Books", "Electronics", domain.NoCategory}
	for i := range want {
		if rows[i+1].OrderID != mixed || got[i] != want[i] {
			t.Fatalf("unexpected mixed rows: %v", got)
		}
	}
	if rows[0].CustomerCode != "cust-001" || !rows[0].Discount.IsZero() {
		t.Fatalf("unexpected code/discount: %+v", rows[0])
	}

	page, err := repo.LatestOrders(ctx, 2, 3)
	if err != nil {
		t.Fatalf("latest orders page: %v", err)
	}
	if len(page) != 1 || page[0].Category != domain.NoCategory {
		t.Fatalf("unexpected page: %+v", page)
	}
}
