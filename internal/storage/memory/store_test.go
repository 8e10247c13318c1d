package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/memory"
)

type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

func newSeededStore(t *testing.T) *memory.Store {
	t.Helper()
	clock := &stepClock{now: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), step: time.Minute}
	store := memory.NewStore(memory.WithClock(clock.Now))
	memory.SeedReferenceData(store)
	return store
}

func sampleCustomer(email string) domain.NewCustomer {
	return domain.NewCustomer{
		FirstName:  "Sokha",
		LastName:   "Chan",
		Email:      email,
		Phone:      "012345678",
		Address:    "12 Street 310",
		City:       "Phnom Penh",
		PostalCode: "120101",
	}
}

func TestCustomerRepository_CreateListAndDuplicate(t *testing.T) {
	store := newSeededStore(t)
	repo := memory.NewCustomerRepository(store)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	first, err := repo.Create(ctx, sampleCustomer("a@example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := repo.Create(ctx, sampleCustomer("b@example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first != 1 || second != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first, second)
	}

	_, err = repo.Create(ctx, sampleCustomer("a@example.com"))
	var dup *domain.DuplicateEmailError
	if !errors.As(err, &dup) || dup.Email != "a@example.com" {
		t.Fatalf("expected DuplicateEmailError, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != second || list[1].ID != first {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if got := store.PendingEvents(); len(got) != 2 || got[0] != domain.EventCustomerRegistered {
		t.Fatalf("expected two customer.registered events, got %v", got)
	}
}

func TestOrderTx_CommitAndRollback(t *testing.T) {
	store := newSeededStore(t)
	customers := memory.NewCustomerRepository(store)
	orders := memory.NewOrderRepository(store)
	ctx := context.Background()

	customerID, err := customers.Create(ctx, sampleCustomer("tx@example.com"))
	if err != nil {
		t.Fatalf("Create customer failed: %v", err)
	}
	header := domain.NewOrder{
		CustomerID:      customerID,
		PaymentMethodID: 1,
		ChannelID:       1,
		TotalAmount:     decimal.RequireFromString("10.00"),
		ShippingAddress: "Street 1",
	}

	tx, err := orders.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	rolledBackID, err := tx.InsertOrder(ctx, header)
	if err != nil {
		t.Fatalf("InsertOrder failed: %v", err)
	}
	if err := tx.InsertItem(ctx, rolledBackID, domain.NewOrderItem("Ceramic Mug", 2, decimal.RequireFromString("4.25"))); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	if _, err := orders.Get(ctx, rolledBackID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("rolled back order must not exist, got %v", err)
	}

	tx, err = orders.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	orderID, err := tx.InsertOrder(ctx, header)
	if err != nil {
		t.Fatalf("InsertOrder failed: %v", err)
	}
	if orderID == rolledBackID {
		t.Fatalf("order id must not be reused after rollback")
	}
	if err := tx.InsertItem(ctx, orderID, domain.NewOrderItem("Ceramic Mug", 2, decimal.RequireFromString("4.25"))); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if err := tx.Rollback(); err == nil {
		t.Fatal("rollback after commit must report a finished transaction")
	}

	details, err := orders.Get(ctx, orderID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if details.Status != domain.OrderStatusPending || len(details.Items) != 1 {
		t.Fatalf("unexpected details: %+v", details)
	}
	if details.PaymentMethod != "Cash on Delivery" || details.Channel != "Website" || details.CustomerEmail != "tx@example.com" {
		t.Fatalf("unexpected joined names: %+v", details)
	}
	if !details.Items[0].Subtotal.Equal(decimal.RequireFromString("8.50")) {
		t.Fatalf("unexpected subtotal: %s", details.Items[0].Subtotal)
	}
}

func TestOrderTx_ForeignKeys(t *testing.T) {
	store := newSeededStore(t)
	orders := memory.NewOrderRepository(store)
	ctx := context.Background()

	tx, err := orders.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.InsertOrder(ctx, domain.NewOrder{CustomerID: 99, PaymentMethodID: 1, ChannelID: 1})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected storage error for unknown customer, got %v", err)
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()
	orderID := placeOrder(t, store, "status@example.com", "25.00", "Ceramic Mug")
	orders := memory.NewOrderRepository(store)

	rejected := errors.New("rejected")
	if _, err := orders.UpdateStatus(ctx, domain.StatusChange{OrderID: orderID, Status: domain.OrderStatusShipped}, func(domain.OrderState) error {
		return rejected
	}); !errors.Is(err, rejected) {
		t.Fatalf("expected check error, got %v", err)
	}
	details, _ := orders.Get(ctx, orderID)
	if details.Status != domain.OrderStatusPending {
		t.Fatalf("rejected change must leave the row untouched, got %s", details.Status)
	}

	ship := details.OrderDate.Add(time.Hour)
	prev, err := orders.UpdateStatus(ctx, domain.StatusChange{OrderID: orderID, Status: domain.OrderStatusShipped, ShipDate: &ship}, nil)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if prev.Status != domain.OrderStatusPending {
		t.Fatalf("expected previous status Pending, got %s", prev.Status)
	}

	if _, err := orders.UpdateStatus(ctx, domain.StatusChange{OrderID: orderID, Status: domain.OrderStatusDelivered}, nil); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	details, _ = orders.Get(ctx, orderID)
	if details.Status != domain.OrderStatusDelivered || details.ShipDate == nil || !details.ShipDate.Equal(ship) {
		t.Fatalf("expected Delivered with kept ship date, got %+v", details)
	}

	if _, err := orders.UpdateStatus(ctx, domain.StatusChange{OrderID: 404, Status: domain.OrderStatusShipped}, nil); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCatalogRepository_Ordering(t *testing.T) {
	store := newSeededStore(t)
	store.AddPaymentMethod("Retired Voucher", false)
	hidden := store.AddCategory("Archive", "inactive", false)
	store.AddProduct(domain.Product{CategoryID: 1, Name: "Old Phone", UnitPrice: decimal.NewFromInt(1)})

	catalog := memory.NewCatalogRepository(store)
	ctx := context.Background()

	methods, err := catalog.PaymentMethods(ctx)
	if err != nil {
		t.Fatalf("PaymentMethods failed: %v", err)
	}
	if len(methods) != 5 {
		t.Fatalf("expected only active payment methods, got %d", len(methods))
	}

	categories, err := catalog.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.ID == hidden {
			t.Fatal("inactive category must be hidden")
		}
		names = append(names, c.Name)
	}
	want := []string{"Books", "Clothing", "Electronics", "Home & Kitchen"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}

	products, err := catalog.Products(ctx, 1)
	if err != nil {
		t.Fatalf("Products failed: %v", err)
	}
	if len(products) != 3 || products[0].Name != "Laptop Pro 14" || products[2].Name != "Wireless Earbuds" {
		t.Fatalf("unexpected products: %+v", products)
	}

	none, err := catalog.Products(ctx, 404)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected empty product list, got %v, %v", none, err)
	}
}

func TestReportRepository_LatestOrdersAndStats(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()
	first := placeOrder(t, store, "r1@example.com", "100.00", "Ceramic Mug", "Go in Practice")
	second := placeOrder(t, store, "r2@example.com", "50.00", "Unlisted Gadget")
	reports := memory.NewReportRepository(store)

	rows, err := reports.LatestOrders(ctx, 10, 0)
	if err != nil {
		t.Fatalf("LatestOrders failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].OrderID != second || rows[0].Category != domain.NoCategory || rows[0].CustomerCode != "cust-002" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].OrderID != first || rows[1].Category != "Books" || rows[2].Category != "Home & Kitchen" {
		t.Fatalf("unexpected category rows: %+v", rows[1:])
	}
	if !rows[1].Discount.IsZero() {
		t.Fatalf("missing discount must read as 0, got %s", rows[1].Discount)
	}

	page, err := reports.LatestOrders(ctx, 1, 2)
	if err != nil || len(page) != 1 || page[0].Category != "Home & Kitchen" {
		t.Fatalf("unexpected page: %+v, %v", page, err)
	}

	stats, err := reports.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("DashboardStats failed: %v", err)
	}
	if stats.TotalOrders != 2 || stats.TotalCustomers != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if !stats.TotalRevenue.Equal(decimal.RequireFromString("150")) || !stats.AvgOrderValue.Equal(decimal.RequireFromString("75")) {
		t.Fatalf("unexpected revenue: %+v", stats)
	}
	if len(stats.OrdersByStatus) != 1 || stats.OrdersByStatus[0].Count != 2 {
		t.Fatalf("unexpected status groups: %+v", stats.OrdersByStatus)
	}
}

func TestStore_Unavailable(t *testing.T) {
	store := newSeededStore(t)
	store.SetUnavailable(errors.New("connection refused"))
	ctx := context.Background()

	if err := store.Ping(ctx); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := memory.NewCustomerRepository(store).List(ctx); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := memory.NewOrderRepository(store).Begin(ctx); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	store.SetUnavailable(nil)
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("expected store to recover, got %v", err)
	}
}

func placeOrder(t *testing.T, store *memory.Store, email, total string, products ...string) int64 {
	t.Helper()
	ctx := context.Background()

	customerID, err := memory.NewCustomerRepository(store).Create(ctx, sampleCustomer(email))
	if err != nil {
		t.Fatalf("Create customer failed: %v", err)
	}

	tx, err := memory.NewOrderRepository(store).Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	orderID, err := tx.InsertOrder(ctx, domain.NewOrder{
		CustomerID:      customerID,
		PaymentMethodID: 1,
		ChannelID:       1,
		TotalAmount:     decimal.RequireFromString(total),
		ShippingAddress: "Street 1",
	})
	if err != nil {
		t.Fatalf("InsertOrder failed: %v", err)
	}
	for _, name := range products {
		if err := tx.InsertItem(ctx, orderID, domain.NewOrderItem(name, 1, decimal.NewFromInt(1))); err != nil {
			t.Fatalf("InsertItem failed: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	return orderID
}
