package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/service/backoffice"
	grpcsvc "github.com/vladislavdragonenkov/backoffice/internal/service/grpc"
	"github.com/vladislavdragonenkov/backoffice/internal/service/outbox"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/memory"
)

// recordingPublisher запоминает опубликованные события вместо Kafka.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.OutboxMessage
}

func (p *recordingPublisher) Publish(_ context.Context, msg domain.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, msg)
	return nil
}

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType)
	}
	return types
}

// BackofficeLifecycleTestSuite проходит путь покупатель → заказ → отгрузка → отчёты → outbox.
type BackofficeLifecycleTestSuite struct {
	suite.Suite
	now       time.Time
	store     *memory.Store
	service   *grpcsvc.BackofficeService
	outboxRep domain.OutboxRepository
	publisher *recordingPublisher
	worker    *outbox.Worker
}

func (s *BackofficeLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel)
	logger := baseLogger.WithField("component", "integration-test")

	s.now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	s.store = memory.NewStore(memory.WithClock(func() time.Time { return s.now }))
	memory.SeedReferenceData(s.store)

	svc := backoffice.NewService(backoffice.Repositories{
		Customers: memory.NewCustomerRepository(s.store),
		Orders:    memory.NewOrderRepository(s.store),
		Catalog:   memory.NewCatalogRepository(s.store),
		Reports:   memory.NewReportRepository(s.store),
	}, backoffice.WithLogger(logger))
	s.service = grpcsvc.NewBackofficeService(svc, logger)

	s.outboxRep = memory.NewOutboxRepository(s.store)
	s.publisher = &recordingPublisher{}
	s.worker = outbox.NewWorker(s.outboxRep, s.publisher, outbox.WithLogger(logger), outbox.WithRetryBaseDelay(0))
}

func (s *BackofficeLifecycleTestSuite) registerCustomer(email string) int64 {
	resp, err := s.service.RegisterCustomer(context.Background(), &backofficev1.RegisterCustomerRequest{
		FirstName:  "Dara",
		LastName:   "Sok",
		Email:      email,
		Phone:      "+855 12 345 678",
		Address:    "45 Sisowath Quay",
		City:       "Phnom Penh",
		PostalCode: "120101",
	})
	s.Require().NoError(err)
	return resp.ID
}

func (s *BackofficeLifecycleTestSuite) TestOrderLifecycle() {
	ctx := context.Background()
	t := s.T()

	customerID := s.registerCustomer("dara@example.com")

	created, err := s.service.CreateOrder(ctx, &backofficev1.CreateOrderRequest{
		CustomerID:      customerID,
		PaymentMethodID: 3,
		ChannelID:       2,
		TotalAmount:     "948.50",
		ShippingAddress: "45 Sisowath Quay, Phnom Penh",
		Items: []*backofficev1.OrderItem{
			{ProductName: "Laptop Pro 14", Quantity: 1, UnitPrice: "899.00"},
			{ProductName: "Wireless Earbuds", Quantity: 1, UnitPrice: "49.50"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Order created successfully! Order ID: 1", created.Message)

	_, err = s.service.UpdateOrderStatus(ctx, &backofficev1.UpdateOrderStatusRequest{OrderID: created.ID, Status: "Processing"})
	require.NoError(t, err)

	s.now = s.now.Add(26 * time.Hour)
	shipped, err := s.service.UpdateOrderStatus(ctx, &backofficev1.UpdateOrderStatusRequest{
		OrderID:  created.ID,
		Status:   "Shipped",
		ShipDate: "2025-03-11",
	})
	require.NoError(t, err)
	require.Equal(t, "Order #1 updated to 'Shipped'", shipped.Message)

	details, err := s.service.GetOrder(ctx, &backofficev1.GetOrderRequest{OrderID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "Shipped", details.Status)
	require.Equal(t, "Wing Money", details.PaymentMethod)
	require.Equal(t, "Phone", details.Channel)
	require.Equal(t, "dara@example.com", details.CustomerEmail)
	require.NotEmpty(t, details.ShipDate)
	require.Len(t, details.Items, 2)

	stats, err := s.service.GetDashboardStats(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.TotalOrders)
	require.Equal(t, int64(1), stats.TotalCustomers)
	require.Equal(t, "948.50", stats.TotalRevenue)
	require.Len(t, stats.OrdersByStatus, 1)
	require.Equal(t, "Shipped", stats.OrdersByStatus[0].Status)

	latest, err := s.service.LatestOrders(ctx, &backofficev1.LatestOrdersRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, latest.Rows, 1)
	require.Equal(t, "Electronics", latest.Rows[0].Category)
	require.Equal(t, "cust-001", latest.Rows[0].CustomerCode)

	result := s.worker.ProcessOnce(ctx)
	require.Equal(t, outbox.BatchResult{Pulled: 4, Sent: 4}, result)
	require.Equal(t, []string{
		domain.EventCustomerRegistered,
		domain.EventOrderCreated,
		domain.EventOrderStatusChanged,
		domain.EventOrderStatusChanged,
	}, s.publisher.eventTypes())

	outboxStats, err := s.outboxRep.Stats(ctx)
	require.NoError(t, err)
	require.Zero(t, outboxStats.PendingCount)

	cleanup := outbox.NewCleanupWorker(s.outboxRep, outbox.WithRetention(time.Hour))
	deleted, err := cleanup.DeleteSent(ctx, s.now.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, 4, deleted)
}

func (s *BackofficeLifecycleTestSuite) TestRejectedOrderLeavesNoTrace() {
	ctx := context.Background()
	t := s.T()

	customerID := s.registerCustomer("reject@example.com")

	_, err := s.service.CreateOrder(ctx, &backofficev1.CreateOrderRequest{
		CustomerID:      customerID,
		PaymentMethodID: 1,
		ChannelID:       1,
		TotalAmount:     "12.50",
		ShippingAddress: "Street 2004",
		Items: []*backofficev1.OrderItem{
			{ProductName: "Ceramic Mug", Quantity: 2, UnitPrice: "4.25"},
			{ProductName: "Ceramic Mug", Quantity: 0, UnitPrice: "4.25"},
		},
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	orders, err := s.service.ListOrders(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Empty(t, orders.Orders)

	require.Equal(t, []string{domain.EventCustomerRegistered}, s.store.PendingEvents())
}

func (s *BackofficeLifecycleTestSuite) TestDuplicateEmailAndUnavailableStorage() {
	ctx := context.Background()
	t := s.T()

	s.registerCustomer("dup@example.com")
	_, err := s.service.RegisterCustomer(ctx, &backofficev1.RegisterCustomerRequest{
		FirstName:  "Other",
		LastName:   "Person",
		Email:      "dup@example.com",
		Phone:      "012345678",
		Address:    "Street 1",
		City:       "Kampot",
		PostalCode: "070101",
	})
	require.Equal(t, codes.AlreadyExists, status.Code(err))

	s.store.SetUnavailable(errors.New("connection refused"))
	_, err = s.service.ListCustomers(ctx, &emptypb.Empty{})
	require.Equal(t, codes.Unavailable, status.Code(err))
}

func TestBackofficeLifecycleSuite(t *testing.T) {
	suite.Run(t, new(BackofficeLifecycleTestSuite))
}
