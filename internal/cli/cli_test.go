package cli_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
	"github.com/vladislavdragonenkov/backoffice/internal/cli"
	"github.com/vladislavdragonenkov/backoffice/internal/service/backoffice"
	grpcsvc "github.com/vladislavdragonenkov/backoffice/internal/service/grpc"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/memory"
)

type harness struct {
	dial  cli.Dialer
	store *memory.Store
}

func newHarness(t *testing.T) harness {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	entry := logger.WithField("component", "cli-test")

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	store := memory.NewStore(memory.WithClock(func() time.Time { return base }))
	memory.SeedReferenceData(store)

	svc := backoffice.NewService(backoffice.Repositories{
		Customers: memory.NewCustomerRepository(store),
		Orders:    memory.NewOrderRepository(store),
		Catalog:   memory.NewCatalogRepository(store),
		Reports:   memory.NewReportRepository(store),
	}, backoffice.WithLogger(entry))

	listener := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	backofficev1.RegisterBackofficeServiceServer(server, grpcsvc.NewBackofficeService(svc, entry))
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	dial := func(context.Context, string) (backofficev1.BackofficeServiceClient, func() error, error) {
		//nolint:staticcheck // grpc.Dial is required for bufconn testing
		conn, err := grpc.Dial("bufnet",
			grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return listener.Dial() }),
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, nil, err
		}
		return backofficev1.NewBackofficeServiceClient(conn), conn.Close, nil
	}
	return harness{dial: dial, store: store}
}

func (h harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCmdWithDialer(h.dial)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func (h harness) addCustomer(t *testing.T, email string) {
	t.Helper()

	out, err := h.run(t, "customers", "add",
		"--first-name", "Dara", "--last-name", "Kim", "--email", email,
		"--phone", "0987654321", "--address", "45 Norodom Blvd", "--city", "Battambang")
	require.NoError(t, err)
	assert.Contains(t, out, "Customer added successfully!")
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "backofficectl version=")
}

func TestCustomersAddAndList(t *testing.T) {
	h := newHarness(t)
	h.addCustomer(t, "dara@example.com")

	out, err := h.run(t, "customers", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "dara@example.com")
	assert.Contains(t, out, "Battambang")

	_, err = h.run(t, "customers", "add",
		"--first-name", "Dara", "--last-name", "Kim", "--email", "dara@example.com",
		"--phone", "0987654321", "--address", "x", "--city", "Battambang")
	require.Error(t, err)
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestOrdersCreateShowAndStatus(t *testing.T) {
	h := newHarness(t)
	h.addCustomer(t, "buyer@example.com")

	out, err := h.run(t, "orders", "create",
		"--customer", "1", "--payment-method", "1", "--channel", "1",
		"--address", "45 Norodom Blvd",
		"--item", "Ceramic Mug=2", "--item", "Khmer Cookbook=1", "--item", "Ceramic Mug=1")
	require.NoError(t, err)
	assert.Contains(t, out, "Order created successfully! Order ID: 1")

	out, err = h.run(t, "orders", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Order #1")
	assert.Contains(t, out, "30.75")
	assert.Contains(t, out, "12.75")

	out, err = h.run(t, "orders", "status", "1", "Delivered", "--ship-date", "2025-03-12")
	require.NoError(t, err)
	assert.Contains(t, out, "Order #1 updated to 'Delivered'")

	_, err = h.run(t, "orders", "status", "1", "Shipped", "--ship-date", "2025-03-01")
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	out, err = h.run(t, "orders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Delivered")
}

func TestOrdersCreate_RejectsBadItems(t *testing.T) {
	h := newHarness(t)
	h.addCustomer(t, "stock@example.com")

	testCases := []struct {
		name string
		item string
		want string
	}{
		{"format", "Ceramic Mug", "expected"},
		{"unknown product", "Flying Car=1", "not in the catalog"},
		{"quantity", "Ceramic Mug=zero", "Quantity must be a number"},
		{"stock", "Go in Practice=11", "Only 10 items available in stock"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.run(t, "orders", "create",
				"--customer", "1", "--payment-method", "1", "--channel", "1",
				"--address", "somewhere", "--item", tc.item)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCatalogCommands(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "catalog", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Home & Kitchen")

	out, err = h.run(t, "catalog", "products", "--category", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Running Shoes")

	out, err = h.run(t, "catalog", "payment-methods")
	require.NoError(t, err)
	assert.Contains(t, out, "Wing Money")

	out, err = h.run(t, "catalog", "channels")
	require.NoError(t, err)
	assert.Contains(t, out, "Social Media")
}

func TestReportsAndDashboard(t *testing.T) {
	h := newHarness(t)
	h.addCustomer(t, "report@example.com")

	_, err := h.run(t, "orders", "create",
		"--customer", "1", "--payment-method", "2", "--channel", "3",
		"--address", "somewhere", "--item", "Rice Cooker=1", "--item", "Running Shoes=1")
	require.NoError(t, err)

	out, err := h.run(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "94.00")
	assert.Contains(t, out, "Pending")

	out, err = h.run(t, "reports", "revenue")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-10")

	out, err = h.run(t, "reports", "orders", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-10")

	out, err = h.run(t, "reports", "latest", "--csv")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Order ID", records[0][0])
	assert.Equal(t, "cust-001", records[1][1])
	assert.Equal(t, "Clothing", records[1][5])
	assert.Equal(t, "Home & Kitchen", records[2][5])
	assert.Equal(t, "", records[1][3])
}

func TestPostalCodeCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "postal-code", "kampot")
	require.NoError(t, err)
	assert.Contains(t, out, "070101")

	out, err = h.run(t, "postal-code", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "Siem Reap")

	_, err = h.run(t, "postal-code")
	require.Error(t, err)
}
