package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
	"github.com/vladislavdragonenkov/backoffice/internal/service/backoffice"
	grpcsvc "github.com/vladislavdragonenkov/backoffice/internal/service/grpc"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/memory"
)

type fakeClient struct {
	mu        sync.Mutex
	customers []*backofficev1.RegisterCustomerRequest
	orders    []*backofficev1.CreateOrderRequest
	updates   []*backofficev1.UpdateOrderStatusRequest
	reads     int

	nextID      atomic.Int64
	createErr   error
	zeroOrderID bool
}

func (f *fakeClient) RegisterCustomer(_ context.Context, in *backofficev1.RegisterCustomerRequest, _ ...grpc.CallOption) (*backofficev1.OperationResponse, error) {
	f.mu.Lock()
	f.customers = append(f.customers, in)
	f.mu.Unlock()
	return &backofficev1.OperationResponse{ID: f.nextID.Add(1)}, nil
}

func (f *fakeClient) CreateOrder(_ context.Context, in *backofficev1.CreateOrderRequest, _ ...grpc.CallOption) (*backofficev1.OperationResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	f.orders = append(f.orders, in)
	f.mu.Unlock()
	if f.zeroOrderID {
		return &backofficev1.OperationResponse{}, nil
	}
	return &backofficev1.OperationResponse{ID: f.nextID.Add(1)}, nil
}

func (f *fakeClient) UpdateOrderStatus(_ context.Context, in *backofficev1.UpdateOrderStatusRequest, _ ...grpc.CallOption) (*backofficev1.OperationResponse, error) {
	f.mu.Lock()
	f.updates = append(f.updates, in)
	f.mu.Unlock()
	return &backofficev1.OperationResponse{ID: in.OrderID}, nil
}

func (f *fakeClient) LatestOrders(context.Context, *backofficev1.LatestOrdersRequest, ...grpc.CallOption) (*backofficev1.LatestOrdersResponse, error) {
	f.mu.Lock()
	f.reads++
	f.mu.Unlock()
	return &backofficev1.LatestOrdersResponse{}, nil
}

func TestParseMode(t *testing.T) {
	for _, value := range []string{"create", " create-ship ", "create-report"} {
		if _, err := parseMode(value); err != nil {
			t.Fatalf("parseMode(%q) returned error: %v", value, err)
		}
	}
	if _, err := parseMode("create-pay"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := parseConfig(nil)
		if err != nil {
			t.Fatalf("parseConfig: %v", err)
		}
		if cfg.mode != modeCreate || cfg.total != 400 || cfg.totalSet {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}
		if cfg.unitPrice != "4.25" || cfg.product != "Ceramic Mug" {
			t.Fatalf("unexpected item defaults: %+v", cfg)
		}
	})

	t.Run("duration with explicit total", func(t *testing.T) {
		cfg, err := parseConfig([]string{"-duration=3s", "-total=10", "-unit-price=7.5"})
		if err != nil {
			t.Fatalf("parseConfig: %v", err)
		}
		if !cfg.totalSet || cfg.duration != 3*time.Second {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if cfg.unitPrice != "7.50" {
			t.Fatalf("unit price = %q, want 7.50", cfg.unitPrice)
		}
	})

	cases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "bad mode", args: []string{"-mode=refund"}, wantErr: "unsupported mode"},
		{name: "negative duration", args: []string{"-duration=-1s"}, wantErr: "duration must be >= 0"},
		{name: "zero total", args: []string{"-total=0"}, wantErr: "total must be > 0"},
		{name: "zero total with duration", args: []string{"-duration=1s", "-total=0"}, wantErr: "explicitly set"},
		{name: "zero concurrency", args: []string{"-concurrency=0"}, wantErr: "concurrency"},
		{name: "zero connections", args: []string{"-connections=0"}, wantErr: "connections"},
		{name: "zero timeout", args: []string{"-timeout=0s"}, wantErr: "timeout"},
		{name: "negative price", args: []string{"-unit-price=-1"}, wantErr: "unit-price"},
		{name: "bad price", args: []string{"-unit-price=abc"}, wantErr: "unit-price"},
		{name: "quantity too large", args: []string{"-quantity=1001"}, wantErr: "quantity"},
		{name: "empty product", args: []string{"-product= "}, wantErr: "product is required"},
		{name: "empty email tag", args: []string{"-email-tag="}, wantErr: "email-tag is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseConfig(tc.args)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDispatchJobs(t *testing.T) {
	t.Run("count mode", func(t *testing.T) {
		jobs := make(chan int, 16)
		dispatchJobs(jobs, config{total: 5})

		var got []int
		for id := range jobs {
			got = append(got, id)
		}
		if len(got) != 5 || got[0] != 0 || got[4] != 4 {
			t.Fatalf("unexpected jobs: %v", got)
		}
	})

	t.Run("duration capped by total", func(t *testing.T) {
		jobs := make(chan int, 16)
		dispatchJobs(jobs, config{duration: time.Minute, total: 3, totalSet: true})

		count := 0
		for range jobs {
			count++
		}
		if count != 3 {
			t.Fatalf("jobs = %d, want 3", count)
		}
	})

	t.Run("duration stops on timer", func(t *testing.T) {
		jobs := make(chan int)
		done := make(chan struct{})
		go func() {
			dispatchJobs(jobs, config{duration: 20 * time.Millisecond})
			close(done)
		}()

		// Никто не читает канал, поэтому выход возможен только по таймеру.
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("dispatchJobs did not stop after duration")
		}
	})
}

func TestCollectorAndReport(t *testing.T) {
	c := newCollector()
	c.record(scenarioKey, 10*time.Millisecond, codes.OK)
	c.record(scenarioKey, 20*time.Millisecond, codes.Internal)
	c.record("CreateOrder", 5*time.Millisecond, codes.OK)

	r := c.buildReport(time.Now(), 2*time.Second)
	if r.TotalScenarios != 2 || r.SuccessScenarios != 1 || r.FailedScenarios != 1 {
		t.Fatalf("unexpected scenario counters: %+v", r)
	}
	if r.ErrorRate != 0.5 || r.RPS != 1 {
		t.Fatalf("error_rate=%v rps=%v", r.ErrorRate, r.RPS)
	}
	if r.Methods["CreateOrder"].Codes["OK"] != 1 {
		t.Fatalf("unexpected codes: %+v", r.Methods["CreateOrder"].Codes)
	}
	if r.ScenarioLatencyMs.Min != 10 || r.ScenarioLatencyMs.Max != 20 {
		t.Fatalf("unexpected latency: %+v", r.ScenarioLatencyMs)
	}
}

func TestPercentileAndRatio(t *testing.T) {
	if got := percentile(nil, 50); got != 0 {
		t.Fatalf("percentile(nil) = %v", got)
	}
	if got := percentile([]float64{7}, 99); got != 7 {
		t.Fatalf("percentile(single) = %v", got)
	}
	if got := percentile([]float64{1, 2, 3, 4}, 50); got != 2.5 {
		t.Fatalf("percentile(p50) = %v, want 2.5", got)
	}
	if got := ratio(1, 0); got != 0 {
		t.Fatalf("ratio with zero total = %v", got)
	}
	if got := grpcCode(nil); got != codes.OK {
		t.Fatalf("grpcCode(nil) = %s", got)
	}
	if got := grpcCode(status.Error(codes.NotFound, "x")); got != codes.NotFound {
		t.Fatalf("grpcCode(not found) = %s", got)
	}
	if got := grpcCode(errors.New("plain")); got != codes.Unknown {
		t.Fatalf("grpcCode(plain) = %s", got)
	}
}

func TestWriteJSONReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := writeJSONReport(path, report{TotalScenarios: 3}); err != nil {
		t.Fatalf("writeJSONReport: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded report
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.TotalScenarios != 3 {
		t.Fatalf("total_scenarios = %d", decoded.TotalScenarios)
	}

	for _, bad := range []string{".", "../report.json"} {
		if err := writeJSONReport(bad, report{}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRunScenarioModes(t *testing.T) {
	base := config{
		timeout:         time.Second,
		product:         "Ceramic Mug",
		unitPrice:       "4.25",
		quantity:        2,
		paymentMethodID: 2,
		channelID:       1,
		emailTag:        "load",
	}

	t.Run("create", func(t *testing.T) {
		client := &fakeClient{}
		c := newCollector()
		cfg := base
		cfg.mode = modeCreate

		if err := runScenario(client, cfg, 7, "run", c); err != nil {
			t.Fatalf("runScenario: %v", err)
		}
		if len(client.customers) != 1 || len(client.orders) != 1 || len(client.updates) != 0 {
			t.Fatalf("unexpected calls: %+v", client)
		}
		if got := client.customers[0].Email; got != "load-run-7@loadtest.example.com" {
			t.Fatalf("email = %q", got)
		}
		order := client.orders[0]
		if order.CustomerID != 1 || order.TotalAmount != "8.50" || order.PaymentMethodID != 2 {
			t.Fatalf("unexpected order request: %+v", order)
		}
		if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
			t.Fatalf("unexpected items: %+v", order.Items)
		}
	})

	t.Run("create-ship", func(t *testing.T) {
		client := &fakeClient{}
		cfg := base
		cfg.mode = modeCreateShip

		if err := runScenario(client, cfg, 0, "run", newCollector()); err != nil {
			t.Fatalf("runScenario: %v", err)
		}
		if len(client.updates) != 1 || client.updates[0].Status != "Shipped" || client.updates[0].OrderID != 2 {
			t.Fatalf("unexpected updates: %+v", client.updates)
		}
	})

	t.Run("create-report", func(t *testing.T) {
		client := &fakeClient{}
		cfg := base
		cfg.mode = modeCreateReport

		if err := runScenario(client, cfg, 0, "run", newCollector()); err != nil {
			t.Fatalf("runScenario: %v", err)
		}
		if client.reads != 1 {
			t.Fatalf("reads = %d, want 1", client.reads)
		}
	})

	t.Run("create failure is recorded", func(t *testing.T) {
		client := &fakeClient{createErr: status.Error(codes.InvalidArgument, "bad order")}
		c := newCollector()
		cfg := base
		cfg.mode = modeCreateShip

		err := runScenario(client, cfg, 0, "run", c)
		if status.Code(err) != codes.InvalidArgument {
			t.Fatalf("expected InvalidArgument, got %v", err)
		}
		r := c.buildReport(time.Now(), time.Second)
		if r.FailedScenarios != 1 || r.Methods["CreateOrder"].Codes["InvalidArgument"] != 1 {
			t.Fatalf("unexpected report: %+v", r)
		}
		if _, ok := r.Methods["UpdateOrderStatus"]; ok {
			t.Fatal("status update must not run after failed create")
		}
	})

	t.Run("empty order id", func(t *testing.T) {
		client := &fakeClient{zeroOrderID: true}
		cfg := base
		cfg.mode = modeCreate

		if err := runScenario(client, cfg, 0, "run", newCollector()); status.Code(err) != codes.Internal {
			t.Fatalf("expected Internal, got %v", err)
		}
	})
}

func TestPrintReport(t *testing.T) {
	r := report{
		TotalScenarios:   2,
		SuccessScenarios: 2,
		DurationSeconds:  1,
		RPS:              2,
		Methods: map[string]methodReport{
			scenarioKey:         {Calls: 2, Success: 2},
			"RegisterCustomer":  {Calls: 2, Success: 2},
			"CreateOrder":       {Calls: 2, Success: 2},
			"UpdateOrderStatus": {Calls: 2, Success: 2},
		},
	}

	var buf bytes.Buffer
	printReport(&buf, r, config{mode: modeCreateShip, duration: time.Minute, total: 10, totalSet: true})

	out := buf.String()
	for _, want := range []string{"mode=create-ship", "run=duration:1m0s,max-total:10", "CreateOrder: calls=2", "UpdateOrderStatus: calls=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, scenarioKey+": calls") {
		t.Fatalf("scenario row must not be printed as a method:\n%s", out)
	}
	if got := runTarget(config{total: 4}); got != "count:4" {
		t.Fatalf("runTarget = %q", got)
	}
}

func TestRunLoadAgainstServer(t *testing.T) {
	listener := bufconn.Listen(1024 * 1024)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	entry := logger.WithField("component", "test")

	store := memory.NewStore()
	memory.SeedReferenceData(store)
	svc := backoffice.NewService(backoffice.Repositories{
		Customers: memory.NewCustomerRepository(store),
		Orders:    memory.NewOrderRepository(store),
		Catalog:   memory.NewCatalogRepository(store),
		Reports:   memory.NewReportRepository(store),
	}, backoffice.WithLogger(entry))

	server := grpc.NewServer()
	backofficev1.RegisterBackofficeServiceServer(server, grpcsvc.NewBackofficeService(svc, entry))
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	//nolint:staticcheck // grpc.Dial is required for bufconn testing
	conn, err := grpc.Dial("bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return listener.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	cfg, err := parseConfig([]string{"-mode=create-ship", "-total=6", "-concurrency=3"})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}

	r := runLoad([]loadClient{backofficev1.NewBackofficeServiceClient(conn)}, cfg)
	if r.TotalScenarios != 6 || r.FailedScenarios != 0 {
		t.Fatalf("unexpected report: %+v", r)
	}
	if r.Methods["UpdateOrderStatus"].Success != 6 {
		t.Fatalf("unexpected status updates: %+v", r.Methods["UpdateOrderStatus"])
	}
}

func TestGeneratedClientSatisfiesLoadClient(t *testing.T) {
	var _ loadClient = backofficev1.NewBackofficeServiceClient(nil)
	var _ loadClient = (*fakeClient)(nil)
}
