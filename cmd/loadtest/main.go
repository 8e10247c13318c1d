// Команда loadtest создаёт покупателей и заказы через gRPC API и печатает
// задержки по каждому методу.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
	"github.com/vladislavdragonenkov/backoffice/internal/validation"
)

type loadMode string

const (
	modeCreate       loadMode = "create"
	modeCreateShip   loadMode = "create-ship"
	modeCreateReport loadMode = "create-report"
)

type config struct {
	addr            string
	total           int
	totalSet        bool
	duration        time.Duration
	concurrency     int
	connections     int
	timeout         time.Duration
	mode            loadMode
	product         string
	unitPrice       string
	quantity        int
	paymentMethodID int64
	channelID       int64
	emailTag        string
	outputPath      string
}

// loadClient содержит методы API, которые вызывают сценарии.
type loadClient interface {
	RegisterCustomer(ctx context.Context, in *backofficev1.RegisterCustomerRequest, opts ...grpc.CallOption) (*backofficev1.OperationResponse, error)
	CreateOrder(ctx context.Context, in *backofficev1.CreateOrderRequest, opts ...grpc.CallOption) (*backofficev1.OperationResponse, error)
	UpdateOrderStatus(ctx context.Context, in *backofficev1.UpdateOrderStatusRequest, opts ...grpc.CallOption) (*backofficev1.OperationResponse, error)
	LatestOrders(ctx context.Context, in *backofficev1.LatestOrdersRequest, opts ...grpc.CallOption) (*backofficev1.LatestOrdersResponse, error)
}

func parseConfig(args []string) (config, error) {
	var (
		cfg        config
		modeValue  string
		priceValue string
	)

	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.StringVar(&cfg.addr, "addr", "localhost:50051", "gRPC target address")
	fs.IntVar(&cfg.total, "total", 400, "total scenarios in count mode; with -duration only used when explicitly set")
	fs.DurationVar(&cfg.duration, "duration", 0, "optional time-based run duration (e.g. 10m)")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	fs.IntVar(&cfg.connections, "connections", 20, "number of gRPC client connections")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-RPC timeout")
	fs.StringVar(&modeValue, "mode", string(modeCreate), "load mode: create | create-ship | create-report")
	fs.StringVar(&cfg.product, "product", "Ceramic Mug", "product name for order items")
	fs.StringVar(&priceValue, "unit-price", "4.25", "unit price of the product")
	fs.IntVar(&cfg.quantity, "quantity", 1, "item quantity per order")
	fs.Int64Var(&cfg.paymentMethodID, "payment-method", 1, "payment method ID")
	fs.Int64Var(&cfg.channelID, "channel", 1, "sales channel ID")
	fs.StringVar(&cfg.emailTag, "email-tag", "load", "prefix for generated customer emails")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	mode, err := parseMode(modeValue)
	if err != nil {
		return cfg, err
	}
	cfg.mode = mode

	price, err := validation.Amount(priceValue)
	if err != nil {
		return cfg, fmt.Errorf("unit-price: %w", err)
	}
	cfg.unitPrice = price.StringFixed(2)
	if err := validation.CheckQuantity(cfg.quantity); err != nil {
		return cfg, fmt.Errorf("quantity: %w", err)
	}

	switch {
	case cfg.duration < 0:
		return cfg, errors.New("duration must be >= 0")
	case cfg.duration == 0 && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when duration is not set")
	case cfg.duration > 0 && cfg.totalSet && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when explicitly set with duration")
	case cfg.concurrency <= 0:
		return cfg, errors.New("concurrency must be > 0")
	case cfg.connections <= 0:
		return cfg, errors.New("connections must be > 0")
	case cfg.timeout <= 0:
		return cfg, errors.New("timeout must be > 0")
	case strings.TrimSpace(cfg.product) == "":
		return cfg, errors.New("product is required")
	case strings.TrimSpace(cfg.emailTag) == "":
		return cfg, errors.New("email-tag is required")
	}

	return cfg, nil
}

func parseMode(value string) (loadMode, error) {
	switch mode := loadMode(strings.TrimSpace(value)); mode {
	case modeCreate, modeCreateShip, modeCreateReport:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	conns := make([]*grpc.ClientConn, 0, cfg.connections)
	clients := make([]loadClient, 0, cfg.connections)
	for i := 0; i < cfg.connections; i++ {
		conn, dialErr := grpc.NewClient(cfg.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if dialErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to create grpc client connection: %v\n", dialErr)
			os.Exit(1)
		}
		conns = append(conns, conn)
		clients = append(clients, backofficev1.NewBackofficeServiceClient(conn))
	}
	defer func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
	}()

	result := runLoad(clients, cfg)
	printReport(os.Stdout, result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}
	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

// runLoad раздаёт сценарии воркерам; воркер i работает через clients[i%len(clients)].
func runLoad(clients []loadClient, cfg config) report {
	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	col := newCollector()

	jobs := make(chan int, cfg.concurrency*2)
	var wg sync.WaitGroup
	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		go func(client loadClient) {
			defer wg.Done()
			for id := range jobs {
				_ = runScenario(client, cfg, id, runID, col)
			}
		}(clients[workerID%len(clients)])
	}

	dispatchJobs(jobs, cfg)
	wg.Wait()

	return col.buildReport(startedAt, time.Since(startedAt))
}

func dispatchJobs(jobs chan<- int, cfg config) {
	defer close(jobs)

	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			jobs <- i
		}
		return
	}

	timer := time.NewTimer(cfg.duration)
	defer timer.Stop()

	for i := 0; ; i++ {
		if cfg.totalSet && i >= cfg.total {
			return
		}
		select {
		case <-timer.C:
			return
		case jobs <- i:
		}
	}
}

// runScenario регистрирует покупателя, создаёт ему заказ и, в зависимости от режима,
// отгружает заказ или читает таблицу последних заказов.
func runScenario(client loadClient, cfg config, index int, runID string, col *collector) (err error) {
	start := time.Now()
	defer func() {
		col.record(scenarioKey, time.Since(start), grpcCode(err))
	}()

	customer, err := timedCall(col, "RegisterCustomer", cfg.timeout, func(ctx context.Context) (*backofficev1.OperationResponse, error) {
		return client.RegisterCustomer(ctx, customerRequest(cfg, runID, index))
	})
	if err != nil {
		return err
	}

	order, err := timedCall(col, "CreateOrder", cfg.timeout, func(ctx context.Context) (*backofficev1.OperationResponse, error) {
		return client.CreateOrder(ctx, orderRequest(cfg, customer.ID))
	})
	if err != nil {
		return err
	}
	if order.ID <= 0 {
		return status.Error(codes.Internal, "create response returned empty order id")
	}

	switch cfg.mode {
	case modeCreateShip:
		_, err = timedCall(col, "UpdateOrderStatus", cfg.timeout, func(ctx context.Context) (*backofficev1.OperationResponse, error) {
			return client.UpdateOrderStatus(ctx, &backofficev1.UpdateOrderStatusRequest{
				OrderID:  order.ID,
				Status:   "Shipped",
				ShipDate: time.Now().UTC().Add(time.Minute).Format(time.RFC3339),
			})
		})
	case modeCreateReport:
		_, err = timedCall(col, "LatestOrders", cfg.timeout, func(ctx context.Context) (*backofficev1.LatestOrdersResponse, error) {
			return client.LatestOrders(ctx, &backofficev1.LatestOrdersRequest{Limit: 50})
		})
	}
	return err
}

func timedCall[T any](col *collector, method string, timeout time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	resp, err := call(ctx)
	col.record(method, time.Since(start), grpcCode(err))
	return resp, err
}

func customerRequest(cfg config, runID string, index int) *backofficev1.RegisterCustomerRequest {
	return &backofficev1.RegisterCustomerRequest{
		FirstName:  "Load",
		LastName:   "Tester",
		Email:      fmt.Sprintf("%s-%s-%d@loadtest.example.com", cfg.emailTag, runID, index),
		Phone:      "012345678",
		Address:    fmt.Sprintf("%d Load Street", index+1),
		City:       "Phnom Penh",
		PostalCode: "120101",
	}
}

func orderRequest(cfg config, customerID int64) *backofficev1.CreateOrderRequest {
	item := &backofficev1.OrderItem{
		ProductName: cfg.product,
		Quantity:    int32(cfg.quantity),
		UnitPrice:   cfg.unitPrice,
	}
	price, _ := decimal.NewFromString(cfg.unitPrice)
	return &backofficev1.CreateOrderRequest{
		CustomerID:      customerID,
		PaymentMethodID: cfg.paymentMethodID,
		ChannelID:       cfg.channelID,
		TotalAmount:     price.Mul(decimal.NewFromInt(int64(cfg.quantity))).StringFixed(2),
		ShippingAddress: "Load Street, Phnom Penh",
		Items:           []*backofficev1.OrderItem{item},
	}
}

func grpcCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	return status.Code(err)
}
