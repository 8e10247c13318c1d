// Package cli реализует команды backofficectl поверх gRPC API сервиса.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
)

const (
	defaultAddr    = "localhost:50051"
	defaultTimeout = 10 * time.Second
	envAddr        = "BACKOFFICE_ADDR"
)

// Dialer открывает клиента API. close освобождает соединение.
type Dialer func(ctx context.Context, addr string) (client backofficev1.BackofficeServiceClient, closeFn func() error, err error)

type rootOptions struct {
	addr    string
	timeout time.Duration
	dial    Dialer
}

func newRootCmd(dial Dialer) *cobra.Command {
	opts := &rootOptions{dial: dial}

	cmd := &cobra.Command{
		Use:           "backofficectl",
		Short:         "Back office for customers, orders and sales reports",
		Long:          "backofficectl talks to the back office gRPC API: registers customers, creates orders, changes order status and prints sales reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addr := os.Getenv(envAddr)
	if addr == "" {
		addr = defaultAddr
	}
	cmd.PersistentFlags().StringVar(&opts.addr, "addr", addr, "gRPC address of the back office service (env "+envAddr+")")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "Request timeout")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCustomersCmd(opts))
	cmd.AddCommand(newOrdersCmd(opts))
	cmd.AddCommand(newCatalogCmd(opts))
	cmd.AddCommand(newDashboardCmd(opts))
	cmd.AddCommand(newReportsCmd(opts))
	cmd.AddCommand(newPostalCodeCmd(opts))
	return cmd
}

// NewRootCmdWithDialer возвращает дерево команд с подменённым подключением.
func NewRootCmdWithDialer(dial Dialer) *cobra.Command {
	return newRootCmd(dial)
}

// Execute запускает backofficectl с gRPC-подключением по --addr.
// Ошибка печатается в stderr текстом сервера, без обёртки gRPC.
func Execute() error {
	cmd := newRootCmd(dialGRPC)
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), renderError(errorMessage(err)))
		return err
	}
	return nil
}

func errorMessage(err error) error {
	if st, ok := status.FromError(err); ok {
		return errors.New(st.Message())
	}
	return err
}

func dialGRPC(_ context.Context, addr string) (backofficev1.BackofficeServiceClient, func() error, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	return backofficev1.NewBackofficeServiceClient(conn), conn.Close, nil
}

// run выполняет fn с клиентом и таймаутом запроса.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, client backofficev1.BackofficeServiceClient) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()

	client, closeFn, err := o.dial(ctx, o.addr)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	return fn(ctx, client)
}
