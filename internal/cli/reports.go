package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
)

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show sales totals and orders by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				stats, err := client.GetDashboardStats(ctx, &emptypb.Empty{})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprint(out, renderKeyValues("Dashboard", [][2]string{
					{"Total revenue", stats.TotalRevenue},
					{"Total orders", strconv.FormatInt(stats.TotalOrders, 10)},
					{"Customers", strconv.FormatInt(stats.TotalCustomers, 10)},
					{"Avg order value", stats.AvgOrderValue},
				}))

				rows := make([][]string, 0, len(stats.OrdersByStatus))
				for _, s := range stats.OrdersByStatus {
					rows = append(rows, []string{s.Status, strconv.FormatInt(s.Count, 10)})
				}
				fmt.Fprint(out, renderTable([]string{"Status", "Orders"}, rows, 0))
				return nil
			})
		},
	}
}

func newReportsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Daily aggregates and the latest orders table",
	}
	cmd.AddCommand(newRevenueReportCmd(opts))
	cmd.AddCommand(newOrdersReportCmd(opts))
	cmd.AddCommand(newLatestReportCmd(opts))
	return cmd
}

func newRevenueReportCmd(opts *rootOptions) *cobra.Command {
	var limit int32

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Revenue per day over the most recent orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.RevenueByDay(ctx, &backofficev1.ReportWindowRequest{Limit: limit})
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(resp.Days))
				for _, d := range resp.Days {
					rows = append(rows, []string{d.Date, d.Revenue})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"Date", "Revenue"}, rows, -1))
				return nil
			})
		},
	}
	cmd.Flags().Int32Var(&limit, "limit", 0, "Number of most recent orders to aggregate (0 = server default)")
	return cmd
}

func newOrdersReportCmd(opts *rootOptions) *cobra.Command {
	var limit int32

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order count per day over the most recent orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.OrdersByDay(ctx, &backofficev1.ReportWindowRequest{Limit: limit})
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(resp.Days))
				for _, d := range resp.Days {
					rows = append(rows, []string{d.Date, strconv.FormatInt(d.Count, 10)})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"Date", "Orders"}, rows, -1))
				return nil
			})
		},
	}
	cmd.Flags().Int32Var(&limit, "limit", 0, "Number of most recent orders to aggregate (0 = server default)")
	return cmd
}

var latestHeaders = []string{
	"Order ID", "Customer", "Order Date", "Ship Date", "Status", "Category",
	"Channel", "Total", "Discount", "Payment",
}

func newLatestReportCmd(opts *rootOptions) *cobra.Command {
	var (
		limit     int32
		offset    int32
		csvOutput bool
	)

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Latest orders, one row per order and item category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.LatestOrders(ctx, &backofficev1.LatestOrdersRequest{Limit: limit, Offset: offset})
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(resp.Rows))
				for _, r := range resp.Rows {
					rows = append(rows, []string{
						strconv.FormatInt(r.OrderID, 10),
						r.CustomerCode,
						r.OrderDate,
						r.ShipDate,
						r.Status,
						r.Category,
						r.Channel,
						r.TotalAmount,
						r.Discount,
						r.PaymentMethod,
					})
				}

				if csvOutput {
					return writeCSV(cmd.OutOrStdout(), latestHeaders, rows)
				}
				for _, row := range rows {
					row[3] = orDash(row[3])
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(latestHeaders, rows, 4))
				return nil
			})
		},
	}
	cmd.Flags().Int32Var(&limit, "limit", 200, "Maximum number of rows")
	cmd.Flags().Int32Var(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().BoolVar(&csvOutput, "csv", false, "Write CSV instead of a table")
	return cmd
}
