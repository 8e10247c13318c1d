package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List active product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.ListCategories(ctx, &emptypb.Empty{})
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(resp.Categories))
				for _, c := range resp.Categories {
					rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Description})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"ID", "Category", "Description"}, rows, -1))
				return nil
			})
		},
	})

	var categoryID int64
	products := &cobra.Command{
		Use:   "products",
		Short: "List active products of a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.ListProducts(ctx, &backofficev1.ListProductsRequest{CategoryID: categoryID})
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(resp.Products))
				for _, p := range resp.Products {
					rows = append(rows, []string{
						strconv.FormatInt(p.ID, 10),
						p.Name,
						p.UnitPrice,
						strconv.Itoa(int(p.StockQuantity)),
						p.Description,
					})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"ID", "Product", "Price", "Stock", "Description"}, rows, -1))
				return nil
			})
		},
	}
	products.Flags().Int64Var(&categoryID, "category", 0, "Category ID")
	_ = products.MarkFlagRequired("category")
	cmd.AddCommand(products)

	cmd.AddCommand(&cobra.Command{
		Use:   "payment-methods",
		Short: "List active payment methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.ListPaymentMethods(ctx, &emptypb.Empty{})
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(resp.PaymentMethods))
				for _, m := range resp.PaymentMethods {
					rows = append(rows, []string{strconv.FormatInt(m.ID, 10), m.Name})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"ID", "Payment Method"}, rows, -1))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "channels",
		Short: "List sales channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.ListChannels(ctx, &emptypb.Empty{})
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(resp.Channels))
				for _, c := range resp.Channels {
					rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Description})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"ID", "Channel", "Description"}, rows, -1))
				return nil
			})
		},
	})

	return cmd
}
