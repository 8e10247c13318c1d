package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/validation"
)

func newOrdersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Create, inspect and update orders",
	}
	cmd.AddCommand(newOrdersCreateCmd(opts))
	cmd.AddCommand(newOrdersListCmd(opts))
	cmd.AddCommand(newOrdersShowCmd(opts))
	cmd.AddCommand(newOrdersStatusCmd(opts))
	return cmd
}

type createOrderFlags struct {
	customerID      int64
	paymentMethodID int64
	channelID       int64
	address         string
	total           string
	items           []string
}

func newOrdersCreateCmd(opts *rootOptions) *cobra.Command {
	var flags createOrderFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order from catalog products",
		Long: "Create an order. Each --item is \"<product name>=<quantity>\"; prices and stock come from the catalog.\n" +
			"The total defaults to the sum of item subtotals.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				catalog, err := loadCatalogProducts(ctx, client)
				if err != nil {
					return err
				}
				cart, err := buildCart(catalog, flags.items)
				if err != nil {
					return err
				}

				total := flags.total
				if strings.TrimSpace(total) == "" {
					total = cart.Total().StringFixed(2)
				}

				req := &backofficev1.CreateOrderRequest{
					CustomerID:      flags.customerID,
					PaymentMethodID: flags.paymentMethodID,
					ChannelID:       flags.channelID,
					TotalAmount:     total,
					ShippingAddress: flags.address,
				}
				for _, item := range cart.Items() {
					req.Items = append(req.Items, &backofficev1.OrderItem{
						ProductName: item.ProductName,
						Quantity:    int32(item.Quantity),
						UnitPrice:   item.UnitPrice.StringFixed(2),
					})
				}

				resp, err := client.CreateOrder(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), renderSuccess(resp.Message))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&flags.customerID, "customer", 0, "Customer ID")
	cmd.Flags().Int64Var(&flags.paymentMethodID, "payment-method", 0, "Payment method ID")
	cmd.Flags().Int64Var(&flags.channelID, "channel", 0, "Sales channel ID")
	cmd.Flags().StringVar(&flags.address, "address", "", "Shipping address")
	cmd.Flags().StringVar(&flags.total, "total", "", "Total amount (defaults to the cart total)")
	cmd.Flags().StringArrayVar(&flags.items, "item", nil, "Order line as \"<product name>=<quantity>\" (repeatable)")
	return cmd
}

// loadCatalogProducts собирает активные товары всех активных категорий по названию.
func loadCatalogProducts(ctx context.Context, client backofficev1.BackofficeServiceClient) (map[string]domain.CartProduct, error) {
	categories, err := client.ListCategories(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}

	products := make(map[string]domain.CartProduct)
	for _, category := range categories.Categories {
		resp, err := client.ListProducts(ctx, &backofficev1.ListProductsRequest{CategoryID: category.ID})
		if err != nil {
			return nil, err
		}
		for _, p := range resp.Products {
			price, err := validation.Amount(p.UnitPrice)
			if err != nil {
				return nil, fmt.Errorf("product %q: %w", p.Name, err)
			}
			products[p.Name] = domain.CartProduct{Name: p.Name, UnitPrice: price, Stock: int(p.StockQuantity)}
		}
	}
	return products, nil
}

// buildCart раскладывает аргументы --item в корзину с проверкой остатков.
func buildCart(products map[string]domain.CartProduct, specs []string) (domain.Cart, error) {
	cart := domain.NewCart()
	for _, spec := range specs {
		name, rawQty, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return cart, fmt.Errorf("invalid --item %q: expected \"<product name>=<quantity>\"", spec)
		}

		product, found := products[name]
		if !found {
			return cart, fmt.Errorf("product %q is not in the catalog", name)
		}
		qty, err := validation.Quantity(rawQty)
		if err != nil {
			return cart, fmt.Errorf("%s: %w", name, err)
		}

		if cart, err = cart.Add(product, qty); err != nil {
			return cart, fmt.Errorf("%s: %w", name, err)
		}
	}
	return cart, nil
}

func newOrdersListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.ListOrders(ctx, &emptypb.Empty{})
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(resp.Orders))
				for _, o := range resp.Orders {
					rows = append(rows, []string{
						strconv.FormatInt(o.ID, 10),
						o.OrderDate,
						o.Status,
						o.CustomerFirstName + " " + o.CustomerLastName,
						o.PaymentMethod,
						o.Channel,
						o.TotalAmount,
						orDash(o.ShipDate),
					})
				}
				headers := []string{"ID", "Order Date", "Status", "Customer", "Payment", "Channel", "Total", "Ship Date"}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(headers, rows, 2))
				return nil
			})
		},
	}
}

func newOrdersShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show an order with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[0])
			if err != nil {
				return err
			}

			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				order, err := client.GetOrder(ctx, &backofficev1.GetOrderRequest{OrderID: orderID})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprint(out, renderKeyValues(fmt.Sprintf("Order #%d", order.ID), [][2]string{
					{"Status", renderStatus(order.Status)},
					{"Order date", order.OrderDate},
					{"Ship date", orDash(order.ShipDate)},
					{"Customer", fmt.Sprintf("%s %s <%s>", order.CustomerFirstName, order.CustomerLastName, order.CustomerEmail)},
					{"Payment", order.PaymentMethod},
					{"Channel", order.Channel},
					{"Ship to", order.ShippingAddress},
					{"Total", order.TotalAmount},
				}))

				rows := make([][]string, 0, len(order.Items))
				for _, item := range order.Items {
					rows = append(rows, []string{item.ProductName, strconv.Itoa(int(item.Quantity)), item.UnitPrice, item.Subtotal})
				}
				fmt.Fprint(out, renderTable([]string{"Product", "Qty", "Unit Price", "Subtotal"}, rows, -1))
				return nil
			})
		},
	}
}

func newOrdersStatusCmd(opts *rootOptions) *cobra.Command {
	var shipDate string

	cmd := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Change order status",
		Long: "Change order status to one of: " + strings.Join(statusNames(), ", ") + ".\n" +
			"--ship-date is accepted only for Shipped and Delivered.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[0])
			if err != nil {
				return err
			}

			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.UpdateOrderStatus(ctx, &backofficev1.UpdateOrderStatusRequest{
					OrderID:  orderID,
					Status:   args[1],
					ShipDate: shipDate,
				})
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), renderSuccess(resp.Message))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&shipDate, "ship-date", "", "Ship date, YYYY-MM-DD or RFC 3339")
	return cmd
}

func parseOrderID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid order id %q", raw)
	}
	return id, nil
}

func statusNames() []string {
	statuses := domain.OrderStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}
	return names
}
