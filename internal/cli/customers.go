package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
)

func newCustomersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Register and list customers",
	}
	cmd.AddCommand(newCustomersAddCmd(opts))
	cmd.AddCommand(newCustomersListCmd(opts))
	return cmd
}

func newCustomersAddCmd(opts *rootOptions) *cobra.Command {
	var req backofficev1.RegisterCustomerRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new customer",
		Long:  "Register a new customer. When --postal-code is omitted it is looked up by --city.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				if strings.TrimSpace(req.PostalCode) == "" && strings.TrimSpace(req.City) != "" {
					resp, err := client.LookupPostalCode(ctx, &backofficev1.LookupPostalCodeRequest{City: req.City})
					if err != nil {
						return err
					}
					req.PostalCode = resp.PostalCode
				}

				resp, err := client.RegisterCustomer(ctx, &req)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), renderSuccess(resp.Message))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number, 8-10 digits")
	cmd.Flags().StringVar(&req.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&req.City, "city", "", "City or district")
	cmd.Flags().StringVar(&req.PostalCode, "postal-code", "", "Postal code (looked up by city when empty)")
	return cmd
}

func newCustomersListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				resp, err := client.ListCustomers(ctx, &emptypb.Empty{})
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(resp.Customers))
				for _, c := range resp.Customers {
					rows = append(rows, []string{
						strconv.FormatInt(c.ID, 10),
						c.FirstName + " " + c.LastName,
						c.Email,
						c.Phone,
						c.City,
					})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Email", "Phone", "City"}, rows, -1))
				return nil
			})
		},
	}
}
