package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
)

func newPostalCodeCmd(opts *rootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "postal-code [city]",
		Short: "Look up the postal code of a city",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list && len(args) == 0 {
				return errors.New("specify a city or use --list")
			}

			return opts.run(cmd, func(ctx context.Context, client backofficev1.BackofficeServiceClient) error {
				if list {
					resp, err := client.ListCities(ctx, &emptypb.Empty{})
					if err != nil {
						return err
					}
					for _, city := range resp.Cities {
						fmt.Fprintln(cmd.OutOrStdout(), city)
					}
					return nil
				}

				resp, err := client.LookupPostalCode(ctx, &backofficev1.LookupPostalCodeRequest{City: strings.Join(args, " ")})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", resp.City, resp.PostalCode)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List known cities")
	return cmd
}
