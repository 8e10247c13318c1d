package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/backoffice/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show backofficectl version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "backofficectl %s\n", version.Current())
			return nil
		},
	}
}
