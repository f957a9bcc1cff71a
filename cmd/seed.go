package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	providertoml "github.com/cloudnav/accounttree/internal/adapters/provider/toml"
)

func newSeedCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write a signed-in demo provider state file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := providertoml.Seed(app.provider.StatePath()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", app.provider.StatePath())
			return err
		},
	}
}
