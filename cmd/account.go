package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Drive the file-backed account provider",
	}

	cmd.AddCommand(
		newAccountStatusCmd(app),
		newAccountSignInCmd(app),
		newAccountSignOutCmd(app),
	)

	return cmd
}

func newAccountStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the provider's sign-in status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.node.GetChildren(cmd.Context(), true); err != nil {
				return err
			}

			installed := app.bus.Flag(app.commands.InstalledFlag)
			if !installed {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "provider not installed")
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d filter(s)\n",
				app.provider.Status(), len(app.provider.Filters()))
			return err
		},
	}
}

func newAccountSignInCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sign-in",
		Short: "Sign the demo provider in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.bus.Invoke(cmd.Context(), app.commands.SignIn)
		},
	}
}

func newAccountSignOutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sign-out",
		Short: "Sign the demo provider out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.provider.SignOut(cmd.Context())
		},
	}
}
