package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "accounttree",
		Short:         "Cloud account & subscription tree",
		Long:          "accounttree projects a cloud account's sign-in status and selected subscriptions onto a navigation tree, reusing subscription nodes across refreshes and resolving single-subscription choices for other workflows.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newTreeCmd(app),
		newWatchCmd(app),
		newPickCmd(app),
		newSeedCmd(app),
		newAccountCmd(app),
	)

	return rootCmd
}
