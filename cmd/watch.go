package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Render the tree and re-render on provider events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			defer app.node.Dispose()

			watchErr := make(chan error, 1)
			go func() {
				watchErr <- app.provider.Watch(ctx)
			}()

			if err := renderOnce(ctx, cmd, app); err != nil {
				return err
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case err := <-watchErr:
					if err != nil && !errors.Is(err, context.Canceled) {
						return err
					}
					return nil
				case <-app.node.Refreshes():
					if err := renderOnce(ctx, cmd, app); err != nil {
						app.log.WithError(err).Error("refresh tree")
					}
				}
			}
		},
	}
}

func renderOnce(ctx context.Context, cmd *cobra.Command, app *app) error {
	children, err := app.node.GetChildren(ctx, true)
	if err != nil {
		return err
	}

	return writeChildren(cmd, app, children, false)
}
