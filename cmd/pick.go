package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/tree"
)

func newPickCmd(app *app) *cobra.Command {
	var subscriptionID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Resolve which subscription an operation should use",
		Long:  "pick runs the single-choice subscription protocol: with one subscription it resolves silently, with several it opens an interactive picker. A preset --subscription id makes the prompt step skippable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wiz := &tree.WizardContext{SubscriptionID: subscriptionID}

			step, err := app.resolver.ResolveStep(cmd.Context(), wiz)
			if err != nil {
				return asCancellation(cmd, err)
			}

			if step != nil && step.ShouldPrompt(wiz) {
				if err := step.Prompt(cmd.Context(), wiz); err != nil {
					return asCancellation(cmd, err)
				}
			}

			return writeResolved(cmd, wiz, asJSON)
		},
	}

	cmd.Flags().StringVar(&subscriptionID, "subscription", "", "Preset subscription id (skips the prompt)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

// asCancellation keeps user cancellations off the error path: they print
// a notice and exit zero.
func asCancellation(cmd *cobra.Command, err error) error {
	if errors.Is(err, domain.ErrUserCancelled) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	return err
}

type resolvedJSON struct {
	SubscriptionID   string `json:"subscription_id"`
	SubscriptionPath string `json:"subscription_path"`
	DisplayName      string `json:"display_name"`
	TenantID         string `json:"tenant_id"`
	UserID           string `json:"user_id"`
	Environment      string `json:"environment"`
}

func writeResolved(cmd *cobra.Command, wiz *tree.WizardContext, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resolvedJSON{
			SubscriptionID:   wiz.SubscriptionID,
			SubscriptionPath: wiz.SubscriptionPath,
			DisplayName:      wiz.SubscriptionDisplayName,
			TenantID:         wiz.TenantID,
			UserID:           wiz.UserID,
			Environment:      wiz.Environment,
		})
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", wiz.SubscriptionID, wiz.SubscriptionDisplayName, wiz.SubscriptionPath)
	return err
}
