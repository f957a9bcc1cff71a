package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	treerender "github.com/cloudnav/accounttree/internal/adapters/render/tree"
	"github.com/cloudnav/accounttree/internal/ports"
)

func newTreeCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the account node's current children",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			children, err := app.node.GetChildren(cmd.Context(), true)
			if err != nil {
				return err
			}

			return writeChildren(cmd, app, children, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

type nodeJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

func writeChildren(cmd *cobra.Command, app *app, children []ports.Node, asJSON bool) error {
	if asJSON {
		out := make([]nodeJSON, 0, len(children))
		for _, child := range children {
			out = append(out, nodeJSON{ID: child.ID(), Label: child.Label(), Kind: string(child.Kind())})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	opts := treerender.RenderOptions{RefreshedAt: app.node.LastLoaded()}
	if app.bus.Flag(app.commands.InstalledFlag) {
		opts.Status = app.provider.Status()
	}

	rendered, err := app.renderer(children, opts)
	if err != nil {
		return fmt.Errorf("render tree: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
