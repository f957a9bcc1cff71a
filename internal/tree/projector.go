package tree

import (
	"context"
	"fmt"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

// projection is the outcome of mapping the provider status onto children:
// either a placeholder list, or a signal to hand off to reconciliation.
type projection struct {
	children  []ports.Node
	reconcile bool
}

func placeholders(nodes ...ports.Node) projection {
	return projection{children: nodes}
}

// project maps the provider's current status onto placeholder children.
// With status loggedIn it first waits for the filter list to be populated,
// then signals reconciliation when any filters are selected.
func project(ctx context.Context, provider ports.AccountProvider, cmds Commands) (projection, error) {
	status := provider.Status()

	switch status {
	case domain.StatusInitializing:
		return placeholders(loadingPlaceholder()), nil
	case domain.StatusLoggingIn:
		return placeholders(signingInPlaceholder(cmds)), nil
	case domain.StatusLoggedOut:
		return placeholders(signInPlaceholder(cmds), createAccountPlaceholder(cmds)), nil
	case domain.StatusLoggedIn:
		if err := provider.WaitForFilters(ctx); err != nil {
			return projection{}, fmt.Errorf("wait for subscription filters: %w", err)
		}
		if len(provider.Filters()) == 0 {
			return placeholders(selectSubscriptionsPlaceholder(cmds)), nil
		}
		return projection{reconcile: true}, nil
	default:
		return projection{}, fmt.Errorf("unknown provider status %q", status)
	}
}
