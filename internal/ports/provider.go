package ports

import (
	"context"

	"github.com/cloudnav/accounttree/internal/domain"
)

// AccountProvider is the external component reporting sign-in status and
// subscription filters. This module never authenticates; it only reacts
// to what the provider reports.
//
// Contract: after a status change to StatusLoggedIn the provider must
// emit a filters-changed event once the filter list is known, even when
// the list is empty. The refresh trigger suppresses refreshes on the
// loggedIn transition and relies on that follow-up event; a provider
// violating the contract leaves the tree stale.
type AccountProvider interface {
	Status() domain.Status
	Filters() []domain.Filter

	// WaitForFilters blocks until the filter list has been populated at
	// least once for the current sign-in session.
	WaitForFilters(ctx context.Context) error
	// WaitForSubscriptions blocks until the account's subscriptions are
	// known, signing in first if necessary.
	WaitForSubscriptions(ctx context.Context) error

	// OnFiltersChanged and OnStatusChanged register listeners and return
	// their unsubscribe functions. Listeners must not re-enter the
	// provider synchronously.
	OnFiltersChanged(fn func()) (unsubscribe func())
	OnStatusChanged(fn func(status domain.Status)) (unsubscribe func())
}

// ProviderLocator finds and activates an account provider by its
// well-known identifier.
type ProviderLocator interface {
	// Locate returns (nil, nil) when no provider with the given
	// identifier is installed; that is a state, not an error. Activation
	// happens at most once per located provider and may be slow; an
	// activation failure is returned as an error.
	Locate(ctx context.Context, providerID string) (AccountProvider, error)
}
