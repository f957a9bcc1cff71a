package domain

import "errors"

var (
	// ErrUserCancelled marks a workflow the user declined to continue.
	// Callers treat it as a cancellation, never as a fault.
	ErrUserCancelled = errors.New("user cancelled")

	// ErrProviderRequired is returned when a workflow needs subscriptions
	// but no account provider is installed.
	ErrProviderRequired = errors.New("account provider required")

	// ErrActivationFailed wraps a provider activation failure. The failure
	// is terminal for the load attempt; the next refresh retries fresh.
	ErrActivationFailed = errors.New("provider activation failed")

	ErrNoSubscription = errors.New("no subscription selected")
)
