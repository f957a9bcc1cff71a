package domain

import "strings"

// Credentials is an already-resolved credential handed through to
// subscription subtrees. This component never mints or refreshes it.
type Credentials interface {
	Token() string
}

// Session is the account session a subscription filter belongs to.
type Session struct {
	Credentials Credentials
	TenantID    string
	UserID      string
	Environment string
}

// Filter is one selected subscription as reported by the provider.
// Values are immutable snapshots; a new slice arrives with every
// filters-changed event.
type Filter struct {
	// SubscriptionPath is the fully-qualified subscription id, e.g.
	// "/subscriptions/1111-2222". It is the identity key used to match
	// nodes across reconciliation passes.
	SubscriptionPath string
	// SubscriptionID is the bare id without the path prefix.
	SubscriptionID string
	DisplayName    string
	Session        Session
}

// Scope is the resolved context handed to subscription node factories
// and copied into wizard contexts by the resolver.
type Scope struct {
	Credentials             Credentials
	SubscriptionDisplayName string
	SubscriptionID          string
	SubscriptionPath        string
	TenantID                string
	UserID                  string
	Environment             string
}

// Scope resolves the filter into the context a node factory needs.
func (f Filter) Scope() Scope {
	return Scope{
		Credentials:             f.Session.Credentials,
		SubscriptionDisplayName: f.DisplayName,
		SubscriptionID:          f.SubscriptionID,
		SubscriptionPath:        f.SubscriptionPath,
		TenantID:                f.Session.TenantID,
		UserID:                  f.Session.UserID,
		Environment:             f.Session.Environment,
	}
}

// BareSubscriptionID extracts the trailing id segment from a
// fully-qualified subscription path.
func BareSubscriptionID(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
