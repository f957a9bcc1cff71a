package ports

import (
	"context"

	"github.com/cloudnav/accounttree/internal/domain"
)

type NodeKind string

const (
	// NodeKindSubscription marks long-lived subscription subtree roots.
	NodeKindSubscription NodeKind = "subscription"
	// NodeKindPlaceholder marks transient, status-derived children that
	// are rebuilt on every refresh.
	NodeKindPlaceholder NodeKind = "placeholder"
)

// Node is the minimal surface the host tree framework needs. Subscription
// nodes must report their fully-qualified subscription path as ID; it is
// the identity key reconciliation matches on.
type Node interface {
	ID() string
	Label() string
	Kind() NodeKind
}

// NodeFactory builds the subtree root for one subscription. Implemented
// by the concrete deployment, not by this module. May block, may fail; a
// failure aborts the whole reconciliation pass.
type NodeFactory interface {
	CreateSubscriptionNode(ctx context.Context, scope domain.Scope) (Node, error)
}

// NodeFactoryFunc adapts a function to NodeFactory.
type NodeFactoryFunc func(ctx context.Context, scope domain.Scope) (Node, error)

func (f NodeFactoryFunc) CreateSubscriptionNode(ctx context.Context, scope domain.Scope) (Node, error) {
	return f(ctx, scope)
}
