package tree

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

// subscriptionEntry pairs a materialized subscription node with the scope
// snapshot it was resolved against. The scope is what the resolver copies
// into wizard contexts without reaching back into the node.
type subscriptionEntry struct {
	node  ports.Node
	scope domain.Scope
}

// reconcile diffs the new filter list against the previous generation of
// subscription nodes by identity key (the fully-qualified subscription
// path). Matched nodes are reused so their cached subtrees survive;
// missing ones are built by the factory, all factory calls running
// concurrently. Output order follows filter order regardless of
// completion order; it reflects the user-configured filter order and is
// never sorted. Any factory failure fails the whole pass.
func reconcile(ctx context.Context, previous []subscriptionEntry, filters []domain.Filter, factory ports.NodeFactory) ([]subscriptionEntry, error) {
	byPath := make(map[string]ports.Node, len(previous))
	for _, entry := range previous {
		byPath[entry.node.ID()] = entry.node
	}

	out := make([]subscriptionEntry, len(filters))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, filter := range filters {
		i, filter := i, filter
		scope := filter.Scope()
		if node, ok := byPath[filter.SubscriptionPath]; ok {
			out[i] = subscriptionEntry{node: node, scope: scope}
			continue
		}

		group.Go(func() error {
			node, err := factory.CreateSubscriptionNode(groupCtx, scope)
			if err != nil {
				return fmt.Errorf("create subscription node %s: %w", filter.SubscriptionPath, err)
			}
			out[i] = subscriptionEntry{node: node, scope: scope}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
