package tree

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/cloudnav/accounttree/internal/ports"
)

// AccountNode is the root of the account view. It owns the provider
// handle, the refresh trigger, and the last materialized generation of
// subscription nodes.
//
// Child loading is not re-entrant: the host's caching layer is relied
// upon to serialize GetChildren calls per node. When overlapping passes
// do happen (a stale in-flight pass racing a newer one), the cached list
// is last-write-wins by completion order, not trigger order. That is an
// inherited hazard, kept as observed rather than fixed.
type AccountNode struct {
	log      logrus.FieldLogger
	factory  ports.NodeFactory
	commands Commands
	clock    ports.Clock

	gateway *gateway
	trigger *refreshTrigger

	mu           sync.Mutex
	entries      []subscriptionEntry
	lastChildren []ports.Node
	lastLoaded   time.Time
	disposed     bool
}

type Option func(*AccountNode)

func WithLogger(log logrus.FieldLogger) Option {
	return func(n *AccountNode) { n.log = log }
}

func WithCommands(cmds Commands) Option {
	return func(n *AccountNode) { n.commands = cmds }
}

func WithProviderID(id string) Option {
	return func(n *AccountNode) { n.gateway.providerID = id }
}

func WithClock(clock ports.Clock) Option {
	return func(n *AccountNode) { n.clock = clock }
}

func New(locator ports.ProviderLocator, factory ports.NodeFactory, bus ports.CommandBus, opts ...Option) *AccountNode {
	node := &AccountNode{
		log:      logrus.StandardLogger(),
		factory:  factory,
		commands: DefaultCommands(),
		clock:    ports.SystemClock{},
		gateway: &gateway{
			locator:    locator,
			bus:        bus,
			providerID: DefaultProviderID,
		},
	}
	node.trigger = newRefreshTrigger(logrus.StandardLogger())

	for _, opt := range opts {
		opt(node)
	}

	node.gateway.log = node.log
	node.gateway.flagKey = node.commands.InstalledFlag
	node.gateway.onFiltersChanged = node.trigger.filtersChanged
	node.gateway.onStatusChanged = node.trigger.statusChanged
	node.trigger.log = node.log

	return node
}

// Refreshes exposes the stream of pending refresh requests. The host
// drains it and re-invokes GetChildren with forceRefresh set.
func (n *AccountNode) Refreshes() <-chan struct{} {
	return n.trigger.Requests()
}

// GetChildren loads the node's children for the current provider state.
// With forceRefresh false a previously returned child list is served
// as-is; with true the status is re-projected and, when subscriptions are
// selectable, the subscription list is reconciled against the previous
// generation so unchanged nodes keep their identity.
func (n *AccountNode) GetChildren(ctx context.Context, forceRefresh bool) ([]ports.Node, error) {
	if n.isDisposed() {
		return nil, errors.New("account node is disposed")
	}
	if !forceRefresh {
		if children := n.cachedChildren(); children != nil {
			return children, nil
		}
	}

	handle, err := n.gateway.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		children := []ports.Node{installProviderPlaceholder(n.commands, n.gateway.providerID)}
		n.setLastChildren(children)
		return children, nil
	}

	proj, err := project(ctx, handle.provider, n.commands)
	if err != nil {
		return nil, err
	}
	if !proj.reconcile {
		n.setLastChildren(proj.children)
		return proj.children, nil
	}

	filters := handle.provider.Filters()
	entries, err := reconcile(ctx, n.snapshotEntries(), filters, n.factory)
	if err != nil {
		return nil, fmt.Errorf("reconcile subscriptions: %w", err)
	}

	children := lo.Map(entries, func(entry subscriptionEntry, _ int) ports.Node {
		return entry.node
	})
	n.setEntries(entries, children)

	return children, nil
}

// PickChild waits for the account's subscriptions to be ready, then
// returns the first child matching one of the wanted kinds, or nil when
// none does (including when no provider is installed).
func (n *AccountNode) PickChild(ctx context.Context, kinds ...ports.NodeKind) (ports.Node, error) {
	handle, err := n.gateway.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}

	if err := handle.provider.WaitForSubscriptions(ctx); err != nil {
		return nil, fmt.Errorf("wait for subscriptions: %w", err)
	}

	children, err := n.GetChildren(ctx, true)
	if err != nil {
		return nil, err
	}

	if len(kinds) == 0 {
		kinds = []ports.NodeKind{ports.NodeKindSubscription}
	}
	for _, child := range children {
		if lo.Contains(kinds, child.Kind()) {
			return child, nil
		}
	}

	return nil, nil
}

// Dispose tears down the provider handle, unsubscribing both event
// streams. The node must not be used afterwards.
func (n *AccountNode) Dispose() {
	n.mu.Lock()
	n.disposed = true
	n.mu.Unlock()

	n.gateway.close()
}

// Subscriptions returns the last materialized subscription nodes, in
// filter order. Empty before the first reconciliation pass.
func (n *AccountNode) Subscriptions() []ports.Node {
	n.mu.Lock()
	defer n.mu.Unlock()

	return lo.Map(n.entries, func(entry subscriptionEntry, _ int) ports.Node {
		return entry.node
	})
}

func (n *AccountNode) snapshotEntries() []subscriptionEntry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]subscriptionEntry(nil), n.entries...)
}

// setEntries publishes a completed reconciliation pass. Last write wins
// by completion order; see the type comment for the known hazard.
func (n *AccountNode) setEntries(entries []subscriptionEntry, children []ports.Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = entries
	n.lastChildren = children
	n.lastLoaded = n.clock.Now()
}

func (n *AccountNode) setLastChildren(children []ports.Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lastChildren = children
	n.lastLoaded = n.clock.Now()
}

// LastLoaded is the completion time of the most recent child load; zero
// before the first one.
func (n *AccountNode) LastLoaded() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastLoaded
}

func (n *AccountNode) isDisposed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.disposed
}

func (n *AccountNode) cachedChildren() []ports.Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastChildren
}

func (n *AccountNode) providerID() string {
	return n.gateway.providerID
}
