package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

// WizardContext carries the subscription choice through a multi-step
// workflow. Once SubscriptionID is set the prompt step becomes a no-op,
// so re-entering a wizard never asks twice.
type WizardContext struct {
	Credentials             domain.Credentials
	SubscriptionDisplayName string
	SubscriptionID          string
	SubscriptionPath        string
	TenantID                string
	UserID                  string
	Environment             string
}

func (w *WizardContext) applyScope(scope domain.Scope) {
	w.Credentials = scope.Credentials
	w.SubscriptionDisplayName = scope.SubscriptionDisplayName
	w.SubscriptionID = scope.SubscriptionID
	w.SubscriptionPath = scope.SubscriptionPath
	w.TenantID = scope.TenantID
	w.UserID = scope.UserID
	w.Environment = scope.Environment
}

// Resolver implements the "pick one subscription" protocol other
// workflows embed as a wizard step.
type Resolver struct {
	root   *AccountNode
	picker ports.SubscriptionPicker
	bus    ports.CommandBus
}

func NewResolver(root *AccountNode, picker ports.SubscriptionPicker, bus ports.CommandBus) *Resolver {
	return &Resolver{root: root, picker: picker, bus: bus}
}

// ResolveStep materializes the subscription list if needed, then either
// resolves the choice directly or defers it to a prompt step.
//
// No provider installed: the install page is offered and the whole
// workflow is cancelled (domain.ErrUserCancelled), not failed. Exactly
// one subscription: its scope is copied into wiz and no step is returned.
// Otherwise the returned step shows an interactive picker constrained to
// subscription nodes.
func (r *Resolver) ResolveStep(ctx context.Context, wiz *WizardContext) (*PromptStep, error) {
	entries := r.root.snapshotEntries()
	if len(entries) == 0 {
		if _, err := r.root.GetChildren(ctx, true); err != nil {
			return nil, err
		}
		entries = r.root.snapshotEntries()
	}

	if installed, err := r.providerInstalled(ctx); err != nil {
		return nil, err
	} else if !installed {
		// Offer the install page, then cancel: the caller cannot proceed
		// and must not surface this as a fault.
		_ = r.bus.Invoke(ctx, r.root.commands.OpenProviderPage, r.root.providerID())
		return nil, fmt.Errorf("%w (%s): %w", domain.ErrProviderRequired, r.root.providerID(), domain.ErrUserCancelled)
	}

	switch len(entries) {
	case 0:
		return nil, domain.ErrNoSubscription
	case 1:
		wiz.applyScope(entries[0].scope)
		return nil, nil
	default:
		return &PromptStep{resolver: r}, nil
	}
}

func (r *Resolver) providerInstalled(ctx context.Context) (bool, error) {
	handle, err := r.root.gateway.acquire(ctx)
	if err != nil {
		return false, err
	}
	return handle != nil, nil
}

// PromptStep is the deferred interactive choice. A plain value with the
// owning resolver behind it; the in-flight wizard context is passed to
// each call rather than captured.
type PromptStep struct {
	resolver *Resolver
}

// ShouldPrompt reports whether the step still needs to run. False once a
// subscription id is already set, making the step skippable on re-entry.
func (s *PromptStep) ShouldPrompt(wiz *WizardContext) bool {
	return wiz.SubscriptionID == ""
}

// Prompt shows the picker over the current subscription nodes and copies
// the chosen subscription's scope into wiz.
func (s *PromptStep) Prompt(ctx context.Context, wiz *WizardContext) error {
	entries := s.resolver.root.snapshotEntries()
	nodes := lo.Map(entries, func(entry subscriptionEntry, _ int) ports.Node {
		return entry.node
	})

	picked, err := s.resolver.picker.Pick(ctx, nodes)
	if err != nil {
		return fmt.Errorf("pick subscription: %w", err)
	}

	for _, entry := range entries {
		if entry.node.ID() == picked.ID() {
			wiz.applyScope(entry.scope)
			return nil
		}
	}

	return fmt.Errorf("picked node %q is not a known subscription", picked.ID())
}
