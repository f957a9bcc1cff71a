package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudnav/accounttree/internal/domain"
)

func TestResolveStepSingleSubscriptionResolvesDirectly(t *testing.T) {
	provider := newFakeProvider(domain.StatusLoggedIn, testFilter("/subscriptions/1", "One"))
	node := newTestNode(&fakeLocator{provider: provider}, &fakeFactory{}, newFakeBus())
	resolver := NewResolver(node, &fakePicker{}, newFakeBus())

	wiz := &WizardContext{}
	step, err := resolver.ResolveStep(context.Background(), wiz)
	require.NoError(t, err)

	assert.Nil(t, step, "a single subscription needs no prompting")
	assert.Equal(t, "1", wiz.SubscriptionID)
	assert.Equal(t, "/subscriptions/1", wiz.SubscriptionPath)
	assert.Equal(t, "One", wiz.SubscriptionDisplayName)
	assert.Equal(t, "tenant-1", wiz.TenantID)
	assert.Equal(t, "user@example.com", wiz.UserID)
	assert.Equal(t, "PublicCloud", wiz.Environment)
	require.NotNil(t, wiz.Credentials)
	assert.Equal(t, "token-One", wiz.Credentials.Token())
}

func TestResolveStepForcesMaterialization(t *testing.T) {
	provider := newFakeProvider(domain.StatusLoggedIn, testFilter("/subscriptions/1", "One"))
	factory := &fakeFactory{}
	node := newTestNode(&fakeLocator{provider: provider}, factory, newFakeBus())
	resolver := NewResolver(node, &fakePicker{}, newFakeBus())

	_, err := resolver.ResolveStep(context.Background(), &WizardContext{})
	require.NoError(t, err)

	assert.Equal(t, []string{"/subscriptions/1"}, factory.createdPaths(),
		"resolver loads children when the list was never materialized")
}

func TestResolveStepMultipleSubscriptionsReturnsPromptStep(t *testing.T) {
	provider := newFakeProvider(domain.StatusLoggedIn,
		testFilter("/subscriptions/1", "One"),
		testFilter("/subscriptions/2", "Two"),
	)
	node := newTestNode(&fakeLocator{provider: provider}, &fakeFactory{}, newFakeBus())
	picker := &fakePicker{}
	resolver := NewResolver(node, picker, newFakeBus())

	wiz := &WizardContext{}
	step, err := resolver.ResolveStep(context.Background(), wiz)
	require.NoError(t, err)
	require.NotNil(t, step)

	assert.True(t, step.ShouldPrompt(wiz))

	subscriptions := node.Subscriptions()
	picker.pick = subscriptions[1]
	require.NoError(t, step.Prompt(context.Background(), wiz))

	assert.Equal(t, "2", wiz.SubscriptionID)
	assert.Equal(t, "Two", wiz.SubscriptionDisplayName)
	assert.False(t, step.ShouldPrompt(wiz), "step is skippable once a subscription id is set")
}

func TestPromptPropagatesPickerCancellation(t *testing.T) {
	provider := newFakeProvider(domain.StatusLoggedIn,
		testFilter("/subscriptions/1", "One"),
		testFilter("/subscriptions/2", "Two"),
	)
	node := newTestNode(&fakeLocator{provider: provider}, &fakeFactory{}, newFakeBus())
	picker := &fakePicker{err: domain.ErrUserCancelled}
	resolver := NewResolver(node, picker, newFakeBus())

	step, err := resolver.ResolveStep(context.Background(), &WizardContext{})
	require.NoError(t, err)
	require.NotNil(t, step)

	err = step.Prompt(context.Background(), &WizardContext{})
	require.ErrorIs(t, err, domain.ErrUserCancelled)
}

func TestResolveStepProviderAbsentOffersInstallThenCancels(t *testing.T) {
	bus := newFakeBus()
	node := newTestNode(&fakeLocator{}, &fakeFactory{}, newFakeBus())
	resolver := NewResolver(node, &fakePicker{}, bus)

	_, err := resolver.ResolveStep(context.Background(), &WizardContext{})

	require.ErrorIs(t, err, domain.ErrUserCancelled)
	require.ErrorIs(t, err, domain.ErrProviderRequired)

	invoked := bus.invokedCommands()
	require.Len(t, invoked, 1)
	assert.Equal(t, DefaultCommands().OpenProviderPage, invoked[0].command)
	assert.Equal(t, []any{DefaultProviderID}, invoked[0].args)
}

func TestResolveStepNoSubscriptionsSignedIn(t *testing.T) {
	provider := newFakeProvider(domain.StatusLoggedIn)
	node := newTestNode(&fakeLocator{provider: provider}, &fakeFactory{}, newFakeBus())
	resolver := NewResolver(node, &fakePicker{}, newFakeBus())

	_, err := resolver.ResolveStep(context.Background(), &WizardContext{})
	require.ErrorIs(t, err, domain.ErrNoSubscription)
}
