package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudnav/accounttree/internal/domain"
)

func placeholderIDs(proj projection) []string {
	ids := make([]string, 0, len(proj.children))
	for _, child := range proj.children {
		ids = append(ids, child.ID())
	}
	return ids
}

func TestProjectInitializing(t *testing.T) {
	provider := newFakeProvider(domain.StatusInitializing)

	proj, err := project(context.Background(), provider, DefaultCommands())
	require.NoError(t, err)

	require.Equal(t, []string{"loading"}, placeholderIDs(proj))
	placeholder := proj.children[0].(Placeholder)
	assert.Empty(t, placeholder.Command(), "loading placeholder is not actionable")
}

func TestProjectLoggingInReTriggersSignIn(t *testing.T) {
	provider := newFakeProvider(domain.StatusLoggingIn)
	cmds := DefaultCommands()

	proj, err := project(context.Background(), provider, cmds)
	require.NoError(t, err)

	require.Equal(t, []string{"signingIn"}, placeholderIDs(proj))
	assert.Equal(t, cmds.SignIn, proj.children[0].(Placeholder).Command())
}

func TestProjectLoggedOutIsSignInThenCreateAccount(t *testing.T) {
	provider := newFakeProvider(domain.StatusLoggedOut)
	cmds := DefaultCommands()

	proj, err := project(context.Background(), provider, cmds)
	require.NoError(t, err)

	require.Equal(t, []string{"signIn", "createAccount"}, placeholderIDs(proj))
	assert.Equal(t, cmds.SignIn, proj.children[0].(Placeholder).Command())
	assert.Equal(t, cmds.CreateAccount, proj.children[1].(Placeholder).Command())
}

func TestProjectLoggedInWithoutFiltersWaitsThenPromptsSelection(t *testing.T) {
	provider := newFakeProvider(domain.StatusLoggedIn)
	cmds := DefaultCommands()

	proj, err := project(context.Background(), provider, cmds)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.waitForFilters, "must await filter readiness before declaring none selected")
	require.Equal(t, []string{"selectSubscriptions"}, placeholderIDs(proj))
	assert.Equal(t, cmds.SelectSubscriptions, proj.children[0].(Placeholder).Command())
}

func TestProjectLoggedInWithFiltersSignalsReconcile(t *testing.T) {
	provider := newFakeProvider(domain.StatusLoggedIn, testFilter("/subscriptions/1", "One"))

	proj, err := project(context.Background(), provider, DefaultCommands())
	require.NoError(t, err)

	assert.True(t, proj.reconcile)
	assert.Empty(t, proj.children)
}

func TestProjectUnknownStatus(t *testing.T) {
	provider := newFakeProvider(domain.Status("weird"))

	_, err := project(context.Background(), provider, DefaultCommands())
	require.Error(t, err)
}
