package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeSignedOutShowsBothActions(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeProviderFixture(home, `version = 1
status = "loggedOut"
`))

	stdout, _, err := executeCLI(t, home, "tree")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sign in to your account...")
	assert.Contains(t, stdout, "Create a free account...")
	assert.Contains(t, stdout, "status: loggedOut")
}

func TestTreeSignedInJSONListsSubscriptions(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeProviderFixture(home, signedInFixture))

	stdout, _, err := executeCLI(t, home, "tree", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"id\": \"/subscriptions/1111\"")
	assert.Contains(t, stdout, "\"label\": \"Production\"")
	assert.Contains(t, stdout, "\"kind\": \"subscription\"")
}

func TestPickSingleSubscriptionResolvesWithoutPrompt(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeProviderFixture(home, `version = 1
status = "loggedIn"

[session]
tenant_id = "tenant-1"
user_id = "user@example.com"
environment = "PublicCloud"

[[filters]]
subscription_path = "/subscriptions/1111"
display_name = "Production"
`))

	stdout, _, err := executeCLI(t, home, "pick", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"subscription_id\": \"1111\"")
	assert.Contains(t, stdout, "\"display_name\": \"Production\"")
	assert.Contains(t, stdout, "\"tenant_id\": \"tenant-1\"")
}

func TestAccountStatusReportsFilters(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeProviderFixture(home, signedInFixture))

	stdout, _, err := executeCLI(t, home, "account", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "loggedIn")
	assert.Contains(t, stdout, "2 filter(s)")
}

func TestSignInThenTreePromptsSubscriptionSelection(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeProviderFixture(home, `version = 1
status = "loggedOut"
`))

	_, _, err := executeCLI(t, home, "account", "sign-in")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "tree")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Select subscriptions...")
}

func TestSeedThenTreeListsDemoSubscriptions(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "seed")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "tree")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sandbox")
	assert.Contains(t, stdout, "Staging")
	assert.Contains(t, stdout, "Production")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

const signedInFixture = `version = 1
status = "loggedIn"

[session]
tenant_id = "tenant-1"
user_id = "user@example.com"
environment = "PublicCloud"

[[filters]]
subscription_path = "/subscriptions/1111"
display_name = "Production"

[[filters]]
subscription_path = "/subscriptions/2222"
display_name = "Staging"
`

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeProviderFixture(home, state string) error {
	configDir := filepath.Join(home, ".accounttree")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "provider.toml"), []byte(state), 0o600)
}
