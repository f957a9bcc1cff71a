package tree

import "github.com/cloudnav/accounttree/internal/ports"

// Placeholder is a transient, status-derived child. Placeholders are
// rebuilt from the current status on every refresh and never cached, so
// status flicker is harmless.
type Placeholder struct {
	id      string
	label   string
	command string
	args    []any
}

var _ ports.Node = Placeholder{}

func (p Placeholder) ID() string           { return p.id }
func (p Placeholder) Label() string        { return p.label }
func (p Placeholder) Kind() ports.NodeKind { return ports.NodeKindPlaceholder }

// Command is the host command invoked when the placeholder is selected;
// empty for non-actionable placeholders.
func (p Placeholder) Command() string    { return p.command }
func (p Placeholder) CommandArgs() []any { return p.args }

func installProviderPlaceholder(cmds Commands, providerID string) Placeholder {
	return Placeholder{
		id:      "installProvider",
		label:   "Install the account provider...",
		command: cmds.OpenProviderPage,
		args:    []any{providerID},
	}
}

func loadingPlaceholder() Placeholder {
	return Placeholder{id: "loading", label: "Loading..."}
}

func signingInPlaceholder(cmds Commands) Placeholder {
	return Placeholder{
		id:      "signingIn",
		label:   "Waiting for sign-in...",
		command: cmds.SignIn,
	}
}

func signInPlaceholder(cmds Commands) Placeholder {
	return Placeholder{
		id:      "signIn",
		label:   "Sign in to your account...",
		command: cmds.SignIn,
	}
}

func createAccountPlaceholder(cmds Commands) Placeholder {
	return Placeholder{
		id:      "createAccount",
		label:   "Create a free account...",
		command: cmds.CreateAccount,
	}
}

func selectSubscriptionsPlaceholder(cmds Commands) Placeholder {
	return Placeholder{
		id:      "selectSubscriptions",
		label:   "Select subscriptions...",
		command: cmds.SelectSubscriptions,
	}
}
