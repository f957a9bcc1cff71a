package tree

// DefaultProviderID is the well-known identifier of the account provider
// component this tree attaches to.
const DefaultProviderID = "cloudnav.account-provider"

// Commands names the host commands actionable placeholders invoke, plus
// the context flag published once the provider is confirmed installed.
type Commands struct {
	SignIn              string
	CreateAccount       string
	SelectSubscriptions string
	OpenProviderPage    string
	InstalledFlag       string
}

func DefaultCommands() Commands {
	return Commands{
		SignIn:              "accounttree.signIn",
		CreateAccount:       "accounttree.createAccount",
		SelectSubscriptions: "accounttree.selectSubscriptions",
		OpenProviderPage:    "accounttree.openProviderPage",
		InstalledFlag:       "accounttree.providerInstalled",
	}
}
