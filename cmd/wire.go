package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/cloudnav/accounttree/internal/adapters/commandbus"
	credfile "github.com/cloudnav/accounttree/internal/adapters/credentials/file"
	"github.com/cloudnav/accounttree/internal/adapters/picker"
	providertoml "github.com/cloudnav/accounttree/internal/adapters/provider/toml"
	treerender "github.com/cloudnav/accounttree/internal/adapters/render/tree"
	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
	"github.com/cloudnav/accounttree/internal/tree"
)

type app struct {
	log        *logrus.Logger
	provider   *providertoml.Provider
	bus        *commandbus.Bus
	node       *tree.AccountNode
	resolver   *tree.Resolver
	renderer   func([]ports.Node, treerender.RenderOptions) (string, error)
	providerID string
	commands   tree.Commands
}

func wireApp() (*app, error) {
	log := logrus.New()
	if level, err := logrus.ParseLevel(envOrDefault("ACCOUNTTREE_LOG", "warning")); err == nil {
		log.SetLevel(level)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	creds := credfile.NewSource(filepath.Join(homeDir, ".accounttree", "credentials"))

	cfg := viper.New()
	provider, err := providertoml.NewProvider(cfg, creds, log)
	if err != nil {
		return nil, fmt.Errorf("wire account provider: %w", err)
	}

	providerID := envOrDefault("ACCOUNTTREE_PROVIDER_ID", tree.DefaultProviderID)
	locator := providertoml.NewLocator(provider, providerID)

	commands := tree.DefaultCommands()
	bus := commandbus.New(log)
	registerCommands(bus, provider, commands, log)

	node := tree.New(locator, subscriptionFactory(), bus,
		tree.WithLogger(log),
		tree.WithCommands(commands),
		tree.WithProviderID(providerID),
	)

	return &app{
		log:        log,
		provider:   provider,
		bus:        bus,
		node:       node,
		resolver:   tree.NewResolver(node, picker.New(), bus),
		renderer:   treerender.Render,
		providerID: providerID,
		commands:   commands,
	}, nil
}

// registerCommands wires the actionable placeholder commands against the
// file-backed provider so they do something useful from a terminal.
func registerCommands(bus *commandbus.Bus, provider *providertoml.Provider, commands tree.Commands, log *logrus.Logger) {
	bus.Register(commands.SignIn, func(ctx context.Context, _ ...any) error {
		return provider.SignIn(ctx)
	})
	bus.Register(commands.CreateAccount, func(_ context.Context, _ ...any) error {
		log.Info("create an account at https://portal.example.com/signup")
		return nil
	})
	bus.Register(commands.SelectSubscriptions, func(_ context.Context, _ ...any) error {
		log.Infof("edit %s to select subscriptions", provider.StatePath())
		return nil
	})
	bus.Register(commands.OpenProviderPage, func(_ context.Context, args ...any) error {
		id := "unknown"
		if len(args) > 0 {
			if s, ok := args[0].(string); ok {
				id = s
			}
		}
		log.Infof("install the account provider %q and retry", id)
		return nil
	})
}

// subscriptionNode is the CLI deployment's subscription subtree root.
// Real hosts plug in their own factory with full subtrees.
type subscriptionNode struct {
	id    string
	label string
}

func (n *subscriptionNode) ID() string           { return n.id }
func (n *subscriptionNode) Label() string        { return n.label }
func (n *subscriptionNode) Kind() ports.NodeKind { return ports.NodeKindSubscription }

func subscriptionFactory() ports.NodeFactory {
	return ports.NodeFactoryFunc(func(_ context.Context, scope domain.Scope) (ports.Node, error) {
		return &subscriptionNode{id: scope.SubscriptionPath, label: scope.SubscriptionDisplayName}, nil
	})
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
