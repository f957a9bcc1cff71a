package toml

import (
	"context"
	"sync"

	"github.com/cloudnav/accounttree/internal/ports"
)

// Locator exposes a Provider under its well-known identifier and
// performs activation (the first state load) on demand. Activation
// happens at most once on success; a failed activation is retried by the
// next Locate call.
type Locator struct {
	provider *Provider
	id       string

	mu        sync.Mutex
	activated bool
}

var _ ports.ProviderLocator = (*Locator)(nil)

func NewLocator(provider *Provider, id string) *Locator {
	return &Locator{provider: provider, id: id}
}

func (l *Locator) Locate(ctx context.Context, providerID string) (ports.AccountProvider, error) {
	if providerID != l.id {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.activated {
		if err := l.provider.load(ctx); err != nil {
			return nil, err
		}
		l.activated = true
	}

	return l.provider, nil
}
