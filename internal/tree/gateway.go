package tree

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

// gateway lazily locates and activates the account provider and owns the
// resulting handle for the lifetime of one root node.
type gateway struct {
	locator    ports.ProviderLocator
	bus        ports.CommandBus
	log        logrus.FieldLogger
	providerID string
	flagKey    string

	onFiltersChanged func()
	onStatusChanged  func(domain.Status)

	mu      sync.Mutex
	handle  *providerHandle
	flagSet bool
}

// providerHandle wraps an acquired provider together with the unsubscribe
// functions for its two event streams.
type providerHandle struct {
	provider    ports.AccountProvider
	unsubscribe []func()
}

func (h *providerHandle) close() {
	for _, unsubscribe := range h.unsubscribe {
		unsubscribe()
	}
	h.unsubscribe = nil
}

// acquire returns the provider handle, locating and activating the
// provider on first use. A nil handle with nil error means no provider is
// installed. Activation failures are terminal for this attempt; the next
// acquire retries from scratch.
func (g *gateway) acquire(ctx context.Context) (*providerHandle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.handle != nil {
		return g.handle, nil
	}

	provider, err := g.locator.Locate(ctx, g.providerID)
	if err != nil {
		return nil, fmt.Errorf("%w: locate %q: %w", domain.ErrActivationFailed, g.providerID, err)
	}
	if provider == nil {
		g.log.WithField("provider", g.providerID).Debug("account provider not installed")
		return nil, nil
	}

	handle := &providerHandle{provider: provider}
	handle.unsubscribe = append(handle.unsubscribe,
		provider.OnFiltersChanged(g.onFiltersChanged),
		provider.OnStatusChanged(g.onStatusChanged),
	)
	g.handle = handle

	if !g.flagSet {
		g.bus.SetFlag(g.flagKey, true)
		g.flagSet = true
	}
	g.log.WithField("provider", g.providerID).Debug("account provider acquired")

	return handle, nil
}

func (g *gateway) close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.handle != nil {
		g.handle.close()
		g.handle = nil
	}
}
