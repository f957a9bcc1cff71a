package ports

import "context"

// CommandBus is the host command layer. Placeholder nodes carry command
// ids that the host invokes on selection; the engine itself only invokes
// commands for the install-provider flow.
type CommandBus interface {
	Invoke(ctx context.Context, command string, args ...any) error

	// SetFlag publishes a host-visible boolean context flag, e.g. the
	// provider-installed marker.
	SetFlag(key string, value bool)
}
