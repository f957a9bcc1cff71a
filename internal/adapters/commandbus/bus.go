package commandbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cloudnav/accounttree/internal/ports"
)

type Handler func(ctx context.Context, args ...any) error

// Bus dispatches named host commands to registered handlers and holds
// the host-visible context flags.
type Bus struct {
	log logrus.FieldLogger

	mu       sync.RWMutex
	handlers map[string]Handler
	flags    map[string]bool
}

var _ ports.CommandBus = (*Bus)(nil)

func New(log logrus.FieldLogger) *Bus {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bus{
		log:      log.WithField("component", "commandbus"),
		handlers: map[string]Handler{},
		flags:    map[string]bool{},
	}
}

func (b *Bus) Register(command string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[command] = handler
}

func (b *Bus) Invoke(ctx context.Context, command string, args ...any) error {
	b.mu.RLock()
	handler, ok := b.handlers[command]
	b.mu.RUnlock()

	if !ok {
		return fmt.Errorf("unknown command %q", command)
	}

	b.log.WithField("command", command).Debug("invoking command")
	if err := handler(ctx, args...); err != nil {
		return fmt.Errorf("command %q: %w", command, err)
	}

	return nil
}

func (b *Bus) SetFlag(key string, value bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flags[key] = value
	b.log.WithFields(logrus.Fields{"flag": key, "value": value}).Debug("context flag set")
}

func (b *Bus) Flag(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.flags[key]
}
