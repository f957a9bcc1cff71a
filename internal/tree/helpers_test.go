package tree

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type subNode struct {
	id    string
	label string
}

func (n *subNode) ID() string           { return n.id }
func (n *subNode) Label() string        { return n.label }
func (n *subNode) Kind() ports.NodeKind { return ports.NodeKindSubscription }

func testFilter(path, name string) domain.Filter {
	return domain.Filter{
		SubscriptionPath: path,
		SubscriptionID:   domain.BareSubscriptionID(path),
		DisplayName:      name,
		Session: domain.Session{
			Credentials: staticCredentials("token-" + name),
			TenantID:    "tenant-1",
			UserID:      "user@example.com",
			Environment: "PublicCloud",
		},
	}
}

type staticCredentials string

func (c staticCredentials) Token() string { return string(c) }

type fakeProvider struct {
	mu              sync.Mutex
	status          domain.Status
	filters         []domain.Filter
	waitForFilters  int
	waitForSubs     int
	filterListeners map[int]func()
	statusListeners map[int]func(domain.Status)
	nextListener    int
}

var _ ports.AccountProvider = (*fakeProvider)(nil)

func newFakeProvider(status domain.Status, filters ...domain.Filter) *fakeProvider {
	return &fakeProvider{
		status:          status,
		filters:         filters,
		filterListeners: map[int]func(){},
		statusListeners: map[int]func(domain.Status){},
	}
}

func (p *fakeProvider) Status() domain.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *fakeProvider) Filters() []domain.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Filter(nil), p.filters...)
}

func (p *fakeProvider) WaitForFilters(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waitForFilters++
	return nil
}

func (p *fakeProvider) WaitForSubscriptions(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waitForSubs++
	return nil
}

func (p *fakeProvider) OnFiltersChanged(fn func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextListener
	p.nextListener++
	p.filterListeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.filterListeners, id)
	}
}

func (p *fakeProvider) OnStatusChanged(fn func(domain.Status)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextListener
	p.nextListener++
	p.statusListeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.statusListeners, id)
	}
}

func (p *fakeProvider) setState(status domain.Status, filters ...domain.Filter) {
	p.mu.Lock()
	p.status = status
	p.filters = filters
	p.mu.Unlock()
}

func (p *fakeProvider) emitFiltersChanged() {
	p.mu.Lock()
	listeners := make([]func(), 0, len(p.filterListeners))
	for _, fn := range p.filterListeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (p *fakeProvider) emitStatusChanged(status domain.Status) {
	p.mu.Lock()
	listeners := make([]func(domain.Status), 0, len(p.statusListeners))
	for _, fn := range p.statusListeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(status)
	}
}

func (p *fakeProvider) listenerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.filterListeners) + len(p.statusListeners)
}

type fakeLocator struct {
	mu       sync.Mutex
	provider ports.AccountProvider
	err      error
	calls    int
}

var _ ports.ProviderLocator = (*fakeLocator)(nil)

func (l *fakeLocator) Locate(context.Context, string) (ports.AccountProvider, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.provider, nil
}

func (l *fakeLocator) locateCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

type invokedCommand struct {
	command string
	args    []any
}

type fakeBus struct {
	mu       sync.Mutex
	invoked  []invokedCommand
	flags    map[string]bool
	flagSets []string
}

var _ ports.CommandBus = (*fakeBus)(nil)

func newFakeBus() *fakeBus {
	return &fakeBus{flags: map[string]bool{}}
}

func (b *fakeBus) Invoke(_ context.Context, command string, args ...any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invoked = append(b.invoked, invokedCommand{command: command, args: args})
	return nil
}

func (b *fakeBus) SetFlag(key string, value bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flags[key] = value
	b.flagSets = append(b.flagSets, key)
}

func (b *fakeBus) flagSetCount(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, set := range b.flagSets {
		if set == key {
			count++
		}
	}
	return count
}

func (b *fakeBus) invokedCommands() []invokedCommand {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]invokedCommand(nil), b.invoked...)
}

type fakeFactory struct {
	mu      sync.Mutex
	created []string
	err     error
}

var _ ports.NodeFactory = (*fakeFactory)(nil)

func (f *fakeFactory) CreateSubscriptionNode(_ context.Context, scope domain.Scope) (ports.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, scope.SubscriptionPath)
	return &subNode{id: scope.SubscriptionPath, label: scope.SubscriptionDisplayName}, nil
}

func (f *fakeFactory) createdPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.created...)
}

type fakePicker struct {
	pick ports.Node
	err  error
}

var _ ports.SubscriptionPicker = (*fakePicker)(nil)

func (p *fakePicker) Pick(_ context.Context, nodes []ports.Node) (ports.Node, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.pick != nil {
		return p.pick, nil
	}
	return nodes[0], nil
}
