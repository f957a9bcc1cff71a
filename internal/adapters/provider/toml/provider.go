package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

const (
	configName       = "config"
	configType       = "toml"
	statePathKey     = "provider.state_path"
	stateConfigDir   = ".accounttree"
	stateConfigFile  = "provider.toml"
	stateFileMode    = 0o600
	stateDirMode     = 0o700
	tempStatePattern = ".provider-*.toml.tmp"
)

// Provider is a file-backed account provider: sign-in status and the
// selected subscription filters live in a TOML state file, and external
// edits to that file surface as status/filters-changed events. It stands
// in for the real account extension during development and in tests.
type Provider struct {
	log       logrus.FieldLogger
	statePath string
	creds     ports.CredentialSource

	mu         sync.Mutex
	status     domain.Status
	filters    []domain.Filter
	raw        fileSchema
	ready      bool
	changed    chan struct{}
	listenerID int

	filterListeners map[int]func()
	statusListeners map[int]func(domain.Status)
}

var _ ports.AccountProvider = (*Provider)(nil)

func NewProvider(cfg *viper.Viper, creds ports.CredentialSource, log logrus.FieldLogger) (*Provider, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, stateConfigDir, stateConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, stateConfigDir))
	cfg.SetDefault(statePathKey, defaultPath)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	statePath := cfg.GetString(statePathKey)
	if statePath == "" {
		return nil, errors.New("provider state path is empty")
	}
	statePath, err = filepath.Abs(statePath)
	if err != nil {
		return nil, fmt.Errorf("resolve provider state path: %w", err)
	}

	return &Provider{
		log:             log.WithField("component", "toml-provider"),
		statePath:       filepath.Clean(statePath),
		creds:           creds,
		changed:         make(chan struct{}),
		filterListeners: map[int]func(){},
		statusListeners: map[int]func(domain.Status){},
	}, nil
}

func (p *Provider) StatePath() string { return p.statePath }

func (p *Provider) Status() domain.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Provider) Filters() []domain.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Filter(nil), p.filters...)
}

// WaitForFilters blocks until the filter list has been read for a
// signed-in session.
func (p *Provider) WaitForFilters(ctx context.Context) error {
	return p.waitFor(ctx, func() bool {
		return p.ready
	})
}

// WaitForSubscriptions blocks until the account is signed in and its
// filter list is known.
func (p *Provider) WaitForSubscriptions(ctx context.Context) error {
	return p.waitFor(ctx, func() bool {
		return p.ready && p.status.SignedIn()
	})
}

// waitFor blocks until done (evaluated under the provider lock) holds.
func (p *Provider) waitFor(ctx context.Context, done func() bool) error {
	for {
		p.mu.Lock()
		ok := done()
		changed := p.changed
		p.mu.Unlock()

		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

func (p *Provider) OnFiltersChanged(fn func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.listenerID
	p.listenerID++
	p.filterListeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.filterListeners, id)
	}
}

func (p *Provider) OnStatusChanged(fn func(domain.Status)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.listenerID
	p.listenerID++
	p.statusListeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.statusListeners, id)
	}
}

// load reads the state file and publishes the resulting status and
// filter list, notifying listeners about what changed. Status listeners
// fire before filter listeners so the loggedIn transition is always
// followed by its filters-changed event.
func (p *Provider) load(ctx context.Context) error {
	file, err := p.readState()
	if err != nil {
		return err
	}

	filters, err := p.decodeFilters(ctx, file)
	if err != nil {
		return err
	}

	status := domain.Status(file.Status)

	p.mu.Lock()
	statusChanged := p.status != status
	filtersChanged := !slices.Equal(p.raw.Filters, file.Filters) || p.raw.Session != file.Session
	// Signing in must always be followed by a filters-changed event, even
	// when the selected list is empty or unchanged. Consumers suppress
	// refreshes on the loggedIn status event and wait for this one.
	filtersChanged = filtersChanged || (statusChanged && status.SignedIn())
	p.status = status
	p.filters = filters
	p.raw = file
	p.ready = status.SignedIn()

	close(p.changed)
	p.changed = make(chan struct{})

	statusListeners := make([]func(domain.Status), 0, len(p.statusListeners))
	for _, fn := range p.statusListeners {
		statusListeners = append(statusListeners, fn)
	}
	filterListeners := make([]func(), 0, len(p.filterListeners))
	for _, fn := range p.filterListeners {
		filterListeners = append(filterListeners, fn)
	}
	p.mu.Unlock()

	if statusChanged {
		p.log.WithField("status", status).Debug("provider status changed")
		for _, fn := range statusListeners {
			fn(status)
		}
	}
	if filtersChanged {
		p.log.WithField("filters", len(filters)).Debug("provider filters changed")
		for _, fn := range filterListeners {
			fn()
		}
	}

	return nil
}

func (p *Provider) readState() (fileSchema, error) {
	data, err := os.ReadFile(p.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read provider state: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode provider state: %w", err)
	}
	file.applyDefaults()
	if err := file.validate(); err != nil {
		return fileSchema{}, err
	}

	return file, nil
}

func (p *Provider) decodeFilters(ctx context.Context, file fileSchema) ([]domain.Filter, error) {
	var creds domain.Credentials
	if file.Session.CredentialRef != "" && p.creds != nil {
		resolved, err := p.creds.Resolve(ctx, file.Session.CredentialRef)
		if err != nil {
			return nil, fmt.Errorf("resolve session credentials: %w", err)
		}
		creds = resolved
	}

	session := domain.Session{
		Credentials: creds,
		TenantID:    file.Session.TenantID,
		UserID:      file.Session.UserID,
		Environment: file.Session.Environment,
	}

	filters := make([]domain.Filter, 0, len(file.Filters))
	for _, entry := range file.Filters {
		filters = append(filters, domain.Filter{
			SubscriptionPath: entry.SubscriptionPath,
			SubscriptionID:   domain.BareSubscriptionID(entry.SubscriptionPath),
			DisplayName:      entry.DisplayName,
			Session:          session,
		})
	}

	return filters, nil
}
