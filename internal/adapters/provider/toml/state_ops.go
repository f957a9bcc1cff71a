package toml

import (
	"context"

	"github.com/cloudnav/accounttree/internal/domain"
)

// State mutation helpers. In a real deployment the external account
// extension owns sign-in; these exist so the file-backed stand-in can be
// driven from the CLI.

func (p *Provider) SignIn(ctx context.Context) error {
	return p.updateState(ctx, func(file *fileSchema) {
		file.Status = string(domain.StatusLoggedIn)
	})
}

func (p *Provider) SignOut(ctx context.Context) error {
	return p.updateState(ctx, func(file *fileSchema) {
		file.Status = string(domain.StatusLoggedOut)
	})
}

// SelectFilters replaces the selected subscription filters, keeping the
// order given.
func (p *Provider) SelectFilters(ctx context.Context, filters []domain.Filter) error {
	return p.updateState(ctx, func(file *fileSchema) {
		file.Filters = file.Filters[:0]
		for _, filter := range filters {
			file.Filters = append(file.Filters, filterSchema{
				SubscriptionPath: filter.SubscriptionPath,
				DisplayName:      filter.DisplayName,
			})
		}
	})
}

func (p *Provider) updateState(ctx context.Context, mutate func(*fileSchema)) error {
	file, err := p.readState()
	if err != nil {
		return err
	}

	mutate(&file)
	if err := file.validate(); err != nil {
		return err
	}

	if err := writeState(p.statePath, file); err != nil {
		return err
	}

	return p.load(ctx)
}
