package toml

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the state file whenever it changes on disk, turning
// external edits into status/filters-changed events. The parent
// directory is watched rather than the file itself so atomic
// write-then-rename updates are seen. Blocks until ctx is done.
func (p *Provider) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create state watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(p.statePath)); err != nil {
		return fmt.Errorf("watch provider state directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != p.statePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := p.load(ctx); err != nil {
				p.log.WithError(err).Warn("reload provider state")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.log.WithError(err).Warn("provider state watcher")
		}
	}
}
