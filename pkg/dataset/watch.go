package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the datasets directory whenever a CSV or manifest in
// it changes, until the context is done. Reload failures are logged
// and the previous directory set stays live.
func (r *Registry) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	r.log.Info().Str("dir", dir).Msg("watching datasets directory")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDatasetFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			r.log.Info().
				Str("file", filepath.Base(event.Name)).
				Str("op", event.Op.String()).
				Msg("datasets changed, reloading")
			if err := r.LoadDir(dir); err != nil {
				r.log.Error().Err(err).Msg("failed to reload datasets")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Error().Err(err).Msg("watcher error")
		case <-ctx.Done():
			return nil
		}
	}
}

func isDatasetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".yml", ".yaml":
		return true
	}
	return false
}
