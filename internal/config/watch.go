package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// WatchReload watches path (a bangs table, linear model file, or config
// file) for writes and invokes onChange after each one. It runs until ctx
// is cancelled or the watcher errors out, and never calls onChange
// concurrently with a prior invocation still in flight.
func WatchReload(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher for %s: %w", path, err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}
