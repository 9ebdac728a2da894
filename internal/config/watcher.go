package config

import (
	"github.com/cyra/evlog/internal/fswatch"
)

// Logger defines the logging interface needed by the config watcher.
type Logger interface {
	Infof(string, ...any)
	Errorf(string, ...any)
}

// WatchFile reloads the config file at path into store whenever it changes.
// Command line overrides in keep are reapplied to every reloaded config.
// onReload, if set, runs after a successful swap. A failed reload keeps the
// previous config.
func WatchFile(path string, store *Store, keep func(*Config), logger Logger, onReload func(*Config)) (stop func(), err error) {
	return fswatch.Watch(path, fswatch.DefaultDebounce, func() {
		logger.Infof("config file change detected: %s", path)
		cfg, err := Load(path)
		if err == nil && keep != nil {
			keep(cfg)
			err = cfg.Validate()
		}
		if err != nil {
			logger.Errorf("failed to reload config: %v", err)
			return
		}
		store.Update(cfg)
		logger.Infof("config reloaded successfully")
		if onReload != nil {
			onReload(cfg)
		}
	}, func(err error) {
		logger.Errorf("config watcher error: %v", err)
	})
}
