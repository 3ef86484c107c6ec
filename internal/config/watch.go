package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/vango-dev/sticky/internal/errors"
)

// Watch watches the config file at path and emits every valid new version.
// Invalid edits are logged and skipped so a typo never takes the server
// down. The channel closes when ctx is done.
//
// The parent directory is watched rather than the file itself so editors
// that save by renaming a temporary file are seen.
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan *Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "config", "path", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.New("E106").Wrap(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.New("E106").Wrap(err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.New("E106").Wrap(err)
	}

	out := make(chan *Config)

	go func() {
		defer close(out)
		defer watcher.Close()

		var last []byte
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				data, err := os.ReadFile(abs)
				if err != nil {
					continue
				}
				if string(data) == string(last) {
					continue
				}

				cfg, err := Parse(data, formatOf(abs))
				if err != nil {
					logger.Warn("ignoring invalid config", "error", err)
					continue
				}
				last = data
				cfg.configPath = path

				select {
				case out <- cfg:
					logger.Info("config reloaded")
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "error", err)
			}
		}
	}()

	return out, nil
}
