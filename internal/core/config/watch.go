package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the config file when it changes on disk. Reloads that fail
// to parse or validate are logged and skipped; the last good config stays
// in effect.
type Watcher struct {
	path     string
	logger   zerolog.Logger
	onChange func(*Config)
	debounce time.Duration
}

// NewWatcher creates a Watcher for path. onChange is invoked from the watcher
// goroutine with each successfully reloaded config.
func NewWatcher(path string, logger zerolog.Logger, onChange func(*Config)) *Watcher {
	return &Watcher{
		path:     path,
		logger:   logger,
		onChange: onChange,
		debounce: reloadDebounce,
	}
}

// Run watches until ctx is cancelled. The parent directory is watched rather
// than the file so that editors which replace the file on save are handled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.path == "" {
		return errors.New("no config path to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	target := filepath.Clean(w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				w.reload()
			})
			mu.Unlock()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Str("path", w.path).Msg("config watcher error")
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", w.path).Msg("config reload failed, keeping previous config")
		return
	}

	w.logger.Info().Str("path", w.path).Msg("config reloaded")
	w.onChange(cfg)
}
