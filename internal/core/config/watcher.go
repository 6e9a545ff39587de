package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/colonyops/frontdesk/internal/core/logging"
)

const debounceDelay = 100 * time.Millisecond

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Config)
	logger   zerolog.Logger

	mu       sync.Mutex
	debounce *time.Timer

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Watch starts watching configPath. onChange receives every successfully
// loaded and validated config; files that fail to load are logged and
// skipped so the previous config stays in effect.
//
// The parent directory is watched rather than the file because editors
// commonly replace files by renaming over them.
func Watch(ctx context.Context, configPath string, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(configPath)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(configPath), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     filepath.Clean(configPath),
		watcher:  fw,
		onChange: onChange,
		logger:   logging.Component("config"),
		cancel:   cancel,
	}

	w.wg.Add(1)
	go w.run(ctx)

	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", w.path).Msg("config reload failed; keeping previous config")
		return
	}

	w.logger.Info().Str("path", w.path).Msg("config reloaded")
	w.onChange(cfg)
}
