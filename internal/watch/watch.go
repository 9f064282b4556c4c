// Package watch reloads the dictionary when its file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/translate"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a dictionary file into a translate.Session.
type Watcher struct {
	session  *translate.Session
	logger   *slog.Logger
	debounce time.Duration

	mu       sync.Mutex
	path     string
	retarget chan struct{}

	// OnReload, if set, is called after every reload attempt with the
	// path that was read.
	OnReload func(path string, d *dictionary.Dictionary, err error)
}

// New creates a watcher for path.
func New(path string, session *translate.Session, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     path,
		session:  session,
		logger:   logger,
		debounce: DefaultDebounce,
		retarget: make(chan struct{}, 1),
	}
}

// Path returns the file being watched.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Retarget switches the watcher to path, e.g. after another dictionary
// was opened. Changes to the old file are ignored from then on.
func (w *Watcher) Retarget(path string) {
	w.mu.Lock()
	w.path = path
	w.mu.Unlock()

	select {
	case w.retarget <- struct{}{}:
	default:
	}
}

// SetDebounce changes the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches until ctx is cancelled. The parent directory is watched so
// that editors which replace the file by rename are still seen. A reload
// that fails leaves the current translator in place.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	target := filepath.Clean(w.Path())
	dir := filepath.Dir(target)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.logger.Info("watching dictionary", "path", target)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("dictionary changed", "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-w.retarget:
			timer.Stop()
			next := filepath.Clean(w.Path())
			if next == target {
				continue
			}
			if nextDir := filepath.Dir(next); nextDir != dir {
				if err := fw.Add(nextDir); err != nil {
					return fmt.Errorf("watching %s: %w", nextDir, err)
				}
				fw.Remove(dir)
				dir = nextDir
			}
			target = next
			w.logger.Info("watching dictionary", "path", target)

		case <-timer.C:
			w.reload(target)
		}
	}
}

func (w *Watcher) reload(path string) {
	// A retarget that raced the timer wins.
	if filepath.Clean(w.Path()) != path {
		return
	}

	d, err := dictionary.LoadFile(path)
	if err == nil {
		_, err = w.session.Reload(d)
	}

	if err != nil {
		w.logger.Warn("dictionary reload failed, keeping previous", "path", path, "error", err)
	} else {
		stats := w.session.Translator().Maps().Stats()
		w.logger.Info("dictionary reloaded",
			"path", path,
			"entries", d.Len(),
			"emoji_to_text", stats.EmojiToText,
			"text_to_emoji", stats.TextToEmoji,
		)
	}

	if w.OnReload != nil {
		w.OnReload(path, d, err)
	}
}
