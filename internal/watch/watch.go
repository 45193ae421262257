// Package watch reports the content of a file each time an editor saves it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatch indicates the filesystem watcher could not be set up.
var ErrWatch = errors.New("cannot watch file")

// DefaultDebounce groups the burst of events one save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls OnChange with the file content after every save.
//
// The parent directory is watched rather than the file, so editors that save
// by writing a temporary file and renaming it over the target are seen.
// Events arriving within Debounce of each other produce a single read.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(text string)
	logger   *slog.Logger
}

// New creates a Watcher for path. A non-positive debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, onChange func(text string), logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Run watches until ctx is done. OnChange is called from Run's goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWatch, err)
	}
	defer func() { _ = fw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWatch, dir, err)
	}
	w.logger.Debug("watching file", slog.String("path", w.path))

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
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", slog.Any("error", err))

		case <-timer.C:
			w.emit()
		}
	}
}

// relevant reports whether event may have changed the watched file.
// Renames and creates of a same-named file cover atomic saves.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}

	name := filepath.Clean(event.Name)
	if name == w.path {
		return true
	}
	return filepath.Base(name) == filepath.Base(w.path) &&
		(event.Op.Has(fsnotify.Rename) || event.Op.Has(fsnotify.Create))
}

// emit reads the file and reports it. A file missing mid-save is skipped;
// the following create event triggers another read.
func (w *Watcher) emit() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			w.logger.Debug("watched file missing", slog.String("path", w.path))
			return
		}
		w.logger.Warn("reading watched file", slog.String("path", w.path), slog.Any("error", err))
		return
	}
	w.onChange(string(data))
}
