package livereload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reports debounced changes below a content root. Each change batch
// produces a new version string passed to the change callback.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func(version string)
	version  atomic.Uint64
	logger   *slog.Logger
	recorder metrics.Recorder
}

// WatcherOption customizes a Watcher.
type WatcherOption func(*Watcher)

func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithWatcherRecorder(r metrics.Recorder) WatcherOption {
	return func(w *Watcher) {
		if r != nil {
			w.recorder = r
		}
	}
}

// NewWatcher creates a watcher for root. A non-positive debounce uses the default.
func NewWatcher(root string, debounce time.Duration, onChange func(version string), opts ...WatcherOption) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	w := &Watcher{
		root:     root,
		debounce: debounce,
		onChange: onChange,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is canceled. It fails immediately when the root
// cannot be watched.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if cerr := fw.Close(); cerr != nil {
			w.logger.Debug("Error closing file watcher", logfields.Error(cerr))
		}
	}()

	if err := w.addTree(fw, w.root); err != nil {
		return fmt.Errorf("failed to watch content root %s: %w", w.root, err)
	}
	w.logger.Info("Watching content for changes", logfields.Path(w.root))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						w.logger.Warn("Failed to watch new directory", logfields.Path(ev.Name), logfields.Error(err))
					}
				}
			}
			w.logger.Debug("Content change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			timer.Reset(w.debounce)
			pending = true
		case <-timer.C:
			if pending {
				pending = false
				w.notify()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Content watcher error", logfields.Error(err))
		}
	}
}

// Version returns the last emitted version.
func (w *Watcher) Version() string {
	return strconv.FormatUint(w.version.Load(), 10)
}

func (w *Watcher) notify() {
	v := strconv.FormatUint(w.version.Add(1), 10)
	w.recorder.IncContentChange()
	w.logger.Info("Content changed", slog.String("version", v))
	if w.onChange != nil {
		w.onChange(v)
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p != dir && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(p)
	})
}
