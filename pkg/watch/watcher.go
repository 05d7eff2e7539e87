package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change reported for a document.
type Op string

const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// Event is a debounced change to one PSL document.
type Event struct {
	Path string
	Op   Op
}

// Handler is called once per debounced document change.
type Handler func(Event)

// Config contains configuration for the watcher.
type Config struct {
	// Path is the file or directory to watch.
	Path string

	// Debounce is how long a document must be quiet before its event fires.
	// Default: 100ms
	Debounce time.Duration

	// Extensions are the document extensions to report (e.g. ".psl").
	Extensions []string

	// Recursive also watches subdirectories, including ones created later.
	Recursive bool

	// SkipHidden ignores dot files and dot directories.
	SkipHidden bool
}

// Watcher reports changes to PSL documents under a path.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher for cfg.Path.
func New(cfg *Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch path is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		logger:   slog.Default().With("component", "watch"),
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Documents returns the documents currently under the watched path, sorted.
func (w *Watcher) Documents() ([]string, error) {
	info, err := os.Stat(w.config.Path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{w.config.Path}, nil
	}

	var docs []string
	err = filepath.WalkDir(w.config.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != w.config.Path && (!w.config.Recursive || w.skip(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.isDocument(path) {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(docs)
	return docs, nil
}

// Watch blocks, calling handle for each debounced document change, until
// ctx is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, handle Handler) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.watcher.Close()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.addPath(w.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	w.logger.Info("watching for document changes",
		"path", w.config.Path,
		"recursive", w.config.Recursive,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			w.handleEvent(event, handle)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops a running Watch and waits for it to return. On a watcher
// that is not running it releases the underlying fsnotify watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.mu.Unlock()

	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}
	<-w.doneCh
}

func (w *Watcher) handleEvent(event fsnotify.Event, handle Handler) {
	if event.Has(fsnotify.Create) && w.config.Recursive {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.skip(event.Name) {
			if err := w.addDirectory(event.Name); err != nil {
				w.logger.Error("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	op, ok := translate(event.Op)
	if !ok || !w.isDocument(event.Name) {
		return
	}

	w.logger.Debug("document event", "path", event.Name, "op", op)

	ev := Event{Path: event.Name, Op: op}
	w.debounce.Trigger(event.Name, func() { handle(ev) })
}

// translate maps fsnotify operations to document operations. Chmod is
// ignored.
func translate(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	}
	return "", false
}

func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}
	if !w.config.Recursive {
		return w.watcher.Add(path)
	}
	return w.addDirectory(path)
}

// addDirectory watches dir and every subdirectory.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skip(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) skip(path string) bool {
	return w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}

func (w *Watcher) isDocument(path string) bool {
	if w.skip(path) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range w.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}
