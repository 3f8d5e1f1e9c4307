// Package watcher reloads a keymap file when it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temp file and renaming it over the
// original are picked up. Bursts of events are debounced into one reload.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/keystroke/internal/input/keymap"
)

// ErrWatcherClosed is returned when running a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// Reload is the outcome of reloading the keymap file.
type Reload struct {
	// Path is the absolute path of the keymap file.
	Path string

	// Keymap is the freshly loaded keymap. Nil when Err is set.
	Keymap *keymap.Keymap

	// Err is the load error, if any. A removed file reports an
	// os.ErrNotExist error.
	Err error

	// Time is when the reload happened.
	Time time.Time
}

// Handler is called after every reload attempt.
type Handler func(Reload)

// Logger is the logging the watcher needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// Watcher monitors one keymap file.
type Watcher struct {
	mu sync.RWMutex

	path     string
	fsw      *fsnotify.Watcher
	handlers []Handler
	debounce time.Duration
	logger   Logger

	closeOnce sync.Once
	closeCh   chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must be quiet before reloading.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for the keymap file at path. The file's directory
// must exist; the file itself may be created later.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		debounce: 100 * time.Millisecond,
		logger:   nopLogger{},
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// OnReload registers a handler for reload results.
func (w *Watcher) OnReload(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Run processes file events until ctx is done or the watcher is closed.
// It returns ctx.Err() on cancellation and nil after Close.
func (w *Watcher) Run(ctx context.Context) error {
	select {
	case <-w.closeCh:
		return ErrWatcherClosed
	default:
	}

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-w.closeCh:
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("keymap event %s", event.Op)

			if w.debounce == 0 {
				w.reload()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error: %v", err)
		}
	}
}

// Reload loads the file now and notifies handlers.
func (w *Watcher) Reload() Reload {
	return w.reload()
}

func (w *Watcher) reload() Reload {
	result := Reload{Path: w.path, Time: time.Now()}

	if _, err := os.Stat(w.path); err != nil {
		result.Err = err
	} else {
		result.Keymap, result.Err = keymap.LoadFile(w.path)
	}

	if result.Err != nil {
		w.logger.Warn("keymap reload failed: %v", result.Err)
	} else {
		w.logger.Info("keymap reloaded: %d bindings", len(result.Keymap.Bindings))
	}

	w.mu.RLock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		w.safeCallHandler(handler, result)
	}
	return result
}

// safeCallHandler calls a handler with panic recovery.
func (w *Watcher) safeCallHandler(handler Handler, r Reload) {
	defer func() {
		if p := recover(); p != nil {
			w.logger.Warn("reload handler panicked: %v", p)
		}
	}()
	handler(r)
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
	})
	return err
}

// RegistryHandler returns a handler that registers each successfully
// reloaded keymap. Failed reloads leave the registry untouched so the
// previous bindings stay in effect. When the file renames its keymap, the
// keymap previously loaded from the same file is unregistered.
func RegistryHandler(r *keymap.Registry, logger Logger) Handler {
	if logger == nil {
		logger = nopLogger{}
	}
	var (
		mu   sync.Mutex
		prev string
	)
	return func(reload Reload) {
		if reload.Err != nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()

		name := reload.Keymap.Name
		stale := staleNames(r, reload.Path, name)
		if prev != "" && prev != name && !slices.Contains(stale, prev) {
			stale = append(stale, prev)
		}

		if err := r.Register(reload.Keymap); err != nil {
			logger.Warn("registering reloaded keymap: %v", err)
			return
		}
		for _, old := range stale {
			r.Unregister(old)
			logger.Info("keymap %s renamed to %s", old, name)
		}
		prev = name
	}
}

// staleNames lists registered keymaps other than name that were loaded
// from path.
func staleNames(r *keymap.Registry, path, name string) []string {
	if path == "" {
		return nil
	}
	var names []string
	for _, n := range r.Names() {
		if n == name {
			continue
		}
		if km := r.Get(n); km != nil && sameFile(km.Source, path) {
			names = append(names, n)
		}
	}
	return names
}

func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
