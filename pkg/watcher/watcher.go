// Package watcher monitors the tree file for outside edits, so a running
// editor can offer to reload when another process rewrites it.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/condtree/pkg/debug"
)

// DefaultDebounce coalesces the event bursts editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithOnError sets the callback invoked on watch errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher monitors one file via fsnotify. It watches the containing
// directory rather than the file itself: editors that save atomically
// replace the inode, which would silently detach a file-level watch.
type Watcher struct {
	path     string
	debounce time.Duration
	onError  func(error)

	fsw      *fsnotify.Watcher
	changeCh chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	started bool
}

// New creates a watcher for the given path.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		onError:  func(error) {},
		changeCh: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw
	w.started = true
	go w.loop()
	debug.Log("watcher: watching %s", w.path)
	return nil
}

// Stop stops watching. The change channel stays open; a stopped watcher
// simply goes quiet.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	close(w.done)
	w.fsw.Close()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.started = false
}

// Changed returns a channel that receives after the file changes, debounced.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) loop() {
	target := filepath.Base(w.path)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				// A rename-over save emits Remove then Create; only report
				// removal when the file is really gone.
				if _, err := os.Stat(w.path); os.IsNotExist(err) {
					w.onError(ErrFileRemoved)
				}
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				w.trigger()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

// trigger arms the debounce timer, restarting it on every new event.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		debug.Log("watcher: %s changed", w.path)
		select {
		case w.changeCh <- struct{}{}:
		default:
		}
	})
}
