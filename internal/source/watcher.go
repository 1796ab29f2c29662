package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/multiselect/internal/item"
	"github.com/atomicstack/multiselect/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

// DefaultReloadInterval is the minimum gap between two reloads of a file.
const DefaultReloadInterval = 250 * time.Millisecond

// Event conveys a reloaded item set or an error from the watcher.
type Event struct {
	Items []item.Item
	Err   error
}

// Watcher reloads a file source whenever it changes and publishes events.
type Watcher struct {
	src      File
	interval time.Duration
	fs       *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching src. The parent directory is watched so editors
// that replace the file by rename are still picked up.
func NewWatcher(ctx context.Context, src File, interval time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", src.Path, err)
	}
	if err := fsw.Add(filepath.Dir(src.Path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", src.Path, err)
	}
	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		src:      src,
		interval: interval,
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Events returns a channel of reload events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch goroutine has exited and the events channel is
// closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()

	throttle := newThrottle(w.interval)
	target := filepath.Clean(w.src.Path)
	for {
		select {
		case <-w.ctx.Done():
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			events.Source.Error(w.src.Name(), err)
			if !w.emit(Event{Err: err}) {
				return
			}
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != target || !evt.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if !throttle.wait(w.ctx) {
				return
			}
			w.drain()
			if !w.reload() {
				return
			}
		}
	}
}

// drain discards change notifications that queued up while throttled; the
// reload that follows covers them.
func (w *Watcher) drain() {
	for {
		select {
		case _, ok := <-w.fs.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (w *Watcher) reload() bool {
	items, err := w.src.Load(w.ctx)
	if err != nil {
		if w.ctx.Err() != nil {
			return false
		}
		events.Source.Error(w.src.Name(), err)
		return w.emit(Event{Err: err})
	}
	events.Source.Reload(w.src.Name(), len(items))
	return w.emit(Event{Items: items})
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
