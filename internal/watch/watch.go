// Package watch reports when a mesh file on disk changes so the viewer can
// reload it.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches a single file. Bursts of change events closer together
// than the debounce interval are reported once.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *zap.Logger

	reloads chan string
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// New starts watching path. The containing directory is watched rather than
// the file itself, so editors that save by rename are still seen.
func New(path string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fs:       fsw,
		path:     abs,
		debounce: debounce,
		log:      log.With(zap.String("path", abs)),
		reloads:  make(chan string, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()

	w.log.Debug("watching mesh file", zap.Duration("debounce", debounce))
	return w, nil
}

// Reloads delivers the watched path after each settled change. The channel
// is closed when the watcher stops.
func (w *Watcher) Reloads() <-chan string {
	return w.reloads
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.stopped)
	defer close(w.reloads)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debug("mesh file changed", zap.Stringer("op", e.Op))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			// One pending reload is enough
			select {
			case w.reloads <- w.path:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}
