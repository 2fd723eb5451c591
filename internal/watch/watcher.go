// Package watch reports changes to the directory being browsed.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces bursts such as a file copy into one change.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a single directory at a time and sends its path on
// Changes after events have settled for the debounce period.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	changes   chan string
	done      chan struct{}
	wg        sync.WaitGroup
	log       logrus.FieldLogger

	mu  sync.Mutex
	dir string
}

// New starts a watcher that is not yet watching anything.
func New(debounce time.Duration, log logrus.FieldLogger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debounce:  debounce,
		changes:   make(chan string, 1),
		done:      make(chan struct{}),
		log:       log.WithField("component", "watch"),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Watch switches the watched directory to dir. Watching the same
// directory again is a no-op.
func (w *Watcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			w.log.WithError(err).Debugf("failed to stop watching %s", w.dir)
		}
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	w.log.Debugf("watching %s", dir)
	return nil
}

// Changes delivers the watched directory each time it changed. At most
// one notification is buffered.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

func (w *Watcher) current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("fsnotify watcher error")

		case <-fire:
			fire = nil
			dir := w.current()
			if dir == "" {
				continue
			}
			select {
			case w.changes <- dir:
			default:
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Close stops the watcher and closes Changes.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.wg.Wait()
	close(w.changes)
	return err
}
