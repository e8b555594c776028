// Package activity watches the working tree and reports filesystem changes
// as user-activity signals. A write in another pane means the user is busy,
// so the idle machine restarts its countdown just as it would for a key.
package activity

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/chatter/nudge/internal/ignore"
	"github.com/chatter/nudge/internal/logger"
)

// Watcher watches a directory tree and coalesces relevant filesystem
// events into activity signals.
type Watcher struct {
	watcher *fsnotify.Watcher
	signals chan struct{}
	done    chan struct{}
	log     *logger.Logger
	ignore  *ignore.Matcher
}

// NewWatcher creates a watcher rooted at root. All non-ignored
// subdirectories are watched recursively.
func NewWatcher(root string, log *logger.Logger) (*Watcher, error) {
	log.Debug("creating activity watcher", "root", root)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("failed to create fsnotify watcher", "err", err)

		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	ignoreMatcher := ignore.NewMatcher(root)

	watchCount := 0
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if ignoreMatcher.Match(path, true) {
			return filepath.SkipDir
		}

		if err := watcher.Add(path); err == nil {
			watchCount++
		}

		return nil
	})

	log.Info("activity watcher started", "watched_dirs", watchCount)

	self := &Watcher{
		watcher: watcher,
		signals: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
		ignore:  ignoreMatcher,
	}

	go self.run()

	return self, nil
}

// Signals returns the channel of activity signals. Bursts of filesystem
// events coalesce into a single pending signal.
func (w *Watcher) Signals() <-chan struct{} {
	return w.signals
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("closing fsnotify watcher: %w", err)
	}

	return nil
}

func (w *Watcher) run() {
	defer close(w.signals)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			w.trackNewDirectory(event)

			if !w.isActivity(event) {
				continue
			}

			w.log.Debug("filesystem activity", "path", event.Name, "op", event.Op.String())

			// Non-blocking send: one pending signal is enough, and the
			// watcher goroutine must never stall during event bursts.
			select {
			case w.signals <- struct{}{}:
			default:
			}
		case err := <-w.watcher.Errors:
			if err != nil {
				w.log.Warn("watcher error", "err", err)
			}
		}
	}
}

// trackNewDirectory adds newly created directories to the watcher so that
// later changes inside them are picked up. Ignored directories are skipped.
func (w *Watcher) trackNewDirectory(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}

	if w.ignore.Match(event.Name, true) {
		return
	}

	if err := w.watcher.Add(event.Name); err != nil {
		w.log.Debug("failed to watch new directory", "path", event.Name, "err", err)
	}
}

// isActivity reports whether an event counts as user activity.
func (w *Watcher) isActivity(event fsnotify.Event) bool {
	if strings.HasSuffix(event.Name, ".lock") {
		return false
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	return !w.ignore.Match(event.Name, false)
}
