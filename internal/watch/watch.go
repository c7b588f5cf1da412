// Package watch reports changes to the directory a plan was listed from,
// so hosts can warn that the snapshot on screen is stale.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Change is one filesystem event, reduced to what a host shows.
type Change struct {
	Name string
	Op   string
}

func (c Change) String() string {
	return fmt.Sprintf("%s %s", c.Op, c.Name)
}

// Watcher watches a single directory, non-recursively.
type Watcher struct {
	w       *fsnotify.Watcher
	changes chan Change
	done    chan struct{}
	ignore  func(name string) bool
}

// New starts watching dir. ignore, if set, filters out names the host
// produces itself (its own temporary files).
func New(dir string, ignore func(name string) bool) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if dir == "" {
		dir = "."
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		w:       fw,
		changes: make(chan Change, 16),
		done:    make(chan struct{}),
		ignore:  ignore,
	}
	go w.loop()
	return w, nil
}

// Changes delivers events until Close. Events are dropped when nobody
// reads fast enough; one pending warning is all a host needs.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

func (w *Watcher) loop() {
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) {
				continue
			}
			name := filepath.Base(ev.Name)
			if w.ignore != nil && w.ignore(name) {
				continue
			}
			select {
			case w.changes <- Change{Name: name, Op: opName(ev.Op)}:
			default:
			}
		case _, ok := <-w.w.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "created"
	case op.Has(fsnotify.Remove):
		return "removed"
	case op.Has(fsnotify.Rename):
		return "renamed"
	default:
		return "modified"
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.w.Close()
}
