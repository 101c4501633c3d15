// Package watch reports stylesheet changes under a set of directories.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/harrison/sassglob/internal/fileutil"
)

// Op represents the type of file operation
type Op int

const (
	// Created indicates a new stylesheet was created
	Created Op = iota
	// Written indicates a stylesheet was written to
	Written
	// Removed indicates a stylesheet was removed or renamed away
	Removed
)

// String returns a human-readable representation of the operation
func (op Op) String() string {
	switch op {
	case Created:
		return "created"
	case Written:
		return "written"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event represents a change to one stylesheet
type Event struct {
	Path      string    // Absolute path to the file
	Op        Op        // Type of operation
	Timestamp time.Time // When the event occurred
}

// DefaultDebounceDelay is the default delay for coalescing rapid writes
const DefaultDebounceDelay = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Roots are the directories watched recursively
	Roots []string
	// IgnoreDirs are directories whose contents never produce events (e.g. the output dir)
	IgnoreDirs []string
	// ExcludeDirs are directory names never descended into
	ExcludeDirs []string
	// Debounce is the quiet period before a batch is delivered
	Debounce time.Duration
}

// Watcher watches directory trees for stylesheet changes.
type Watcher struct {
	watcher     *fsnotify.Watcher
	events      chan Event
	errors      chan error
	done        chan struct{}
	roots       []string
	ignoreDirs  []string
	excludeDirs map[string]bool

	mu            sync.Mutex
	debounceDelay time.Duration
	debounceMap   map[string]*time.Timer
	pendingOps    map[string]Op
	closed        bool
}

// New creates a Watcher and starts watching every root and its subdirectories.
func New(opts Options) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}

	w := &Watcher{
		watcher:       watcher,
		events:        make(chan Event, 100),
		errors:        make(chan error, 10),
		done:          make(chan struct{}),
		excludeDirs:   make(map[string]bool),
		debounceDelay: delay,
		debounceMap:   make(map[string]*time.Timer),
		pendingOps:    make(map[string]Op),
	}
	for _, name := range opts.ExcludeDirs {
		w.excludeDirs[name] = true
	}
	for _, dir := range opts.IgnoreDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		w.ignoreDirs = append(w.ignoreDirs, abs)
	}

	for _, root := range opts.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		w.roots = append(w.roots, abs)
		if err := w.addRecursive(abs); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go w.processEvents()

	return w, nil
}

// addRecursive adds the directory and all its subdirectories to the watcher
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skipDir(path) {
			return filepath.SkipDir
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}
		return nil
	})
}

func (w *Watcher) skipDir(path string) bool {
	name := filepath.Base(path)
	return w.excludeDirs[name] || strings.HasPrefix(name, ".")
}

// ignored reports whether path is inside one of the ignored directories.
func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.ignoreDirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// processEvents converts fsnotify events to stylesheet events
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// handleEvent processes a single fsnotify event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.ignored(path) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if w.skipDir(path) {
				return
			}
			if err := w.addRecursive(path); err != nil {
				select {
				case w.errors <- err:
				default:
				}
			}
			return
		}
	}

	if !fileutil.IsStylesheetExt(path) {
		return
	}

	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = Created
	case event.Has(fsnotify.Write):
		op = Written
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = Removed
	default:
		return
	}

	w.debounce(path, op)
}

// debounce coalesces rapid events for the same file. A write following a
// create is still reported as a create.
func (w *Watcher) debounce(path string, op Op) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if timer, exists := w.debounceMap[path]; exists {
		timer.Stop()
	}
	if prev, ok := w.pendingOps[path]; ok && prev == Created && op == Written {
		op = Created
	}
	w.pendingOps[path] = op

	w.debounceMap[path] = time.AfterFunc(w.debounceDelay, func() {
		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return
		}
		delete(w.debounceMap, path)
		final := w.pendingOps[path]
		delete(w.pendingOps, path)
		w.mu.Unlock()

		w.sendEvent(path, final)
	})
}

func (w *Watcher) sendEvent(path string, op Op) {
	event := Event{Path: path, Op: op, Timestamp: time.Now()}

	select {
	case w.events <- event:
	case <-w.done:
	default:
		// Events channel full, drop the event
	}
}

// Events returns the channel for receiving debounced events
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel for receiving watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Roots returns the absolute directories being watched
func (w *Watcher) Roots() []string {
	return append([]string(nil), w.roots...)
}

// Run delivers batches of events to fn until ctx is cancelled.
// Events arriving within one debounce period of each other form one batch,
// keyed by path and sorted. Errors from fn end the loop; watcher errors go to onErr.
func (w *Watcher) Run(ctx context.Context, fn func([]Event) error, onErr func(error)) error {
	pending := make(map[string]Event)
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.events:
			pending[ev.Path] = ev
			flush = time.After(w.debounceDelay)
		case err := <-w.errors:
			if onErr != nil {
				onErr(err)
			}
		case <-flush:
			flush = nil
			batch := make([]Event, 0, len(pending))
			for _, ev := range pending {
				batch = append(batch, ev)
			}
			sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
			pending = make(map[string]Event)
			if err := fn(batch); err != nil {
				return err
			}
		}
	}
}

// Close stops the watcher and releases resources
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	for _, timer := range w.debounceMap {
		timer.Stop()
	}
	w.debounceMap = nil
	w.mu.Unlock()

	close(w.done)

	return w.watcher.Close()
}
