// Package watcher signals when the ledger database is modified by another
// process, with debouncing so a burst of commits produces one notification.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the ledger database file. Watch views and cache
// invalidation use it to react when another process commits.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dbPath   string
	debounce time.Duration
	notify   chan struct{}
	quit     chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	DBPath      string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:      dbPath,
		DebounceDur: 1 * time.Second,
	}
}

// New creates a watcher for the ledger at cfg.DBPath.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		dbPath:   cfg.DBPath,
		debounce: cfg.DebounceDur,
		notify:   make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}, nil
}

// Start begins watching and returns the notification channel. The watcher
// observes the database's directory rather than the file itself: SQLite in
// WAL mode touches the -wal sidecar on most commits, not the main file.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.dbPath)
	if err := w.fsw.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return w.notify, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.quit)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			// Restart the debounce window on every relevant event.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			// Non-blocking: an unconsumed notification already covers
			// this change.
			select {
			case w.notify <- struct{}{}:
			default:
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Keep watching on errors. Callers can wrap the watcher if
			// they need error visibility.

		case <-w.quit:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports whether the event touches the ledger file or its
// WAL sidecar.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}

	db := filepath.Base(w.dbPath)
	base := filepath.Base(event.Name)
	return base == db || base == db+"-wal"
}
