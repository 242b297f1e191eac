package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// BinaryWatcher notices when the running executable is replaced by a
// newer build. During development the window uses it to offer an
// in-place restart after recompiling.
type BinaryWatcher struct {
	log      *slog.Logger
	path     string
	baseline time.Time
	interval time.Duration
	stop     chan struct{}
}

// NewBinaryWatcher watches the current executable. Returns nil when
// the executable cannot be resolved, which callers treat as "feature
// unavailable".
func NewBinaryWatcher(log *slog.Logger, interval time.Duration) *BinaryWatcher {
	if log == nil {
		log = slog.Default()
	}
	path, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build writes a fresh file; resolve symlinks so we stat the
	// real one.
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return &BinaryWatcher{
		log:      log.With("component", "binwatch"),
		path:     path,
		baseline: info.ModTime(),
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start polls in the background and calls onNew once when a newer
// binary appears. onNew runs on the watcher goroutine.
func (w *BinaryWatcher) Start(onNew func()) {
	w.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				if w.newer() {
					w.log.Info("newer binary detected", "path", w.path)
					if onNew != nil {
						onNew()
					}
					return
				}
			}
		}
	}()
}

// Stop ends the polling goroutine.
func (w *BinaryWatcher) Stop() {
	close(w.stop)
}

// Rearm accepts the current binary as the new baseline, for when the
// user declines a restart.
func (w *BinaryWatcher) Rearm() {
	if info, err := os.Stat(w.path); err == nil {
		w.baseline = info.ModTime()
	}
}

// Path returns the watched executable path.
func (w *BinaryWatcher) Path() string {
	return w.path
}

func (w *BinaryWatcher) newer() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	return info.ModTime().After(w.baseline)
}

// Restart replaces the current process with a fresh instance of the
// watched binary, preserving arguments and environment. Does not
// return on success.
func (w *BinaryWatcher) Restart() error {
	return syscall.Exec(w.path, os.Args, os.Environ())
}
