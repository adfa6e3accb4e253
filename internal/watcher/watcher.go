// Package watcher notifies the TUI when the collection's source changes on
// disk so it can reload the data.
//
// A file source is watched through its parent directory, since editors
// usually replace files by rename rather than writing in place, and events
// are filtered down to that one file name. A git source is watched only
// through its .git internals (HEAD, index, refs), never the working tree,
// which keeps inotify/kqueue usage flat on huge repositories.
package watcher

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watcher detects a relevant change.
type Event struct{}

// Watch monitors targets and sends Event values on the returned channel.
// A target that is a regular file is watched via its directory and only
// events naming that file count; a directory target counts every event
// inside it. Rapid bursts are coalesced via the debounce window.
//
// Call the returned stop function to tear down the watcher.
func Watch(targets []string, debounce time.Duration) (<-chan Event, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, t := range targets {
		info, statErr := os.Stat(t)
		switch {
		case statErr == nil && info.IsDir():
			dirs[filepath.Clean(t)] = true
		case statErr == nil:
			files[filepath.Clean(t)] = true
		default:
			// Missing file: watch its directory so creation is noticed.
			files[filepath.Clean(t)] = true
		}
	}

	added := make(map[string]bool)
	for d := range dirs {
		if w.Add(d) == nil {
			added[d] = true
		}
	}
	for f := range files {
		d := filepath.Dir(f)
		if added[d] {
			continue
		}
		if w.Add(d) == nil {
			added[d] = true
		}
	}

	relevant := func(name string) bool {
		name = filepath.Clean(name)
		if files[name] {
			return true
		}
		return dirs[filepath.Dir(name)]
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Jitter spreads reloads of several instances watching the same path.
	jitterRange := debounce / 2

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if shouldIgnore(ev.Name) || !relevant(ev.Name) {
					continue
				}
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int64N(int64(jitterRange)))
				}
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore returns true for events that should not trigger a reload.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	// Lock files are transient; git holds them mid-operation and the data
	// isn't settled yet.
	if strings.HasSuffix(base, ".lock") {
		return true
	}

	// Editor swap/backup files next to the data file.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}

	if base == "COMMIT_EDITMSG" || base == "gc.log" || strings.HasPrefix(base, "fsmonitor") {
		return true
	}

	return false
}
