// Package watcher reloads a file when it changes on disk.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a change is reported
const DefaultDebounce = 200 * time.Millisecond

// Debouncer coalesces rapid triggers into one callback after a quiet period
type Debouncer struct {
	duration time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	seq      uint64
}

// NewDebouncer creates a Debouncer. Zero duration means DefaultDebounce.
func NewDebouncer(d time.Duration) *Debouncer {
	if d == 0 {
		d = DefaultDebounce
	}
	return &Debouncer{duration: d}
}

// Trigger (re)schedules fn; only the last fn within the window runs
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// A newer Trigger or Cancel superseded this one
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending callback
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
