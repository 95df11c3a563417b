package utils

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid Schedule calls: fn runs once with the most recent
// value after a quiet period of the configured delay. It is owned by its
// caller and safe for concurrent use.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	pending T
	armed   bool
}

// NewDebouncer builds a debouncer invoking fn after delay of inactivity.
func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Schedule records v as the latest value and restarts the quiet-period timer.
func (d *Debouncer[T]) Schedule(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = v
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Cancel drops any pending value without invoking fn.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.armed = false
}

// Flush invokes fn immediately with the pending value, if any.
func (d *Debouncer[T]) Flush() {
	d.fire()
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	v := d.pending
	d.armed = false
	d.mu.Unlock()

	d.fn(v)
}
