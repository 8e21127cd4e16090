// Package debounce provides a trailing-edge debouncer: a value is
// published only after it has been stable for a fixed delay. Every new
// value restarts the delay window. There is no leading edge and no
// max-wait cap.
package debounce

import (
	"sync"
	"time"
)

type Debouncer[T any] struct {
	delay time.Duration

	mtx   sync.Mutex
	timer *time.Timer
	out   chan T
}

func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// Set replaces the pending value and restarts the delay window. Only the
// timer that survives uncancelled publishes its value.
func (d *Debouncer[T]) Set(value T) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.publish(value)
	})
}

// C delivers each published value. An unconsumed value is replaced by a
// newer one, so a slow consumer only ever sees the latest.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Stop cancels any pending publication. Safe to call repeatedly.
func (d *Debouncer[T]) Stop() {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) publish(value T) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	select {
	case <-d.out:
	default:
	}
	select {
	case d.out <- value:
	default:
	}
}
