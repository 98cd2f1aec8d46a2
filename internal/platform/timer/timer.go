package timer

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Stop is idempotent.
type Handle interface {
	Stop()
}

// Scheduler schedules repeating and one-shot callbacks. The session machine
// owns at most one handle of each kind at a time and stops them before any
// state transition that invalidates the callback.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
	After(delay time.Duration, fn func()) Handle
}

// Wall is the wall-clock Scheduler backed by the time package.
type Wall struct{}

func (Wall) Every(interval time.Duration, fn func()) Handle {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	return &wallHandle{stop: func() {
		ticker.Stop()
		close(done)
	}}
}

func (Wall) After(delay time.Duration, fn func()) Handle {
	t := time.AfterFunc(delay, fn)
	return &wallHandle{stop: func() { t.Stop() }}
}

type wallHandle struct {
	once sync.Once
	stop func()
}

func (h *wallHandle) Stop() {
	h.once.Do(h.stop)
}
