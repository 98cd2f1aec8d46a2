package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler driven by Advance. Callbacks fire
// synchronously, in due order, on the goroutine calling Advance. Used by
// tests and anywhere wall-clock ticking would be flaky.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	next  int
	tasks map[int]*manualTask
}

type manualTask struct {
	due      time.Duration
	interval time.Duration // zero for one-shots
	fn       func()
}

func NewManual() *Manual {
	return &Manual{tasks: map[int]*manualTask{}}
}

func (m *Manual) Every(interval time.Duration, fn func()) Handle {
	return m.add(&manualTask{due: m.nowLocked() + interval, interval: interval, fn: fn})
}

func (m *Manual) After(delay time.Duration, fn func()) Handle {
	return m.add(&manualTask{due: m.nowLocked() + delay, fn: fn})
}

// Advance moves virtual time forward, firing every due callback in order.
// Repeating tasks re-arm; one-shots are removed after firing.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		id, task := m.earliestDue(target)
		if task == nil {
			break
		}
		m.now = task.due
		if task.interval > 0 {
			task.due += task.interval
		} else {
			delete(m.tasks, id)
		}
		fn := task.fn
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

func (m *Manual) add(task *manualTask) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.tasks[id] = task
	return &manualHandle{m: m, id: id}
}

func (m *Manual) nowLocked() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) earliestDue(limit time.Duration) (int, *manualTask) {
	ids := make([]int, 0, len(m.tasks))
	for id := range m.tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	bestID := -1
	var best *manualTask
	for _, id := range ids {
		task := m.tasks[id]
		if task.due > limit {
			continue
		}
		if best == nil || task.due < best.due {
			bestID, best = id, task
		}
	}
	return bestID, best
}

type manualHandle struct {
	m  *Manual
	id int
}

func (h *manualHandle) Stop() {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	delete(h.m.tasks, h.id)
}
