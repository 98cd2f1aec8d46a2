package service

import (
	"log/slog"
	"sync"
	"time"

	"healthquest/internal/modules/mindfulness/domain"
	"healthquest/internal/platform/clock"
	"healthquest/internal/platform/timer"
)

// SessionMachine runs at most one timed session: idle -> running <-> paused
// -> completed -> idle. All entry points and timer callbacks serialize on one
// mutex, and the machine owns at most one tick handle and one grace handle;
// both are stopped before any transition that invalidates them. Impossible
// transitions are no-ops that report false.
type SessionMachine struct {
	mu      sync.Mutex
	state   domain.State
	session domain.Session
	tick    timer.Handle
	grace   timer.Handle

	sched      timer.Scheduler
	clock      clock.Clock
	onComplete func(domain.Session)
	log        *slog.Logger
}

func NewSessionMachine(sched timer.Scheduler, clk clock.Clock, log *slog.Logger) *SessionMachine {
	return &SessionMachine{state: domain.StateIdle, sched: sched, clock: clk, log: log}
}

// SetOnComplete registers the completion hook. Wiring-time only, before the
// first Start.
func (m *SessionMachine) SetOnComplete(fn func(domain.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onComplete = fn
}

// Start opens a session. Only valid from idle.
func (m *SessionMachine) Start(challengeID, title string, sessionType domain.SessionType, durationMin int) (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.StateIdle {
		return domain.Session{}, false
	}
	m.session = domain.Session{
		ChallengeID: challengeID,
		Title:       title,
		Type:        sessionType,
		StartedAt:   m.clock.Now(),
		DurationSec: durationMin * 60,
		Remaining:   durationMin * 60,
	}
	m.state = domain.StateRunning
	m.tick = m.sched.Every(time.Second, m.tickOnce)
	m.log.Info("session started", "type", string(sessionType), "duration_sec", m.session.DurationSec)
	return m.session, true
}

// Pause stops the tick. Only valid while running.
func (m *SessionMachine) Pause() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.StateRunning {
		return domain.Session{}, false
	}
	m.stopTick()
	m.state = domain.StatePaused
	return m.session, true
}

// Resume restarts the tick. Only valid while paused.
func (m *SessionMachine) Resume() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.StatePaused {
		return domain.Session{}, false
	}
	m.state = domain.StateRunning
	m.tick = m.sched.Every(time.Second, m.tickOnce)
	return m.session, true
}

// End cancels from any non-idle state. The session is discarded without
// completion credit.
func (m *SessionMachine) End() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == domain.StateIdle {
		return false
	}
	m.stopTick()
	m.stopGrace()
	m.state = domain.StateIdle
	m.session = domain.Session{}
	m.log.Info("session ended without credit")
	return true
}

func (m *SessionMachine) Snapshot() (domain.State, domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.session
}

func (m *SessionMachine) tickOnce() {
	m.mu.Lock()
	if m.state != domain.StateRunning {
		m.mu.Unlock()
		return
	}
	m.session.Remaining--
	if m.session.Remaining > 0 {
		m.mu.Unlock()
		return
	}

	m.session.Remaining = 0
	m.session.Completed = true
	m.stopTick()
	m.state = domain.StateCompleted
	m.grace = m.sched.After(domain.GraceSeconds*time.Second, m.clearAfterGrace)
	completed := m.session
	hook := m.onComplete
	m.mu.Unlock()

	m.log.Info("session completed", "type", string(completed.Type), "duration_sec", completed.DurationSec)
	if hook != nil {
		hook(completed)
	}
}

// clearAfterGrace returns the machine to idle once the completion view has
// had its moment.
func (m *SessionMachine) clearAfterGrace() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.StateCompleted {
		return
	}
	m.state = domain.StateIdle
	m.session = domain.Session{}
	m.grace = nil
}

func (m *SessionMachine) stopTick() {
	if m.tick != nil {
		m.tick.Stop()
		m.tick = nil
	}
}

func (m *SessionMachine) stopGrace() {
	if m.grace != nil {
		m.grace.Stop()
		m.grace = nil
	}
}
